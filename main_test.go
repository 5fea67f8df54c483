package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.txt")
	content := []byte("once upon a time there was a prefix code\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	var stderr bytes.Buffer
	noConfig := filepath.Join(dir, "none.yaml")
	require.Equal(t, 0, run([]string{"-config", noConfig, "encode", path}, strings.NewReader(""), &stderr))
	require.Equal(t, 0, run([]string{"-config", noConfig, "decode", filepath.Join(dir, "story.huf")}, strings.NewReader(""), &stderr))

	decoded, err := os.ReadFile(filepath.Join(dir, "story.decoded.txt"))
	require.NoError(t, err)
	require.Equal(t, content, decoded)
}

func TestRunPromptsForPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompted.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	var stderr bytes.Buffer
	stdin := strings.NewReader("\n" + path + "\n")
	code := run([]string{"-config", filepath.Join(dir, "none.yaml"), "-v", "encode"}, stdin, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stderr.String(), "Which file would you like to encode?")
	require.Contains(t, stderr.String(), "Enter something!")

	_, err := os.Stat(filepath.Join(dir, "prompted.huf"))
	require.NoError(t, err)
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	noConfig := filepath.Join(dir, "none.yaml")
	var stderr bytes.Buffer

	require.Equal(t, 2, run([]string{"-config", noConfig}, strings.NewReader(""), &stderr))
	require.Equal(t, 2, run([]string{"-config", noConfig, "compress", "a.txt"}, strings.NewReader(""), &stderr))
	require.Equal(t, 1, run([]string{"-config", noConfig, "encode", "a.md"}, strings.NewReader(""), &stderr))
	require.Equal(t, 1, run([]string{"-config", noConfig, "encode", filepath.Join(dir, "missing.txt")}, strings.NewReader(""), &stderr))
	require.Equal(t, 1, run([]string{"-config", noConfig, "decode"}, strings.NewReader(""), &stderr))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	require.Equal(t, 1, run([]string{"-config", noConfig, "encode", empty}, strings.NewReader(""), &stderr))
}
