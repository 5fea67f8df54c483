package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigurationMissingFile(t *testing.T) {
	c, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), c)
	require.Empty(t, c.Fixes())

	c, err = LoadConfiguration("")
	require.NoError(t, err)
	require.Equal(t, DefaultEncodedExtension, c.EncodedExtension)
}

func TestLoadConfigurationSysConfig(t *testing.T) {
	c, err := LoadConfiguration("sys_config.yaml")
	require.NoError(t, err)
	require.Empty(t, c.Fixes())
	require.Equal(t, 4096, c.ReadBufferSize)
	require.Equal(t, int64(DefaultMaxRunLength), c.MaxRunLength)
	require.Equal(t, ".txt", c.PlainExtension)
	require.Equal(t, ".huf", c.EncodedExtension)
	require.Equal(t, ".decoded.txt", c.DecodedSuffix)
	require.Equal(t, "info", c.Level)
	require.False(t, c.PrintCodes)
}

func TestLoadConfigurationFixesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
codec:
  read_buffer_size: 1
  write_buffer_size: 8192
  max_run_length: -5
files:
  encoded_extension: .hz
log:
  level: loud
  print_codes: true
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	c, err := LoadConfiguration(path)
	require.NoError(t, err)
	require.Equal(t, DefaultBufferSize, c.ReadBufferSize)
	require.Equal(t, 8192, c.WriteBufferSize)
	require.Equal(t, int64(DefaultMaxRunLength), c.MaxRunLength)
	require.Equal(t, ".hz", c.EncodedExtension)
	require.Equal(t, DefaultPlainExtension, c.PlainExtension)
	require.Equal(t, DefaultDecodedSuffix, c.DecodedSuffix)
	require.Equal(t, DefaultLogLevel, c.Level)
	require.True(t, c.PrintCodes)
	require.Len(t, c.Fixes(), 5)
}

func TestLoadConfigurationInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codec: [1, 2"), 0644))

	_, err := LoadConfiguration(path)
	require.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	c := Default()
	c.EncodedExtension = ".hff"
	c.PrintFrequencies = true
	require.NoError(t, c.Save(path))

	loaded, err := LoadConfiguration(path)
	require.NoError(t, err)
	require.Equal(t, ".hff", loaded.EncodedExtension)
	require.True(t, loaded.PrintFrequencies)
	require.Empty(t, loaded.Fixes())
}
