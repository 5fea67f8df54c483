package file_manager

import (
	"os"
	"strings"

	"huffman-engine/config"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrUnreadableFile       = errors.New("cannot open file")
)

type Manager struct {
	Config config.FilesConfig
}

func NewManager(config config.FilesConfig) *Manager {
	return &Manager{
		Config: config,
	}
}

// EncodedName maps notes.txt to notes.huf. Everything from the first
// occurrence of the plain extension on is replaced.
func (m *Manager) EncodedName(path string) (string, error) {
	return replaceExtension(path, m.Config.PlainExtension, m.Config.EncodedExtension)
}

// DecodedName maps notes.huf to notes.decoded.txt.
func (m *Manager) DecodedName(path string) (string, error) {
	return replaceExtension(path, m.Config.EncodedExtension, m.Config.DecodedSuffix)
}

func replaceExtension(path, from, to string) (string, error) {
	pos := strings.Index(path, from)
	if pos < 0 {
		return "", errors.Wrapf(ErrUnsupportedExtension, "%s must have %s extension", path, from)
	}
	return path[:pos] + to, nil
}

// OpenInput opens path for reading and returns its size.
func (m *Manager) OpenInput(path string) (*os.File, int64, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return nil, 0, errors.Wrapf(ErrUnreadableFile, "%s: %v", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, errors.Wrapf(ErrUnreadableFile, "%s: %v", path, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, errors.Wrapf(ErrUnreadableFile, "%s is a directory", path)
	}

	return file, info.Size(), nil
}

func (m *Manager) CreateFile(filename string) (*os.File, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", filename)
	}
	return file, nil
}

func (m *Manager) RemoveFile(filename string) error {
	err := os.Remove(filename)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", filename)
	}
	return nil
}

func (m *Manager) Size(filename string) (int64, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "stat %s", filename)
	}
	return info.Size(), nil
}
