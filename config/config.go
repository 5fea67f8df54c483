package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBufferSize       = 4096
	DefaultMaxRunLength     = 1 << 32
	DefaultPlainExtension   = ".txt"
	DefaultEncodedExtension = ".huf"
	DefaultDecodedSuffix    = ".decoded.txt"
	DefaultLogLevel         = "info"
)

type CodecConfig struct {
	ReadBufferSize  int   `yaml:"read_buffer_size"`
	WriteBufferSize int   `yaml:"write_buffer_size"`
	// largest single symbol input, in bytes, that is encoded or decoded
	MaxRunLength    int64 `yaml:"max_run_length"`
}

type FilesConfig struct {
	PlainExtension   string `yaml:"plain_extension"`
	EncodedExtension string `yaml:"encoded_extension"`
	DecodedSuffix    string `yaml:"decoded_suffix"`
}

type LogConfig struct {
	Level            string `yaml:"level"`
	PrintFrequencies bool   `yaml:"print_frequencies"`
	PrintCodes       bool   `yaml:"print_codes"`
}

type Config struct {
	CodecConfig `yaml:"codec"`
	FilesConfig `yaml:"files"`
	LogConfig   `yaml:"log"`

	fixes []string
}

func Default() *Config {
	return &Config{
		CodecConfig: CodecConfig{
			ReadBufferSize:  DefaultBufferSize,
			WriteBufferSize: DefaultBufferSize,
			MaxRunLength:    DefaultMaxRunLength,
		},
		FilesConfig: FilesConfig{
			PlainExtension:   DefaultPlainExtension,
			EncodedExtension: DefaultEncodedExtension,
			DecodedSuffix:    DefaultDecodedSuffix,
		},
		LogConfig: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LoadConfiguration reads the YAML file at path. A missing file is not an
// error, the defaults are used instead.
func LoadConfiguration(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	sysConfigFile, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", path)
	}
	defer sysConfigFile.Close()

	var sysConfig Config
	decoder := yaml.NewDecoder(sysConfigFile)
	err = decoder.Decode(&sysConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}

	// set default values if user messed up something
	sysConfig.setDefaults()

	return &sysConfig, nil
}

func (c *Config) Save(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "open config %s", path)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()
	err = encoder.Encode(c)
	if err != nil {
		return errors.Wrapf(err, "encode config %s", path)
	}
	return nil
}

// Fixes describes every value of the loaded file that was replaced by a
// default.
func (c *Config) Fixes() []string {
	return c.fixes
}

// setDefaults will fill empty and incorrect values with default ones
func (c *Config) setDefaults() {
	var fixes []string

	cc := &c.CodecConfig
	if cc.ReadBufferSize < 16 || cc.ReadBufferSize > 1<<24 {
		cc.ReadBufferSize = DefaultBufferSize
		fixes = append(fixes, fmt.Sprintf("codec read_buffer_size set to default: %d", cc.ReadBufferSize))
	}
	if cc.WriteBufferSize < 16 || cc.WriteBufferSize > 1<<24 {
		cc.WriteBufferSize = DefaultBufferSize
		fixes = append(fixes, fmt.Sprintf("codec write_buffer_size set to default: %d", cc.WriteBufferSize))
	}
	if cc.MaxRunLength <= 0 {
		cc.MaxRunLength = DefaultMaxRunLength
		fixes = append(fixes, fmt.Sprintf("codec max_run_length set to default: %d", cc.MaxRunLength))
	}

	fc := &c.FilesConfig
	if fc.PlainExtension == "" {
		fc.PlainExtension = DefaultPlainExtension
		fixes = append(fixes, fmt.Sprintf("files plain_extension set to default: %s", fc.PlainExtension))
	}
	if fc.EncodedExtension == "" {
		fc.EncodedExtension = DefaultEncodedExtension
		fixes = append(fixes, fmt.Sprintf("files encoded_extension set to default: %s", fc.EncodedExtension))
	}
	if fc.DecodedSuffix == "" {
		fc.DecodedSuffix = DefaultDecodedSuffix
		fixes = append(fixes, fmt.Sprintf("files decoded_suffix set to default: %s", fc.DecodedSuffix))
	}

	lc := &c.LogConfig
	switch lc.Level {
	case "debug", "info", "warn", "error":
	default:
		lc.Level = DefaultLogLevel
		fixes = append(fixes, fmt.Sprintf("log level set to default: %s", lc.Level))
	}

	c.fixes = fixes
}
