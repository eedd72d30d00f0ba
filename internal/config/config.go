// Package config loads the docwire CLI configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/docwire/errs"
	"github.com/arloliu/docwire/format"
	"github.com/arloliu/docwire/value"
	"github.com/arloliu/docwire/writer"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = ".docwire.yaml"

// Config mirrors the configuration file. Zero values mean "use the default".
type Config struct {
	MaxSize              int      `yaml:"max_size"`
	ValidateKeys         *bool    `yaml:"validate_keys"`
	ForbiddenKeyPrefixes []string `yaml:"forbidden_key_prefixes"`
	ForbiddenKeyChars    string   `yaml:"forbidden_key_chars"`
	CheckDuplicates      bool     `yaml:"check_duplicates"`
	Coerce               string   `yaml:"coerce"`
	Compressor           string   `yaml:"compressor"`
	OutboxDir            string   `yaml:"outbox_dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Coerce:     value.CoerceNativeMinSize.String(),
		Compressor: format.CompressorNoop.String(),
		OutboxDir:  ".docwire/outbox",
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultFile.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML data into cfg. Unknown fields are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid config: %w", err)
	}

	return cfg.Validate()
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if c.MaxSize < 0 {
		return fmt.Errorf("%w: max_size must not be negative", errs.ErrInvalidOption)
	}
	if _, ok := value.ParseCoercionPolicy(c.Coerce); !ok {
		return fmt.Errorf("%w: unknown coerce policy %q", errs.ErrInvalidOption, c.Coerce)
	}
	if _, ok := format.ParseCompressor(c.Compressor); !ok {
		return fmt.Errorf("%w: unknown compressor %q", errs.ErrInvalidOption, c.Compressor)
	}

	return nil
}

// CompressorID returns the configured compressor.
func (c *Config) CompressorID() format.CompressorID {
	id, _ := format.ParseCompressor(c.Compressor)
	return id
}

// EncoderOptions translates the configuration into encoder options.
func (c *Config) EncoderOptions() []writer.EncoderOption {
	policy, _ := value.ParseCoercionPolicy(c.Coerce)

	opts := []writer.EncoderOption{
		writer.WithCoercion(policy),
		writer.WithDuplicateKeyCheck(c.CheckDuplicates),
	}
	if c.MaxSize > 0 {
		opts = append(opts, writer.WithMaxSize(c.MaxSize))
	}
	if c.ValidateKeys != nil {
		opts = append(opts, writer.WithKeyValidation(*c.ValidateKeys))
	}
	if c.ForbiddenKeyPrefixes != nil {
		opts = append(opts, writer.WithForbiddenKeyPrefixes(c.ForbiddenKeyPrefixes...))
	}
	if c.ForbiddenKeyChars != "" {
		opts = append(opts, writer.WithForbiddenKeyChars(c.ForbiddenKeyChars))
	}

	return opts
}
