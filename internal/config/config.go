package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath          = "notesmargin.yaml"
	DefaultOutputPrefix  = "my_"
	DefaultBackend       = "libreoffice"
	DefaultSofficeBinary = "soffice"
	DefaultGotenbergURL  = "http://localhost:3000"
	DefaultTimeout       = 2 * time.Minute
	DefaultPreviewDPI    = 72.0
)

type Config struct {
	OutputPrefix     string          `yaml:"output_prefix"`
	OutputDir        string          `yaml:"output_dir"`
	KeepIntermediate bool            `yaml:"keep_intermediate"`
	ValidateOutput   *bool           `yaml:"validate_output"`
	Converter        ConverterConfig `yaml:"converter"`
	Preview          struct {
		DPI float64 `yaml:"dpi"`
	} `yaml:"preview"`
}

type ConverterConfig struct {
	Backend     string        `yaml:"backend"`
	Timeout     time.Duration `yaml:"timeout"`
	LibreOffice struct {
		Binary string `yaml:"binary"`
	} `yaml:"libreoffice"`
	Gotenberg struct {
		URL string `yaml:"url"`
	} `yaml:"gotenberg"`
}

// ShouldValidate reports whether written PDFs are checked with pdfcpu.
// Unset means yes.
func (c *Config) ShouldValidate() bool {
	return c.ValidateOutput == nil || *c.ValidateOutput
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not
// exist and optional is set.
func LoadOrDefault(path string, optional bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Converter.Backend {
	case "libreoffice", "gotenberg":
	default:
		return fmt.Errorf("unknown converter backend %q (want libreoffice or gotenberg)", c.Converter.Backend)
	}
	if c.Converter.Timeout < 0 {
		return fmt.Errorf("converter timeout must not be negative")
	}
	if c.Preview.DPI <= 0 {
		return fmt.Errorf("preview dpi must be positive")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.OutputPrefix == "" {
		c.OutputPrefix = DefaultOutputPrefix
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Converter.Backend == "" {
		c.Converter.Backend = DefaultBackend
	}
	if c.Converter.Timeout == 0 {
		c.Converter.Timeout = DefaultTimeout
	}
	if c.Converter.LibreOffice.Binary == "" {
		c.Converter.LibreOffice.Binary = DefaultSofficeBinary
	}
	if c.Converter.Gotenberg.URL == "" {
		c.Converter.Gotenberg.URL = DefaultGotenbergURL
	}
	if c.Preview.DPI == 0 {
		c.Preview.DPI = DefaultPreviewDPI
	}
}
