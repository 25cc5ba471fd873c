package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete library configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ExtractionConfig contains report extraction options
type ExtractionConfig struct {
	// MaxUploadBytes caps the size of a raw workbook accepted for extraction.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"min=1"`
	// HeaderScanDepth is how many leading rows the header-row discovery
	// scanner considers when the first row is not headers.
	HeaderScanDepth int `yaml:"header_scan_depth" envconfig:"HEADER_SCAN_DEPTH" validate:"min=1,max=100"`
	// DisableCurrentMonthFallback drops rows from sheets that carry no date
	// information anywhere. By default such sheets fall back to the first of
	// the current calendar month.
	DisableCurrentMonthFallback bool `yaml:"disable_current_month_fallback" envconfig:"DISABLE_CURRENT_MONTH_FALLBACK"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an optional YAML file, then applies
// environment variable overrides (MARKETLENS_ prefix), then validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("MARKETLENS", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills zero values with defaults after file and environment
// sources have been merged, so neither source can clobber the other.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/marketlens.log"
	}
	if c.Extraction.MaxUploadBytes == 0 {
		c.Extraction.MaxUploadBytes = 10 * 1024 * 1024
	}
	if c.Extraction.HeaderScanDepth == 0 {
		c.Extraction.HeaderScanDepth = 10
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
