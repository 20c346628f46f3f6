package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "PROVCHECK"

// Config holds settings read from PROVCHECK_* environment variables.
// Command-line flags take precedence over these values.
type Config struct {
	Suffix       string   `envconfig:"SUFFIX" default:".mobileprovision"`
	ArchiveExts  []string `envconfig:"ARCHIVE_EXTS" default:".ipa"`
	TempDir      string   `envconfig:"TEMP_DIR"`
	MaxFileBytes int64    `envconfig:"MAX_FILE_BYTES" default:"0"`
	Workers      int      `envconfig:"WORKERS" default:"1"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that envconfig cannot constrain
func (c *Config) Validate() error {
	if c.Suffix == "" {
		return fmt.Errorf("%s_SUFFIX must not be empty", EnvPrefix)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%s_WORKERS must be at least 1, got %d", EnvPrefix, c.Workers)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("%s_MAX_FILE_BYTES must not be negative, got %d", EnvPrefix, c.MaxFileBytes)
	}
	return nil
}
