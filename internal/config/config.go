// Package config loads gazette settings from defaults, an optional TOML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"

	"github.com/jjenkins/gazette/internal/source"
)

// DefaultFile is read when no config path is given. It is optional.
const DefaultFile = "gazette.toml"

// Config holds runtime configuration for the gazette commands.
type Config struct {
	Port        string `toml:"port"         env:"PORT"`
	DatabaseURL string `toml:"database_url" env:"DATABASE_URL"`

	// Source is the CSV file path or URL served when no database is configured
	Source string `toml:"source" env:"GAZETTE_SOURCE"`

	// Reload is a cron expression for refreshing the snapshot; empty disables it
	Reload string `toml:"reload" env:"GAZETTE_RELOAD"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:   "8080",
		Source: source.DefaultPath,
	}
}

// Load builds the configuration. A missing file at path is an error, a
// missing DefaultFile is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.Reload != "" {
		if _, err := cron.ParseStandard(c.Reload); err != nil {
			return fmt.Errorf("invalid reload schedule %q: %w", c.Reload, err)
		}
	}
	return nil
}

// UseDatabase reports whether the snapshot comes from PostgreSQL
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != ""
}
