// Package config loads backoffice configuration.
//
// Settings resolve in order: the BACKOFFICE_API_BASE environment variable,
// then the YAML config file (BACKOFFICE_CONFIG or
// ~/.config/backoffice/config.yaml), then built-in defaults. Overrides the
// operator saves in the TUI settings view are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPageSize is the list page size when nothing is configured.
	DefaultPageSize = 15

	defaultTimeout = 30 * time.Second
)

// Config holds backend connection and display settings.
type Config struct {
	// APIBase is the backend root URL. Empty means the client default.
	APIBase string `yaml:"api_base"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout string `yaml:"timeout"`

	// PageSize is the number of rows per list page.
	PageSize int `yaml:"page_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{PageSize: DefaultPageSize}
}

// Path returns the config file location: BACKOFFICE_CONFIG if set, otherwise
// ~/.config/backoffice/config.yaml.
func Path() string {
	if p := os.Getenv("BACKOFFICE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "backoffice", "config.yaml")
}

// Load reads the config file and applies environment overrides. A missing
// file is not an error; a malformed one is.
func Load() (Config, error) {
	return load(Path())
}

func load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if base := os.Getenv("BACKOFFICE_API_BASE"); base != "" {
		cfg.APIBase = base
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	return cfg, nil
}

// RequestTimeout parses the configured timeout, falling back to 30 seconds
// for empty or malformed values.
func (c Config) RequestTimeout() time.Duration {
	if c.Timeout == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}
