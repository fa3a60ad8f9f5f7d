// Package config handles runtime configuration for the Vexa ledger tools.
//
// Configuration is split into two categories:
//   - Protocol limits: compile-time constants every participant must share
//   - Runtime settings: per-invocation, from defaults, config file, and flags
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds runtime configuration.
type Config struct {
	// DataDir is where the pool snapshot database lives.
	DataDir string `json:"datadir"`

	// Log settings.
	Log LogConfig `json:"log"`

	// Ledger settings.
	Ledger LedgerConfig `json:"ledger"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level"`
	JSON  bool   `json:"json"`
}

// LedgerConfig holds batch processing settings.
type LedgerConfig struct {
	// MaxBatchSize caps how many candidates one submit round may carry.
	MaxBatchSize int `json:"max_batch_size"`
}

// Load builds the effective configuration: defaults, then config file,
// then command-line flags, each layer overriding the previous one.
func Load() (*Config, *Flags, error) {
	flags := ParseFlags()

	cfg := Default()

	path := flags.Config
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.json")
	}
	if err := cfg.loadFile(path, flags.Config != ""); err != nil {
		return nil, nil, err
	}

	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, flags, nil
}

// loadFile merges settings from a JSON config file into cfg.
// A missing file is only an error when the path was given explicitly.
func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if c.Ledger.MaxBatchSize <= 0 {
		return fmt.Errorf("ledger.max_batch_size must be positive, got %d", c.Ledger.MaxBatchSize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// DBPath returns the path of the pool snapshot database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "pool")
}
