package config

import (
	"os"
	"path/filepath"
)

// Protocol limits. These are part of the acceptance rules and must match
// across every tool that shares a pool snapshot.
const (
	// MaxTxInputs caps the number of inputs per transaction.
	MaxTxInputs = 512

	// MaxTxOutputs caps the number of outputs per transaction.
	MaxTxOutputs = 512
)

// DefaultMaxBatchSize caps candidates per submit round.
const DefaultMaxBatchSize = 10000

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
		Ledger: LedgerConfig{
			MaxBatchSize: DefaultMaxBatchSize,
		},
	}
}

// DefaultDataDir returns the platform default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vexa"
	}
	return filepath.Join(home, ".vexa")
}
