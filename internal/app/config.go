package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DeclsPath    string // .hcl class declaration file or directory
	SnapshotPath string // optional CBOR image output

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeclsPath == "" {
		return nil, errors.New("DeclsPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
