// Package config holds the optimizer server configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/zerr"
)

// Config holds all server configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Cache   CacheConfig   `toml:"cache"`
	Sweep   SweepConfig   `toml:"sweep"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host                  string   `toml:"host"`
	Port                  int      `toml:"port"`
	CORSOrigins           []string `toml:"cors_origins"`
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
	EnableMetrics         bool     `toml:"enable_metrics"`
}

// CacheConfig controls the optimization result cache.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// SweepConfig controls parallel parameter sweeps.
type SweepConfig struct {
	Concurrency int `toml:"concurrency"`
	MaxGridSize int `toml:"max_grid_size"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:                  "127.0.0.1",
			Port:                  8080,
			CORSOrigins:           []string{"*"},
			RequestTimeoutSeconds: 30,
			EnableMetrics:         true,
		},
		Cache: CacheConfig{
			MaxEntries: 256,
		},
		Sweep: SweepConfig{
			Concurrency: 0, // auto = runtime.NumCPU()
			MaxGridSize: 512,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads config from path, falling back to defaults when the file
// does not exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg.withAutoValues(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg.withAutoValues(), nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, zerr.With(zerr.Wrap(err, "failed to parse config"), "path", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.withAutoValues(), nil
}

// Save writes the config to path as TOML.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerr.Wrap(err, "failed to create config directory")
	}

	f, err := os.Create(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create config file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close after encode

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.API.Port < 0 || c.API.Port > 65535 {
		return zerr.With(zerr.New("invalid api port"), "port", c.API.Port)
	}
	if c.API.RequestTimeoutSeconds < 0 {
		return zerr.New("request timeout must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return zerr.New("cache max entries must not be negative")
	}
	if c.Sweep.Concurrency < 0 || c.Sweep.MaxGridSize < 0 {
		return zerr.New("sweep limits must not be negative")
	}
	return nil
}

// RequestTimeout returns the per-request timeout.
func (c APIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) withAutoValues() Config {
	if c.Sweep.Concurrency == 0 {
		c.Sweep.Concurrency = runtime.NumCPU()
	}
	return c
}
