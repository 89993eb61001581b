// Package config loads and validates process configuration.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/okian/jamstats/internal/domain/tours"
)

// Config is the process configuration, layered from defaults, an
// optional YAML file and JAMSTATS_-prefixed environment variables.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory batch queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers; 0 lets the
	// pool size itself from the CPU count.
	WorkerCount int `koanf:"worker_count"`

	// CacheSize bounds the memoized leaderboard result cache.
	CacheSize int `koanf:"cache_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// TourGapDays is the tour segmentation gap applied to requests
	// that do not pick their own.
	TourGapDays int `koanf:"tour_gap_days"`

	// ShutdownGraceSeconds bounds draining on SIGINT/SIGTERM.
	ShutdownGraceSeconds int `koanf:"shutdown_grace_seconds"`

	// SeedPath optionally points at a JSON file of performance
	// records loaded into the dataset at startup.
	SeedPath string `koanf:"seed_path"`
}

// Default returns the configuration the service runs with when nothing
// overrides it.
func Default() Config {
	return Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		QueueSize:            10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		CacheSize:            64,
		MaxLeaderboardLimit:  500,
		TourGapDays:          tours.DefaultGapDays,
		ShutdownGraceSeconds: 30,
	}
}

// ShutdownGrace returns the shutdown window as a duration.
func (c Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceSeconds) * time.Second
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !logLevels[c.LogLevel]:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 0:
		return fmt.Errorf("%w: worker_count must not be negative", ErrInvalidConfig)
	case c.CacheSize < 1:
		return fmt.Errorf("%w: cache_size must be positive", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case c.TourGapDays < 0:
		return fmt.Errorf("%w: tour_gap_days must not be negative", ErrInvalidConfig)
	case c.ShutdownGraceSeconds < 1:
		return fmt.Errorf("%w: shutdown_grace_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
