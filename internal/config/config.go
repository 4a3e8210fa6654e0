// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"os"
	"path/filepath"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// DBPath locates the sqlite database backing the primary storage tier
	// and the team registry.
	DBPath string `koanf:"db_path"`

	// SessionStorePath locates the session-scoped JSON document used as the
	// secondary storage tier.
	SessionStorePath string `koanf:"session_store_path"`

	// SaveMaxAttempts caps how many fallible storage tiers a save tries
	// before collapsing to the in-memory cache.
	SaveMaxAttempts int `koanf:"save_max_attempts"`

	// SaveQueueSize bounds the pending fire-and-forget save requests.
	SaveQueueSize int `koanf:"save_queue_size"`
}

// New creates a Config with defaults.
func New() *Config {
	dataDir := defaultDataDir()
	return &Config{
		LogLevel:         "info",
		Addr:             ":9090",
		DBPath:           filepath.Join(dataDir, "youcoder.db"),
		SessionStorePath: filepath.Join(dataDir, "session.json"),
		SaveMaxAttempts:  2,
		SaveQueueSize:    1024,
	}
}

// defaultDataDir places state under the user cache dir, falling back to the
// working directory when none is resolvable.
func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "youcoder")
	}
	return "."
}
