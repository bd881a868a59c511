// Package config loads and persists lingocheck's host-level settings:
// where logs and the paragraph store live, and the tunables that
// govern checkqueue's interrupt wait and monitor UI.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration.
type Config struct {
	// Logging controls where obslog writes.
	Logging LoggingConfig `json:"logging"`

	// Store controls the paragraph/document store.
	Store StoreConfig `json:"store"`

	// Queue holds checkqueue tunables the host applies through
	// checkqueue's constructor options when it wires a Controller up;
	// checkqueue itself reads no config file.
	Queue QueueConfig `json:"queue"`

	// Monitor holds the TUI dashboard's UI preferences.
	Monitor MonitorConfig `json:"monitor"`
}

// LoggingConfig controls obslog's file destination. Level is stored
// and loaded but not applied: obslog always logs at debug level.
type LoggingConfig struct {
	Dir   string `json:"dir"`
	Level string `json:"level"` // "debug", "info", "warn", "error"
}

// StoreConfig controls the SQLite-backed docstore.
type StoreConfig struct {
	Path string `json:"path"` // file path, or ":memory:"
}

// QueueConfig holds knobs the host applies when wiring a
// checkqueue.Controller.
type QueueConfig struct {
	// InterruptWaitTicks is passed to checkqueue.New via
	// checkqueue.WithMaxInterruptTicks, overriding
	// checkqueue.MaxInterruptTicks for hosts that need a shorter or
	// longer Reset/Dispose cancellation bound. Values <= 0 leave
	// the package default in effect.
	InterruptWaitTicks int `json:"interrupt_wait_ticks"`
}

// MonitorConfig holds TUI preferences for cmd/checkqueue-monitor.
type MonitorConfig struct {
	Theme        string `json:"theme"` // "dark" or "light"
	RefreshMs    int    `json:"refresh_ms"`
	EventHistory int    `json:"event_history"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Dir:   defaultStateDir("logs"),
			Level: "info",
		},
		Store: StoreConfig{
			Path: defaultStateDir("lingocheck.db"),
		},
		Queue: QueueConfig{
			InterruptWaitTicks: 2000,
		},
		Monitor: MonitorConfig{
			Theme:        "dark",
			RefreshMs:    250,
			EventHistory: 200,
		},
	}
}

func defaultStateDir(leaf string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lingocheck", leaf)
}

// Path returns the path to the config file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lingocheck", "config.json")
}

// Load reads config from disk, or returns defaults if it doesn't
// exist yet. A malformed file falls back to defaults rather than
// failing the caller.
func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
