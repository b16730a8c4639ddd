// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"time"
)

// Default values.
const (
	DefaultDataFile        = "todo_data.json"
	DefaultLevelThreshold  = 500
	DefaultScanInterval    = 60
	DefaultPomodoroMinutes = 25
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds the full configuration for the tracker.
type Config struct {
	// Paths
	DataFile string `toml:"data_file"`

	// Rewards
	LevelThreshold int `toml:"level_threshold"`

	// Deadline scanner
	ScanIntervalSeconds int `toml:"scan_interval_seconds"`

	// Focus timer
	PomodoroMinutes int `toml:"pomodoro_minutes"`

	// Seed example tasks when the data file does not exist yet
	SeedTasks bool `toml:"seed_tasks"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LevelThreshold = DefaultLevelThreshold
	cfg.ScanIntervalSeconds = DefaultScanInterval
	cfg.PomodoroMinutes = DefaultPomodoroMinutes
	cfg.SeedTasks = true
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// ScanInterval returns the scanner polling interval as a duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.ScanIntervalSeconds) * time.Second
}

// PomodoroDuration returns the focus session length as a duration.
func (c *Config) PomodoroDuration() time.Duration {
	return time.Duration(c.PomodoroMinutes) * time.Minute
}

// validate checks the final merged configuration.
func validate(cfg *Config) error {
	if cfg.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	if cfg.LevelThreshold <= 0 {
		return fmt.Errorf("level_threshold must be positive, got %d", cfg.LevelThreshold)
	}
	if cfg.ScanIntervalSeconds <= 0 {
		return fmt.Errorf("scan_interval_seconds must be positive, got %d", cfg.ScanIntervalSeconds)
	}
	if cfg.PomodoroMinutes <= 0 {
		return fmt.Errorf("pomodoro_minutes must be positive, got %d", cfg.PomodoroMinutes)
	}
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format must be text, json, or logfmt, got %q", cfg.LogFormat)
	}
	return nil
}
