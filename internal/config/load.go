package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.config/todo/todo.toml or OS equivalent)
// 3. Project config file (todo.toml or .todo.toml in current directory)
// 4. Environment variables (TODO_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	if projFile := findProjectConfigFile(); projFile != "" {
		if err := loadConfigFile(cfg, projFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "todo", "todo.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func findProjectConfigFile() string {
	for _, name := range []string{"todo.toml", ".todo.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TODO_LEVEL_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LevelThreshold = n
		}
	}
	if v := os.Getenv("TODO_SCAN_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ScanIntervalSeconds = n
		}
	}
	if v := os.Getenv("TODO_POMODORO_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PomodoroMinutes = n
		}
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

// parseFlags registers flags bound to cfg and parses args. Flags
// override every other source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to the JSON data file")
	fs.IntVar(&cfg.LevelThreshold, "level-threshold", cfg.LevelThreshold, "XP required per level")
	fs.IntVar(&cfg.ScanIntervalSeconds, "scan-interval", cfg.ScanIntervalSeconds, "Due-date scan interval in seconds")
	fs.IntVar(&cfg.PomodoroMinutes, "pomodoro", cfg.PomodoroMinutes, "Focus session length in minutes")
	fs.BoolVar(&cfg.SeedTasks, "seed", cfg.SeedTasks, "Seed example tasks on first run")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	return fs.Parse(args)
}
