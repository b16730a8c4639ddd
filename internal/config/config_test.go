package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	return Load(fs, args)
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.DataFile != DefaultDataFile {
		t.Errorf("data file: got %s, want %s", cfg.DataFile, DefaultDataFile)
	}
	if cfg.LevelThreshold != DefaultLevelThreshold {
		t.Errorf("level threshold: got %d, want %d", cfg.LevelThreshold, DefaultLevelThreshold)
	}
	if cfg.ScanIntervalSeconds != DefaultScanInterval {
		t.Errorf("scan interval: got %d, want %d", cfg.ScanIntervalSeconds, DefaultScanInterval)
	}
	if cfg.PomodoroMinutes != DefaultPomodoroMinutes {
		t.Errorf("pomodoro minutes: got %d, want %d", cfg.PomodoroMinutes, DefaultPomodoroMinutes)
	}
	if !cfg.SeedTasks {
		t.Error("seed tasks: got false, want true")
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("log level: got %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestProjectFileOverridesDefaults(t *testing.T) {
	dir := isolate(t)

	content := "data_file = \"board.json\"\nlevel_threshold = 1000\nlog_level = \"debug\"\n"
	if err := os.WriteFile(filepath.Join(dir, "todo.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataFile != "board.json" {
		t.Errorf("data file: got %s, want board.json", cfg.DataFile)
	}
	if cfg.LevelThreshold != 1000 {
		t.Errorf("level threshold: got %d, want 1000", cfg.LevelThreshold)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level: got %s, want debug", cfg.LogLevel)
	}
	// Untouched keys keep their defaults.
	if cfg.PomodoroMinutes != DefaultPomodoroMinutes {
		t.Errorf("pomodoro minutes: got %d, want %d", cfg.PomodoroMinutes, DefaultPomodoroMinutes)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)

	content := "data_file = \"board.json\"\n"
	if err := os.WriteFile(filepath.Join(dir, "todo.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODO_DATA_FILE", "env.json")
	t.Setenv("TODO_POMODORO_MINUTES", "50")

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataFile != "env.json" {
		t.Errorf("data file: got %s, want env.json", cfg.DataFile)
	}
	if cfg.PomodoroMinutes != 50 {
		t.Errorf("pomodoro minutes: got %d, want 50", cfg.PomodoroMinutes)
	}
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_DATA_FILE", "env.json")

	cfg, err := load(t, "-data", "flag.json", "-scan-interval", "5")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataFile != "flag.json" {
		t.Errorf("data file: got %s, want flag.json", cfg.DataFile)
	}
	if cfg.ScanIntervalSeconds != 5 {
		t.Errorf("scan interval: got %d, want 5", cfg.ScanIntervalSeconds)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"zero threshold", []string{"-level-threshold", "0"}},
		{"negative scan interval", []string{"-scan-interval", "-1"}},
		{"zero pomodoro", []string{"-pomodoro", "0"}},
		{"bad log format", []string{"-log-format", "xml"}},
		{"empty data file", []string{"-data", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(t, tt.args...); err == nil {
				t.Error("got nil error for invalid config")
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	isolate(t)
	cfg, err := load(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ScanInterval().Seconds() != float64(DefaultScanInterval) {
		t.Errorf("scan interval duration: got %v", cfg.ScanInterval())
	}
	if cfg.PomodoroDuration().Minutes() != float64(DefaultPomodoroMinutes) {
		t.Errorf("pomodoro duration: got %v", cfg.PomodoroDuration())
	}
}
