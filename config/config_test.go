package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFirstRunCreatesTemplates(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EDUMIND_BACKEND_HOST", "")
	t.Setenv("EDUMIND_DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	settingsPath := GetSettingsFilePath()
	if !FileExists(settingsPath) {
		t.Errorf("expected %s to be created on first run", settingsPath)
	}

	userConfigPath := filepath.Join(cfg.DataDir(), "config.toml")
	if !FileExists(userConfigPath) {
		t.Errorf("expected %s to be created on first run", userConfigPath)
	}

	if info, err := os.Stat(cfg.DataDir()); err != nil || !info.IsDir() {
		t.Errorf("expected data directory %s to exist", cfg.DataDir())
	}

	if cfg.BackendHost != "http://localhost:5000" {
		t.Errorf("BackendHost = %q, want http://localhost:5000", cfg.BackendHost)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.TimeoutSeconds)
	}
	if cfg.TypingIntervalMs != 20 {
		t.Errorf("TypingIntervalMs = %d, want 20", cfg.TypingIntervalMs)
	}
}

func TestLoadReadsExistingConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EDUMIND_BACKEND_HOST", "")
	t.Setenv("EDUMIND_DATA_DIR", "")

	dataDir := filepath.Join(home, "edu-data")

	if err := EnsureDir(GetConfigDir()); err != nil {
		t.Fatalf("EnsureDir(config dir) error = %v", err)
	}
	settings := "data_directory = \"" + dataDir + "\"\n"
	if err := os.WriteFile(GetSettingsFilePath(), []byte(settings), 0600); err != nil {
		t.Fatalf("write settings.toml: %v", err)
	}

	if err := EnsureDir(dataDir); err != nil {
		t.Fatalf("EnsureDir(data dir) error = %v", err)
	}
	userCfg := `[backend]
host = "http://example.com:8080"
request_timeout_seconds = 5

[chat]
typing_interval_ms = 7
`
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(userCfg), 0600); err != nil {
		t.Fatalf("write config.toml: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDirectory != dataDir {
		t.Errorf("DataDirectory = %q, want %q", cfg.DataDirectory, dataDir)
	}
	if cfg.BackendHost != "http://example.com:8080" {
		t.Errorf("BackendHost = %q, want http://example.com:8080", cfg.BackendHost)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.TimeoutSeconds)
	}
	if cfg.TypingIntervalMs != 7 {
		t.Errorf("TypingIntervalMs = %d, want 7", cfg.TypingIntervalMs)
	}
}

func TestLoadEnvOverridesSkipConfigFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, "env-data")
	t.Setenv("EDUMIND_BACKEND_HOST", "http://env-host:9999")
	t.Setenv("EDUMIND_DATA_DIR", dataDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BackendHost != "http://env-host:9999" {
		t.Errorf("BackendHost = %q, want http://env-host:9999", cfg.BackendHost)
	}
	if cfg.DataDirectory != dataDir {
		t.Errorf("DataDirectory = %q, want %q", cfg.DataDirectory, dataDir)
	}
	if FileExists(GetSettingsFilePath()) {
		t.Error("settings.toml should not be generated when both env overrides are set")
	}
}
