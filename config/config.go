package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type BackendConfig struct {
	Host           string `toml:"host"`
	TimeoutSeconds int    `toml:"request_timeout_seconds"`
}

type ChatConfig struct {
	TypingIntervalMs int `toml:"typing_interval_ms"`
}

type UserConfig struct {
	Backend BackendConfig `toml:"backend"`
	Chat    ChatConfig    `toml:"chat"`
}

type Config struct {
	DataDirectory    string
	BackendHost      string
	TimeoutSeconds   int
	TypingIntervalMs int
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) TypingInterval() time.Duration {
	return time.Duration(c.TypingIntervalMs) * time.Millisecond
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("EDUMIND_BACKEND_HOST"); host != "" {
		c.BackendHost = host
	}
	if dataDir := os.Getenv("EDUMIND_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func hasAllEnvOverrides() bool {
	return os.Getenv("EDUMIND_BACKEND_HOST") != "" && os.Getenv("EDUMIND_DATA_DIR") != ""
}

func CheckDebug() bool {
	debug := os.Getenv("EDUMIND_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - the log may echo conversation content
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (EDUMIND_DEBUG=%s) ===", os.Getenv("EDUMIND_DEBUG"))
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	// First run generates settings.toml and config.toml templates; the
	// load helpers create them when missing. With both env overrides set
	// there is nothing to read, so skip generation entirely.
	if !hasAllEnvOverrides() {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		cfg.DataDirectory = systemCfg.DataDirectory

		userCfg, err := LoadUserConfig(cfg.DataDir())
		if err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
		cfg.applyUserConfig(userCfg)
	}

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	if userCfg.Backend.Host != "" {
		c.BackendHost = userCfg.Backend.Host
	}
	if userCfg.Backend.TimeoutSeconds > 0 {
		c.TimeoutSeconds = userCfg.Backend.TimeoutSeconds
	}
	if userCfg.Chat.TypingIntervalMs > 0 {
		c.TypingIntervalMs = userCfg.Chat.TypingIntervalMs
	}
}
