// Package config loads optional user configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds defaults for the CLI and the HTTP server.
type Config struct {
	Method     string `toml:"method"`
	HistoryDir string `toml:"history_dir"`
	HTTPAddr   string `toml:"http_addr"`
	LogLevel   string `toml:"log_level"`
}

// Load reads the config file from the standard location; a missing file
// yields the defaults.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// LoadFromFile loads config from a specific file. Unset fields fall
// back to defaults; a malformed file is an error.
func LoadFromFile(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Method == "" {
		cfg.Method = Default().Method
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = Default().HistoryDir
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = Default().HTTPAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	historyDir := "hexcast-history"
	if err == nil {
		historyDir = filepath.Join(home, ".local", "share", "hexcast", "history")
	}
	return Config{
		Method:     "image",
		HistoryDir: historyDir,
		HTTPAddr:   ":8080",
		LogLevel:   "info",
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hexcast", "config.toml"), nil
}
