package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config конфигурация клиента, загружается из config.toml
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Session SessionConfig `toml:"session"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
}

// BackendConfig параметры подключения к REST API маркетплейса
type BackendConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

// SessionConfig параметры хранения сессии
type SessionConfig struct {
	TokenFile string `toml:"token_file"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"` // пустой или "stdout" - консоль
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает и валидирует конфигурацию из toml-файла
func Load(path string) (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{Timeout: 10},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Addr:        ":9090",
			Path:        "/metrics",
			ServiceName: "rentmarket-client",
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: backend.base_url is required")
	}
	if cfg.Backend.Timeout <= 0 {
		return nil, fmt.Errorf("config: backend.timeout must be positive")
	}

	if cfg.Session.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: session.token_file is not set and home dir is unknown: %w", err)
		}
		cfg.Session.TokenFile = filepath.Join(home, ".rentmarket", "token")
	}

	return cfg, nil
}
