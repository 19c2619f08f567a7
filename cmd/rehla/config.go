package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
)

type clientConfig struct {
	APIURL    string `env:"REHLA_API_URL" envDefault:"http://localhost:5000"`
	StatePath string `env:"REHLA_STATE"`
	LogLevel  string `env:"REHLA_LOG_LEVEL" envDefault:"warn"`
}

func loadConfig() (*clientConfig, error) {
	cfg := &clientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}
	if cfg.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		cfg.StatePath = filepath.Join(home, ".rehla", "state.db")
	}
	return cfg, nil
}
