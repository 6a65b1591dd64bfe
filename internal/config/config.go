// Package config reads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ListenAddr is fixed; only the store is selected through the environment.
const ListenAddr = ":5555"

type Config struct {
	// DatabaseURI picks the backend by scheme: sqlite://, postgres://, mysql://.
	DatabaseURI string `env:"DB_URI" envDefault:"sqlite:///camp.db"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
