package config

import (
	"github.com/caarlos0/env/v9"
)

// Config holds the runtime configuration for the server. It is parsed once
// in main and passed down; packages must not read the environment themselves.
type Config struct {
	Port        string `env:"PORT" envDefault:"8008"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"workmode.db"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"development-insecure-secret-change-me"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:"workmode-api"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"workmode-clients"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
