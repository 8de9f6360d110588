// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	DBPath    string `env:"DB_PATH" envDefault:"./data/divvyup.db"`
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	JoinRateLimit int           `env:"JOIN_RATE_LIMIT" envDefault:"20"` // per client IP per minute
}

// Load reads .env if present, then parses the environment.
// Variables already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.JoinRateLimit <= 0 {
		return nil, fmt.Errorf("config.Load: JOIN_RATE_LIMIT must be positive, got %d", cfg.JoinRateLimit)
	}
	return &cfg, nil
}
