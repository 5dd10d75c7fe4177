// Package config carries all runtime settings as one explicit object built
// at startup. Nothing else in the codebase reads the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string        `env:"DATABASE_URL,required"`
	JWTSecret   string        `env:"JWT_SECRET,required"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

func Load() (Config, error) {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return cfg, nil
}
