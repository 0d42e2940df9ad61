package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL" default:"postgresql://postgres@localhost:5432/efftrack"`
	ServerPort    string        `envconfig:"SERVER_PORT" default:"8080"`
	JWTSecret     string        `envconfig:"JWT_SECRET" default:"your-super-secret-key-change-in-production"`
	JWTExpiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	// FrontendURL is the base used when generating engineer access links.
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
