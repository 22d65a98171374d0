package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string
}

type DatabaseConfig struct {
	// URL is the only required setting; startup fails fast without it.
	URL            string
	MigrationsPath string
}

type Config struct {
	App      AppConfig
	Database DatabaseConfig
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}

	cfg.Database.MigrationsPath = os.Getenv("MIGRATIONS_PATH")
	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = "migrations"
	}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	return cfg, nil
}
