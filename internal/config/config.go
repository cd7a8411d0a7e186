// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	DataDir     string
	Storage     string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
}

// Option adjusts the loaded configuration before it is validated.
type Option func(*Config)

// WithStorage overrides the backend chosen by BMI_STORAGE.
func WithStorage(storage string) Option {
	return func(c *Config) { c.Storage = storage }
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present.
func Load(opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:     getEnv("BMI_DATA_DIR", "data"),
		Storage:     getEnv("BMI_STORAGE", StorageFile),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("BMI_LOG_LEVEL", "warn"),
		LogFormat:   getEnv("BMI_LOG_FORMAT", "text"),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that the selected backend is known and fully configured.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if c.DataDir == "" {
			return fmt.Errorf("BMI_DATA_DIR must not be empty")
		}
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when BMI_STORAGE=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("BMI_STORAGE must be one of %s, %s, %s; got %q", StorageFile, StorageMemory, StoragePostgres, c.Storage)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("BMI_LOG_FORMAT must be text or json; got %q", c.LogFormat)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
