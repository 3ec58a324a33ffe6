// Package bootstrap wires configuration, connections, and services together
// for application startup.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tablewatch/tablewatch/config"
)

// DefaultConfigFile is consulted when CONFIG_FILE is not set. A missing
// default file is not an error.
const DefaultConfigFile = "config.yml"

// InitLogger initializes the structured logger.
func InitLogger(isDev bool) *slog.Logger {
	level := slog.LevelInfo
	if isDev {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables and the optional
// YAML config file overlay. Environment variables always win over file
// values.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	path := cfg.ConfigFile
	required := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	fc, err := config.LoadFile(path, required)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyFile(fc)

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
