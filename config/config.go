package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library, optionally overlaid with values from a
// YAML config file. See individual domain config files for details on
// available environment variables:
//   - database.go: Database and cache configuration
//   - monitor.go: Monitor pass configuration
//   - observability.go: Metrics and notification configuration
//   - file.go: YAML config file overlay
type AppConfig struct {
	// IsDev controls development mode behavior (log level, pretty output).
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// ConfigFile points to an optional YAML config file overlay.
	ConfigFile string `env:"CONFIG_FILE"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig

	// Monitor pass configuration
	Monitor MonitorConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment
// variables and applying any config file overlay.
func (c *AppConfig) Sanitize() {
	c.Monitor.Sanitize()
	c.Cache.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and APP_ENV environment variables.
// APP_ENV is checked as a fallback for deployments that only set one knob.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}

// Validate reports configuration combinations the application cannot run
// with. Call after Sanitize.
func (c *AppConfig) Validate() error {
	return c.Monitor.Validate()
}
