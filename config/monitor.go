package config

import (
	"fmt"
	"strings"
	"time"
)

// Monitor pass defaults. The chunk size default matches the payload bound
// the store-side update macros were sized for.
const (
	DefaultMonitorInterval  = 5 * time.Minute
	DefaultMonitorChunkSize = 50
)

// MonitorConfig controls the suppression and dispatch pass.
type MonitorConfig struct {
	// Interval between monitor passes when running as a daemon.
	Interval time.Duration `env:"MONITOR_INTERVAL" envDefault:"5m"`

	// RunOnce executes a single pass and exits instead of looping.
	RunOnce bool `env:"MONITOR_RUN_ONCE" envDefault:"false"`

	// ChunkSize bounds how many alerts one remote update call carries.
	ChunkSize int `env:"MONITOR_CHUNK_SIZE" envDefault:"50"`

	// DispatchMaxInFlight bounds concurrent chunk calls per dispatch.
	DispatchMaxInFlight int `env:"MONITOR_DISPATCH_MAX_IN_FLIGHT" envDefault:"1"`

	// SuppressionBoundary selects the last-sent comparison: "not_earlier"
	// suppresses when sentAt >= detectedAt, "strict" only when sentAt > detectedAt.
	SuppressionBoundary string `env:"MONITOR_SUPPRESSION_BOUNDARY" envDefault:"not_earlier"`

	// TestAlertsTable and ModelAlertsTable name the backing store tables per
	// alert kind.
	TestAlertsTable  string `env:"MONITOR_TEST_ALERTS_TABLE"  envDefault:"alerts"`
	ModelAlertsTable string `env:"MONITOR_MODEL_ALERTS_TABLE" envDefault:"alerts_models"`

	// Timezone is used when rendering notification timestamps.
	Timezone string `env:"MONITOR_TIMEZONE" envDefault:"UTC"`
}

// Sanitize applies guardrails to monitor configuration values.
func (c *MonitorConfig) Sanitize() {
	if c.Interval <= 0 {
		c.Interval = DefaultMonitorInterval
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultMonitorChunkSize
	}
	if c.DispatchMaxInFlight < 1 {
		c.DispatchMaxInFlight = 1
	}

	c.SuppressionBoundary = strings.ToLower(strings.TrimSpace(c.SuppressionBoundary))
	if c.SuppressionBoundary == "" {
		c.SuppressionBoundary = "not_earlier"
	}

	c.TestAlertsTable = strings.TrimSpace(c.TestAlertsTable)
	c.ModelAlertsTable = strings.TrimSpace(c.ModelAlertsTable)
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
}

// Validate reports monitor configuration the application cannot run with.
func (c *MonitorConfig) Validate() error {
	switch c.SuppressionBoundary {
	case "not_earlier", "strict":
	default:
		return fmt.Errorf("invalid suppression boundary %q", c.SuppressionBoundary)
	}

	if c.TestAlertsTable == "" {
		return fmt.Errorf("test alerts table is required")
	}
	if c.ModelAlertsTable == "" {
		return fmt.Errorf("model alerts table is required")
	}
	if c.TestAlertsTable == c.ModelAlertsTable {
		return fmt.Errorf("test and model alert tables must differ, both are %q", c.TestAlertsTable)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}
