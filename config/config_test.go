package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorConfigSanitizeDefaults(t *testing.T) {
	cfg := MonitorConfig{}
	cfg.Sanitize()

	assert.Equal(t, DefaultMonitorInterval, cfg.Interval)
	assert.Equal(t, DefaultMonitorChunkSize, cfg.ChunkSize)
	assert.Equal(t, 1, cfg.DispatchMaxInFlight)
	assert.Equal(t, "not_earlier", cfg.SuppressionBoundary)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestMonitorConfigSanitizeClampsNegatives(t *testing.T) {
	cfg := MonitorConfig{
		Interval:            -time.Minute,
		ChunkSize:           -5,
		DispatchMaxInFlight: 0,
		SuppressionBoundary: " STRICT ",
	}
	cfg.Sanitize()

	assert.Equal(t, DefaultMonitorInterval, cfg.Interval)
	assert.Equal(t, DefaultMonitorChunkSize, cfg.ChunkSize)
	assert.Equal(t, 1, cfg.DispatchMaxInFlight)
	assert.Equal(t, "strict", cfg.SuppressionBoundary)
}

func TestMonitorConfigValidate(t *testing.T) {
	valid := MonitorConfig{
		SuppressionBoundary: "not_earlier",
		TestAlertsTable:     "alerts",
		ModelAlertsTable:    "alerts_models",
		Timezone:            "UTC",
	}
	assert.NoError(t, valid.Validate())

	badBoundary := valid
	badBoundary.SuppressionBoundary = "sometimes"
	assert.ErrorContains(t, badBoundary.Validate(), "suppression boundary")

	sameTables := valid
	sameTables.ModelAlertsTable = "alerts"
	assert.ErrorContains(t, sameTables.Validate(), "must differ")

	badTimezone := valid
	badTimezone.Timezone = "Mars/Olympus_Mons"
	assert.ErrorContains(t, badTimezone.Validate(), "timezone")
}

func TestCacheConfigSanitize(t *testing.T) {
	cfg := CacheConfig{LastSentTTL: -time.Second}
	cfg.Sanitize()
	assert.Equal(t, 10*time.Minute, cfg.LastSentTTL)
}

func TestNotificationsSanitizeDisablesSinksWithoutMaster(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled: false,
		Slack:   SlackNotificationConfig{Enabled: true, WebhookURL: "https://hooks.slack.com/x"},
		Webhook: WebhookNotificationConfig{Enabled: true, URL: "https://example.com/hook"},
	}
	cfg.Sanitize()

	assert.False(t, cfg.Slack.Enabled)
	assert.False(t, cfg.Webhook.Enabled)
}

func TestNotificationsSanitizeRequiresURLs(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled: true,
		Slack:   SlackNotificationConfig{Enabled: true, WebhookURL: "   "},
		Webhook: WebhookNotificationConfig{Enabled: true, URL: "https://example.com/hook", Method: "post"},
	}
	cfg.Sanitize()

	assert.False(t, cfg.Slack.Enabled)
	assert.True(t, cfg.Webhook.Enabled)
	assert.Equal(t, "POST", cfg.Webhook.Method)
	assert.Equal(t, "tablewatch", cfg.Slack.Username)
}

func TestMetricsSanitizeDisablesWithoutAddress(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "  "}
	cfg.Sanitize()
	assert.False(t, cfg.IsEnabled())
	assert.Equal(t, "tablewatch", cfg.StatsdPrefix)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"), false)
	assert.NoError(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yml"), true)
	assert.Error(t, err)
}

func TestApplyFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
timezone: Europe/Amsterdam
chunk_size: 25
slack:
  notification_webhook: https://hooks.slack.com/services/file
  channel_name: "#data-alerts"
`), 0o600))

	fc, err := LoadFile(path, true)
	require.NoError(t, err)

	cfg := AppConfig{}
	cfg.ApplyFile(fc)
	cfg.Sanitize()

	assert.Equal(t, "Europe/Amsterdam", cfg.Monitor.Timezone)
	assert.Equal(t, 25, cfg.Monitor.ChunkSize)
	assert.True(t, cfg.Observability.Notifications.Slack.Enabled)
	assert.Equal(t, "https://hooks.slack.com/services/file", cfg.Observability.Notifications.Slack.WebhookURL)
	assert.Equal(t, "#data-alerts", cfg.Observability.Notifications.Slack.Channel)
}

func TestApplyFileEnvWins(t *testing.T) {
	t.Setenv("MONITOR_TIMEZONE", "UTC")
	t.Setenv("MONITOR_CHUNK_SIZE", "50")

	fc := FileConfig{Timezone: "Europe/Amsterdam", ChunkSize: 25}

	cfg := AppConfig{}
	cfg.Monitor.Timezone = "UTC"
	cfg.Monitor.ChunkSize = 50
	cfg.ApplyFile(fc)

	assert.Equal(t, "UTC", cfg.Monitor.Timezone)
	assert.Equal(t, 50, cfg.Monitor.ChunkSize)
}
