package bootstrap

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tablewatch/tablewatch/config"
)

func TestPassTimeout(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     time.Duration
	}{
		{
			name:     "short intervals are floored at one minute",
			interval: 10 * time.Second,
			want:     time.Minute,
		},
		{
			name:     "boundary interval",
			interval: 30 * time.Second,
			want:     time.Minute,
		},
		{
			name:     "long intervals get two intervals",
			interval: 5 * time.Minute,
			want:     10 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := passTimeout(tt.interval); got != tt.want {
				t.Fatalf("passTimeout(%v) = %v, want %v", tt.interval, got, tt.want)
			}
		})
	}
}

func TestNewServicesValidation(t *testing.T) {
	_, err := NewServices(ServiceDeps{})
	assert.ErrorContains(t, err, "config is required")

	cfg := config.AppConfig{}
	_, err = NewServices(ServiceDeps{Config: &cfg})
	assert.ErrorContains(t, err, "database connection is required")
}

func TestBuildAlertNotifierSkipsDisabledSinks(t *testing.T) {
	notifier := buildAlertNotifier(slog.Default(), config.ObservabilityNotificationsConfig{}, time.UTC)
	assert.False(t, notifier.Enabled())
}

func TestBuildAlertNotifierWithConfiguredSinks(t *testing.T) {
	cfg := config.ObservabilityNotificationsConfig{
		Enabled:    true,
		Timeout:    time.Second,
		RetryLimit: 1,
		Slack: config.SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/T0/B0/x",
			Channel:    "#data-alerts",
		},
		Webhook: config.WebhookNotificationConfig{
			Enabled: true,
			URL:     "https://alerts.internal.example.com/ingest",
		},
	}

	notifier := buildAlertNotifier(slog.Default(), cfg, time.UTC)
	assert.True(t, notifier.Enabled())
}

func TestBuildObservabilityWithoutMetrics(t *testing.T) {
	obs := buildObservability(slog.Default(), config.ObservabilityConfig{}, time.UTC)
	assert.Nil(t, obs.MetricsSink)
	assert.Nil(t, metricsSink(obs))
}
