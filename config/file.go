package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML config file shape. It mirrors the subset of
// settings operators commonly keep in a checked-in config.yml; environment
// variables always win over file values.
type FileConfig struct {
	Timezone  string `yaml:"timezone"`
	ChunkSize int    `yaml:"chunk_size"`

	Slack struct {
		NotificationWebhook string `yaml:"notification_webhook"`
		ChannelName         string `yaml:"channel_name"`
	} `yaml:"slack"`

	Webhook struct {
		URL      string `yaml:"url"`
		BodyExpr string `yaml:"body_expr"`
	} `yaml:"webhook"`
}

// LoadFile parses the YAML config file at path. A missing file is not an
// error when the path came from a default; callers pass required=true when
// the operator named the file explicitly.
func LoadFile(path string, required bool) (FileConfig, error) {
	var fc FileConfig

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return fc, nil
		}
		return fc, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// ApplyFile overlays file values onto the config. A file value is applied
// only when its corresponding environment variable is unset, keeping env
// authoritative.
func (c *AppConfig) ApplyFile(fc FileConfig) {
	if fc.Timezone != "" && !envIsSet("MONITOR_TIMEZONE") {
		c.Monitor.Timezone = fc.Timezone
	}
	if fc.ChunkSize > 0 && !envIsSet("MONITOR_CHUNK_SIZE") {
		c.Monitor.ChunkSize = fc.ChunkSize
	}

	slack := &c.Observability.Notifications.Slack
	if fc.Slack.NotificationWebhook != "" && !envIsSet("OBSERVABILITY_NOTIFICATIONS_SLACK_WEBHOOK_URL") {
		slack.WebhookURL = fc.Slack.NotificationWebhook
		slack.Enabled = true
		c.enableNotificationsFromFile()
	}
	if fc.Slack.ChannelName != "" && !envIsSet("OBSERVABILITY_NOTIFICATIONS_SLACK_CHANNEL") {
		slack.Channel = fc.Slack.ChannelName
	}

	webhook := &c.Observability.Notifications.Webhook
	if fc.Webhook.URL != "" && !envIsSet("OBSERVABILITY_NOTIFICATIONS_WEBHOOK_URL") {
		webhook.URL = fc.Webhook.URL
		webhook.Enabled = true
		c.enableNotificationsFromFile()
	}
	if fc.Webhook.BodyExpr != "" && !envIsSet("OBSERVABILITY_NOTIFICATIONS_WEBHOOK_BODY_EXPR") {
		webhook.BodyExpr = fc.Webhook.BodyExpr
	}
}

// enableNotificationsFromFile turns the notification fan-out on when a sink
// is configured through the file and the operator did not explicitly disable
// it through the environment.
func (c *AppConfig) enableNotificationsFromFile() {
	if !envIsSet("OBSERVABILITY_NOTIFICATIONS_ENABLED") {
		c.Observability.Notifications.Enabled = true
	}
}

func envIsSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}
