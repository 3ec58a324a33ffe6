// Package notify defines the alert notification contract shared by sinks.
package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// AlertPayload captures the canonical data we emit for data quality alert
// notifications.
type AlertPayload struct {
	AlertID     string
	Kind        string
	IdentityKey string
	TableName   string
	ColumnName  string
	CheckName   string
	Severity    string
	DetectedAt  time.Time
	Metadata    map[string]string
}

// Sink describes a destination capable of consuming alert notifications.
type Sink interface {
	SendAlert(ctx context.Context, payload AlertPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload AlertPayload) error

// SendAlert implements the Sink interface.
func (f SinkFunc) SendAlert(ctx context.Context, payload AlertPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
