package testutil

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tablewatch/tablewatch/internal/domain/model"
)

// PendingAlertBuilder provides a fluent interface for building PendingAlert values for testing.
type PendingAlertBuilder struct {
	alert model.PendingAlert
}

// NewPendingAlert creates a new PendingAlertBuilder with sensible defaults.
func NewPendingAlert() *PendingAlertBuilder {
	return &PendingAlertBuilder{
		alert: model.PendingAlert{
			ID:          uuid.NewString(),
			Kind:        model.AlertKindTest,
			IdentityKey: "public.orders.not_null_orders_id",
			TableName:   "public.orders",
			CheckName:   "not_null_orders_id",
			DetectedAt:  time.Now().UTC().Truncate(time.Second),
		},
	}
}

// WithID sets the alert ID.
func (b *PendingAlertBuilder) WithID(id string) *PendingAlertBuilder {
	b.alert.ID = id
	return b
}

// WithKind sets the alert kind.
func (b *PendingAlertBuilder) WithKind(kind model.AlertKind) *PendingAlertBuilder {
	b.alert.Kind = kind
	return b
}

// WithIdentityKey sets the identity key.
func (b *PendingAlertBuilder) WithIdentityKey(key string) *PendingAlertBuilder {
	b.alert.IdentityKey = key
	return b
}

// WithTableName sets the table name.
func (b *PendingAlertBuilder) WithTableName(tableName string) *PendingAlertBuilder {
	b.alert.TableName = tableName
	return b
}

// WithColumnName sets the column name.
func (b *PendingAlertBuilder) WithColumnName(columnName string) *PendingAlertBuilder {
	b.alert.ColumnName = &columnName
	return b
}

// WithCheckName sets the check name.
func (b *PendingAlertBuilder) WithCheckName(checkName string) *PendingAlertBuilder {
	b.alert.CheckName = checkName
	return b
}

// WithDetectedAt sets the detection time.
func (b *PendingAlertBuilder) WithDetectedAt(detectedAt time.Time) *PendingAlertBuilder {
	b.alert.DetectedAt = detectedAt
	return b
}

// WithData sets the raw alert data payload.
func (b *PendingAlertBuilder) WithData(data json.RawMessage) *PendingAlertBuilder {
	b.alert.Data = data
	return b
}

// WithDataString sets the raw alert data payload from a string.
func (b *PendingAlertBuilder) WithDataString(data string) *PendingAlertBuilder {
	b.alert.Data = json.RawMessage(data)
	return b
}

// Build returns the constructed PendingAlert.
func (b *PendingAlertBuilder) Build() model.PendingAlert {
	return b.alert
}
