//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"strings"
	"time"
)

// AlertKind partitions alerts by the kind of check that produced them.
// Test alerts come from data-quality test runs, model alerts from model runs.
// The two partitions never interact: a last-sent record for a test check can
// never suppress a model alert, even when identity keys collide.
type AlertKind string

const (
	AlertKindTest  AlertKind = "test"
	AlertKindModel AlertKind = "model"
)

// Valid returns true if the alert kind is one of the supported values.
func (k AlertKind) Valid() bool {
	switch k {
	case AlertKindTest, AlertKindModel:
		return true
	default:
		return false
	}
}

// String returns the string representation of the alert kind.
func (k AlertKind) String() string {
	return string(k)
}

// Kinds returns every alert kind the monitor evaluates, in a stable order.
func Kinds() []AlertKind {
	return []AlertKind{AlertKindTest, AlertKindModel}
}

// PendingAlert is one detected data-quality anomaly awaiting notification.
// The ID is unique per occurrence; the identity key identifies the logical
// recurring check and is shared across repeated occurrences over time.
// Instances are immutable once queried from the store.
type PendingAlert struct {
	ID          string          `json:"id"                    db:"id"`
	Kind        AlertKind       `json:"kind"                  db:"-"`
	IdentityKey string          `json:"identity_key"          db:"identity_key"`
	TableName   string          `json:"table_name"            db:"table_name"`
	ColumnName  *string         `json:"column_name,omitempty" db:"column_name"`
	CheckName   string          `json:"check_name"            db:"check_name"`
	DetectedAt  time.Time       `json:"detected_at"           db:"detected_at"`
	Data        json.RawMessage `json:"data,omitempty"        db:"data"`
}

// EffectiveIdentityKey returns the stored identity key, deriving one from the
// check coordinates when the store row predates the identity_key column.
func (a PendingAlert) EffectiveIdentityKey() string {
	if key := strings.TrimSpace(a.IdentityKey); key != "" {
		return key
	}
	column := ""
	if a.ColumnName != nil {
		column = *a.ColumnName
	}
	return DeriveIdentityKey(a.TableName, column, a.CheckName)
}

// DeriveIdentityKey builds the logical check identifier from its coordinates.
// Returns the empty string when every coordinate is blank, which callers must
// treat as "never suppress".
func DeriveIdentityKey(tableName, columnName, checkName string) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(tableName)),
		strings.ToLower(strings.TrimSpace(columnName)),
		strings.ToLower(strings.TrimSpace(checkName)),
	}
	if parts[0] == "" && parts[1] == "" && parts[2] == "" {
		return ""
	}
	return strings.Join(parts, ".")
}

// LastSentTimes maps identity keys to the most recent successful notification
// time for that logical check. Read-only input to suppression; mutation
// happens only through the remote store via the mark-sent operation.
type LastSentTimes map[string]time.Time

// SentAt returns the last-sent timestamp for the given identity key.
func (l LastSentTimes) SentAt(identityKey string) (time.Time, bool) {
	if l == nil {
		return time.Time{}, false
	}
	t, ok := l[identityKey]
	return t, ok
}

// SuppressionSummary carries per-pass counters for logging and metrics.
type SuppressionSummary struct {
	Kind               AlertKind
	Pending            int
	Suppressed         int
	MissingIdentityKey int
}
