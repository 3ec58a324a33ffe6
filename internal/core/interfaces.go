package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tablewatch/tablewatch/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// AlertStoreRepository defines the read capabilities the monitor needs from
// the backing alert store. Implementations own deserialization; the core only
// sees materialized snapshots.
type AlertStoreRepository interface {
	// QueryPendingAlerts returns alerts of the given kind that have not been
	// notified yet, in detection order.
	QueryPendingAlerts(ctx context.Context, kind model.AlertKind) ([]model.PendingAlert, error)

	// QueryLastSentTimes returns the most recent successful notification time
	// per identity key for the given kind.
	QueryLastSentTimes(ctx context.Context, kind model.AlertKind) (model.LastSentTimes, error)
}

// Remote operation names accepted by the operation invoker. These mirror the
// store-side update macros they execute.
const (
	OperationMarkAlertsSent    = "update_sent_alerts"
	OperationMarkAlertsSkipped = "update_skipped_alerts"
)

// OperationInvoker executes a named remote operation with a JSON argument
// payload against the backing store. Production implementations translate the
// operation name into store statements; tests substitute in-memory fakes.
type OperationInvoker interface {
	Invoke(ctx context.Context, operation string, args json.RawMessage) (json.RawMessage, error)
}

// CacheRepository defines byte-oriented cache operations (Redis-backed in
// production).
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}

// LastSentCache is a typed read-through cache for last-sent snapshots, keyed
// by alert kind. A miss returns ok=false with no error.
type LastSentCache interface {
	Get(ctx context.Context, kind model.AlertKind) (model.LastSentTimes, bool, error)
	Put(ctx context.Context, kind model.AlertKind, times model.LastSentTimes) error
	Invalidate(ctx context.Context, kind model.AlertKind) error
}
