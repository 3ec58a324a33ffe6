// Package suppress decides which pending data-quality alerts must be withheld
// from notification because an equivalent notification was already sent.
package suppress

import (
	"log/slog"
	"time"

	"github.com/tablewatch/tablewatch/internal/domain/model"
)

// Boundary selects how a last-sent timestamp is compared against an alert's
// detection time. The backing store's exact semantics are not fully pinned
// down, so the comparison is configurable rather than hard-coded.
type Boundary string

const (
	// BoundaryNotEarlier suppresses when sentAt >= detectedAt.
	BoundaryNotEarlier Boundary = "not_earlier"
	// BoundaryStrict suppresses only when sentAt > detectedAt.
	BoundaryStrict Boundary = "strict"
)

// Valid returns true if the boundary is one of the supported values.
func (b Boundary) Valid() bool {
	switch b {
	case BoundaryNotEarlier, BoundaryStrict:
		return true
	default:
		return false
	}
}

// String returns the string representation of the boundary.
func (b Boundary) String() string {
	return string(b)
}

// Options configures the suppression engine.
type Options struct {
	Boundary Boundary     // defaults to BoundaryNotEarlier
	Logger   *slog.Logger // optional
}

// Engine computes suppression decisions over already-materialized snapshots.
// It performs no I/O and holds no mutable state, so a single instance is safe
// for concurrent use across alert kinds.
type Engine struct {
	boundary Boundary
	logger   *slog.Logger
}

// NewEngine constructs a suppression engine.
func NewEngine(opts Options) *Engine {
	boundary := opts.Boundary
	if !boundary.Valid() {
		boundary = BoundaryNotEarlier
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "suppress_engine")
	}

	return &Engine{
		boundary: boundary,
		logger:   logger,
	}
}

// Suppress returns the IDs of pending alerts whose logical check was already
// notified at or after their detection time, in input order, together with
// per-pass counters.
//
// Alerts without an identity key are never suppressed: over-notification is
// preferred to silently dropping an anomaly. They are counted in the summary
// so the caller can flag them for investigation.
//
// The lastSent snapshot is not updated mid-pass. Pending alerts sharing one
// identity key therefore resolve to a uniform decision, never a mix.
func (e *Engine) Suppress(pending []model.PendingAlert, lastSent model.LastSentTimes) ([]string, model.SuppressionSummary) {
	summary := model.SuppressionSummary{Pending: len(pending)}
	if len(pending) > 0 {
		summary.Kind = pending[0].Kind
	}

	var suppressed []string
	for _, alert := range pending {
		key := alert.EffectiveIdentityKey()
		if key == "" {
			summary.MissingIdentityKey++
			if e.logger != nil {
				e.logger.Warn("pending alert has no identity key, not suppressing",
					"alert_id", alert.ID,
					"kind", alert.Kind,
					"table", alert.TableName,
				)
			}
			continue
		}

		sentAt, ok := lastSent.SentAt(key)
		if !ok {
			continue
		}
		if e.alreadyNotified(sentAt, alert) {
			suppressed = append(suppressed, alert.ID)
			summary.Suppressed++
		}
	}

	return suppressed, summary
}

func (e *Engine) alreadyNotified(sentAt time.Time, alert model.PendingAlert) bool {
	if e.boundary == BoundaryStrict {
		return sentAt.After(alert.DetectedAt)
	}
	return !sentAt.Before(alert.DetectedAt)
}
