package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tablewatch/tablewatch/internal/core"
	"github.com/tablewatch/tablewatch/internal/domain/model"
	"github.com/tablewatch/tablewatch/internal/observability/metrics"
	"github.com/tablewatch/tablewatch/internal/observability/notify"
	"github.com/tablewatch/tablewatch/internal/observability/statsd"
	"github.com/tablewatch/tablewatch/internal/service/dispatch"
	"github.com/tablewatch/tablewatch/internal/service/suppress"
)

// AlertNotifier delivers notifications for alerts that survived suppression.
type AlertNotifier interface {
	NotifyAlert(ctx context.Context, payload notify.AlertPayload)
	Enabled() bool
}

// MonitorOptions groups dependencies for MonitorService.
type MonitorOptions struct {
	AlertStore core.AlertStoreRepository  // Required: pending/last-sent reads
	Engine     *suppress.Engine           // Required: suppression decisions
	Dispatcher *dispatch.Dispatcher       // Required: chunked status updates
	Tables     map[model.AlertKind]string // Required: backing table per kind
	Notifier   AlertNotifier              // Optional: alert delivery fan-out
	Cache      core.LastSentCache         // Optional: last-sent read-through cache
	Metrics    statsd.Sink                // Optional: metric emission
	Logger     *slog.Logger               // Optional: structured logger
	ChunkSize  int                        // Optional: per-call batch bound
	// MaxInFlight bounds concurrent chunk calls per dispatch. Zero or one
	// keeps dispatch sequential.
	MaxInFlight int
}

// KindReport summarises one monitor pass over a single alert kind.
type KindReport struct {
	Summary    model.SuppressionSummary
	Notified   int
	MarkedSent model.DispatchOutcome
	MarkedSkip model.DispatchOutcome
	Err        error
}

// RunReport aggregates the per-kind results of one monitor pass.
type RunReport struct {
	RunID string
	Kinds map[model.AlertKind]KindReport
}

// MonitorService runs the suppression and dispatch pass over every alert
// kind. Each pass reads the pending alerts and last-sent snapshot, decides
// which alerts were already notified, delivers the rest, and transitions
// store rows to sent or skipped through the remote update operations.
type MonitorService struct {
	store       core.AlertStoreRepository
	engine      *suppress.Engine
	dispatcher  *dispatch.Dispatcher
	tables      map[model.AlertKind]string
	notifier    AlertNotifier
	cache       core.LastSentCache
	metrics     statsd.Sink
	logger      *slog.Logger
	chunkSize   int
	maxInFlight int
}

// NewMonitorService constructs a MonitorService.
func NewMonitorService(opts MonitorOptions) (*MonitorService, error) {
	if opts.AlertStore == nil {
		return nil, errors.New("alert store repository is required")
	}
	if opts.Engine == nil {
		return nil, errors.New("suppression engine is required")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	for _, kind := range model.Kinds() {
		if opts.Tables[kind] == "" {
			return nil, fmt.Errorf("no backing table configured for alert kind %q", kind)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MonitorService{
		store:       opts.AlertStore,
		engine:      opts.Engine,
		dispatcher:  opts.Dispatcher,
		tables:      opts.Tables,
		notifier:    opts.Notifier,
		cache:       opts.Cache,
		metrics:     opts.Metrics,
		logger:      logger.With("component", "monitor"),
		chunkSize:   opts.ChunkSize,
		maxInFlight: opts.MaxInFlight,
	}, nil
}

// Run executes one monitor pass across all alert kinds. Kinds are evaluated
// concurrently and independently; a failure in one partition never blocks the
// other. The returned error joins every per-kind failure.
func (s *MonitorService) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{
		RunID: uuid.NewString(),
		Kinds: make(map[model.AlertKind]KindReport, len(model.Kinds())),
	}
	logger := s.logger.With("run_id", report.RunID)
	logger.InfoContext(ctx, "monitor pass starting")

	kinds := model.Kinds()
	results := make([]KindReport, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			results[i] = s.runKind(ctx, logger, kind)
			return nil
		})
	}
	// Failures are carried in the per-kind reports, never as goroutine errors.
	_ = g.Wait()

	var errs []error
	for i, kind := range kinds {
		report.Kinds[kind] = results[i]
		if results[i].Err != nil {
			errs = append(errs, fmt.Errorf("kind %q: %w", kind, results[i].Err))
		}
	}

	logger.InfoContext(ctx, "monitor pass finished", "failed_kinds", len(errs))
	return report, errors.Join(errs...)
}

func (s *MonitorService) runKind(ctx context.Context, logger *slog.Logger, kind model.AlertKind) KindReport {
	started := time.Now()
	logger = logger.With("kind", kind.String())
	var report KindReport

	lastSent, err := s.lastSentTimes(ctx, logger, kind)
	if err != nil {
		report.Err = fmt.Errorf("query last-sent times: %w", err)
		return report
	}

	pending, err := s.store.QueryPendingAlerts(ctx, kind)
	if err != nil {
		report.Err = fmt.Errorf("query pending alerts: %w", err)
		return report
	}

	suppressedIDs, summary := s.engine.Suppress(pending, lastSent)
	report.Summary = summary
	metrics.EmitSuppression(s.metrics, metrics.SuppressionMetric{
		Kind:               kind.String(),
		Pending:            summary.Pending,
		Suppressed:         summary.Suppressed,
		MissingIdentityKey: summary.MissingIdentityKey,
		Duration:           time.Since(started),
	})

	logger.InfoContext(ctx, "suppression pass complete",
		"pending", summary.Pending,
		"suppressed", summary.Suppressed,
		"missing_identity_key", summary.MissingIdentityKey,
	)

	toSend, toSkip := partitionPending(pending, suppressedIDs)
	report.Notified = s.notifyAlerts(ctx, toSend)

	var errs []error

	sentOutcome, err := s.markSent(ctx, kind, toSend)
	report.MarkedSent = sentOutcome
	if err != nil {
		errs = append(errs, err)
	}

	skipOutcome, err := s.markSkipped(ctx, kind, toSkip)
	report.MarkedSkip = skipOutcome
	if err != nil {
		errs = append(errs, err)
	}

	report.Err = errors.Join(errs...)
	return report
}

// lastSentTimes reads the last-sent snapshot through the cache when one is
// configured, falling back to the store on a miss. Cache write failures are
// logged and never fail the pass.
func (s *MonitorService) lastSentTimes(
	ctx context.Context,
	logger *slog.Logger,
	kind model.AlertKind,
) (model.LastSentTimes, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, kind)
		if err != nil {
			logger.WarnContext(ctx, "last-sent cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	times, err := s.store.QueryLastSentTimes(ctx, kind)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, kind, times); err != nil {
			logger.WarnContext(ctx, "last-sent cache write failed", "error", err)
		}
	}
	return times, nil
}

// partitionPending splits pending alerts into those to notify and those
// already covered by an earlier notification, preserving input order.
func partitionPending(pending []model.PendingAlert, suppressedIDs []string) (toSend, toSkip []model.PendingAlert) {
	suppressed := make(map[string]struct{}, len(suppressedIDs))
	for _, id := range suppressedIDs {
		suppressed[id] = struct{}{}
	}

	for _, alert := range pending {
		if _, ok := suppressed[alert.ID]; ok {
			toSkip = append(toSkip, alert)
			continue
		}
		toSend = append(toSend, alert)
	}
	return toSend, toSkip
}

func (s *MonitorService) notifyAlerts(ctx context.Context, alerts []model.PendingAlert) int {
	if s.notifier == nil || !s.notifier.Enabled() {
		return 0
	}

	for _, alert := range alerts {
		column := ""
		if alert.ColumnName != nil {
			column = *alert.ColumnName
		}
		s.notifier.NotifyAlert(ctx, notify.AlertPayload{
			AlertID:     alert.ID,
			Kind:        alert.Kind.String(),
			IdentityKey: alert.EffectiveIdentityKey(),
			TableName:   alert.TableName,
			ColumnName:  column,
			CheckName:   alert.CheckName,
			DetectedAt:  alert.DetectedAt,
		})
	}
	return len(alerts)
}

// markSent transitions delivered alerts to sent, dispatching their IDs in
// chunks. The last-sent cache is invalidated only when every chunk succeeds,
// so a partial failure keeps serving the older snapshot instead of one that
// is missing rows.
func (s *MonitorService) markSent(
	ctx context.Context,
	kind model.AlertKind,
	alerts []model.PendingAlert,
) (model.DispatchOutcome, error) {
	outcome, err := s.dispatchStatusUpdate(ctx, kind, core.OperationMarkAlertsSent, alertIDItems(alerts))
	if err != nil {
		return outcome, err
	}

	if s.cache != nil && len(alerts) > 0 && outcome.Succeeded() {
		if invErr := s.cache.Invalidate(ctx, kind); invErr != nil {
			s.logger.WarnContext(ctx, "last-sent cache invalidation failed",
				"kind", kind.String(),
				"error", invErr,
			)
		}
	}
	return outcome, nil
}

// markSkipped transitions suppressed alerts to skipped. The skip operation
// carries full alert records rather than bare IDs, matching the store-side
// update macro's contract.
func (s *MonitorService) markSkipped(
	ctx context.Context,
	kind model.AlertKind,
	alerts []model.PendingAlert,
) (model.DispatchOutcome, error) {
	return s.dispatchStatusUpdate(ctx, kind, core.OperationMarkAlertsSkipped, alertRecordItems(alerts))
}

func (s *MonitorService) dispatchStatusUpdate(
	ctx context.Context,
	kind model.AlertKind,
	operation string,
	items []any,
) (model.DispatchOutcome, error) {
	if len(items) == 0 {
		return model.DispatchOutcome{Operation: operation}, nil
	}

	started := time.Now()
	outcome, err := s.dispatcher.Dispatch(ctx, dispatch.Request{
		Operation:   operation,
		Items:       items,
		ChunkSize:   s.chunkSize,
		FixedArgs:   map[string]any{"table_name": s.tables[kind]},
		MaxInFlight: s.maxInFlight,
	})
	if err != nil {
		return outcome, fmt.Errorf("dispatch %q: %w", operation, err)
	}

	result := metrics.ResultSuccess
	aggErr := outcome.Err()
	if aggErr != nil {
		result = metrics.ResultError
	}
	metrics.EmitDispatch(s.metrics, metrics.DispatchMetric{
		Operation:    operation,
		Kind:         kind.String(),
		Items:        len(items),
		Chunks:       len(outcome.Chunks),
		FailedChunks: len(outcome.FailedChunks()),
		Result:       result,
		Duration:     time.Since(started),
		Err:          aggErr,
	})

	return outcome, aggErr
}

func alertIDItems(alerts []model.PendingAlert) []any {
	items := make([]any, len(alerts))
	for i, alert := range alerts {
		items[i] = alert.ID
	}
	return items
}

func alertRecordItems(alerts []model.PendingAlert) []any {
	items := make([]any, len(alerts))
	for i, alert := range alerts {
		items[i] = alert
	}
	return items
}
