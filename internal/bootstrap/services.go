package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tablewatch/tablewatch/config"
	"github.com/tablewatch/tablewatch/internal/core"
	"github.com/tablewatch/tablewatch/internal/data"
	"github.com/tablewatch/tablewatch/internal/domain/model"
	"github.com/tablewatch/tablewatch/internal/observability/notify/slack"
	"github.com/tablewatch/tablewatch/internal/observability/notify/webhook"
	"github.com/tablewatch/tablewatch/internal/observability/statsd"
	"github.com/tablewatch/tablewatch/internal/service"
	"github.com/tablewatch/tablewatch/internal/service/alertnotifier"
	"github.com/tablewatch/tablewatch/internal/service/dispatch"
	"github.com/tablewatch/tablewatch/internal/service/suppress"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Monitor       *service.MonitorService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink    *statsd.Client
	MetricsConfig  config.ObservabilityMetricsConfig
	AlertNotifier  *alertnotifier.Service
	NotifierConfig config.ObservabilityNotificationsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories, the suppression engine, the dispatcher,
// and the monitor service from loaded configuration and live connections.
func NewServices(deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.DB == nil {
		return nil, errors.New("database connection is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := deps.Config
	tables := map[model.AlertKind]string{
		model.AlertKindTest:  cfg.Monitor.TestAlertsTable,
		model.AlertKindModel: cfg.Monitor.ModelAlertsTable,
	}

	alertStore, err := data.NewAlertStoreRepo(data.AlertStoreRepoOptions{
		DB:     deps.DB,
		Tables: tables,
	})
	if err != nil {
		return nil, fmt.Errorf("build alert store repo: %w", err)
	}

	invoker, err := data.NewRunOperationRepo(data.RunOperationRepoOptions{
		DB:            deps.DB,
		AllowedTables: []string{cfg.Monitor.TestAlertsTable, cfg.Monitor.ModelAlertsTable},
	})
	if err != nil {
		return nil, fmt.Errorf("build run operation repo: %w", err)
	}

	dispatcher, err := dispatch.NewDispatcher(dispatch.Options{
		Invoker: invoker,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}

	engine := suppress.NewEngine(suppress.Options{
		Boundary: suppress.Boundary(cfg.Monitor.SuppressionBoundary),
		Logger:   logger,
	})

	lastSentCache, err := buildLastSentCache(cfg, deps.RedisClient, logger)
	if err != nil {
		return nil, err
	}

	// Timezone was validated during config load.
	location, err := time.LoadLocation(cfg.Monitor.Timezone)
	if err != nil {
		location = time.UTC
	}

	obs := buildObservability(logger, cfg.Observability, location)

	monitor, err := service.NewMonitorService(service.MonitorOptions{
		AlertStore:  alertStore,
		Engine:      engine,
		Dispatcher:  dispatcher,
		Tables:      tables,
		Notifier:    obs.AlertNotifier,
		Cache:       lastSentCache,
		Metrics:     metricsSink(obs),
		Logger:      logger,
		ChunkSize:   cfg.Monitor.ChunkSize,
		MaxInFlight: cfg.Monitor.DispatchMaxInFlight,
	})
	if err != nil {
		return nil, fmt.Errorf("build monitor service: %w", err)
	}

	return &ServiceContainer{
		Monitor:       monitor,
		Observability: obs,
	}, nil
}

// metricsSink converts the optional statsd client into the sink interface,
// keeping the monitor free of typed-nil surprises.
func metricsSink(obs ObservabilityContainer) statsd.Sink {
	if obs.MetricsSink == nil {
		return nil
	}
	return obs.MetricsSink
}

// buildLastSentCache wires the Redis read-through cache when both Redis and
// the cache are configured. Returns a nil interface when disabled.
func buildLastSentCache(
	cfg *config.AppConfig,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
) (core.LastSentCache, error) {
	if !cfg.Cache.Enabled || redisClient == nil {
		if cfg.Cache.Enabled {
			logger.Warn("last-sent cache enabled but redis is not connected; caching disabled")
		}
		return nil, nil
	}

	repo, err := data.NewLastSentCacheRepo(data.NewRedisCacheRepo(redisClient), cfg.Cache.LastSentTTL)
	if err != nil {
		return nil, fmt.Errorf("build last-sent cache: %w", err)
	}
	return repo, nil
}

// buildObservability configures metrics and notification adapters.
func buildObservability(
	logger *slog.Logger,
	cfg config.ObservabilityConfig,
	location *time.Location,
) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var sink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.StatsdPrefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			sink = client
		}
	}

	notifier := buildAlertNotifier(obsLogger, cfg.Notifications, location)

	return ObservabilityContainer{
		MetricsSink:    sink,
		MetricsConfig:  cfg.Metrics,
		AlertNotifier:  notifier,
		NotifierConfig: cfg.Notifications,
	}
}

// buildAlertNotifier assembles the notification fan-out from enabled sinks.
func buildAlertNotifier(
	logger *slog.Logger,
	cfg config.ObservabilityNotificationsConfig,
	location *time.Location,
) *alertnotifier.Service {
	var sinks []alertnotifier.SinkRegistration

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
			Location:   location,
		})
		if err != nil {
			logger.Error("failed to initialise slack sink", "error", err)
		} else {
			sinks = append(sinks, alertnotifier.SinkRegistration{Name: "slack", Sink: client})
		}
	}

	if cfg.Webhook.Enabled {
		sink, err := webhook.NewSink(webhook.Config{
			URL:      cfg.Webhook.URL,
			Method:   cfg.Webhook.Method,
			Headers:  cfg.Webhook.Headers,
			BodyExpr: cfg.Webhook.BodyExpr,
			OkStatus: cfg.Webhook.OkStatus,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialise webhook sink", "error", err)
		} else {
			sinks = append(sinks, alertnotifier.SinkRegistration{Name: "webhook", Sink: sink})
		}
	}

	return alertnotifier.NewService(alertnotifier.Options{
		Logger: logger,
		Sinks:  sinks,
	})
}

// RunWithShutdown executes the monitor until the context is cancelled or a
// termination signal arrives. With RunOnce set it performs a single pass.
func RunWithShutdown(ctx context.Context, cfg *config.AppConfig, services *ServiceContainer, logger *slog.Logger) error {
	if cfg == nil || services == nil || services.Monitor == nil {
		return errors.New("config and monitor service are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runPass := func() error {
		passCtx, cancel := context.WithTimeout(ctx, passTimeout(cfg.Monitor.Interval))
		defer cancel()

		_, err := services.Monitor.Run(passCtx)
		if err != nil {
			logger.Error("monitor pass failed", "error", err)
		}
		return err
	}

	if cfg.Monitor.RunOnce {
		return runPass()
	}

	ticker := time.NewTicker(cfg.Monitor.Interval)
	defer ticker.Stop()

	// First pass runs immediately rather than waiting a full interval.
	_ = runPass()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down monitor loop")
			return nil
		case <-ticker.C:
			_ = runPass()
		}
	}
}

// passTimeout bounds one monitor pass. Passes must not pile up behind a
// stuck store call, so a pass never outlives two intervals.
func passTimeout(interval time.Duration) time.Duration {
	timeout := 2 * interval
	if timeout < time.Minute {
		timeout = time.Minute
	}
	return timeout
}
