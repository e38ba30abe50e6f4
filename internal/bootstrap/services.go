package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geoscout/geoscout/config"
	"github.com/geoscout/geoscout/internal/adapters/discovery"
	"github.com/geoscout/geoscout/internal/adapters/scheduler"
	"github.com/geoscout/geoscout/internal/core"
	"github.com/geoscout/geoscout/internal/data"
	"github.com/geoscout/geoscout/internal/observability/notify"
	"github.com/geoscout/geoscout/internal/observability/notify/pagerduty"
	"github.com/geoscout/geoscout/internal/observability/notify/slack"
	"github.com/geoscout/geoscout/internal/observability/statsd"
	"github.com/geoscout/geoscout/internal/ratelimit"
	"github.com/geoscout/geoscout/internal/service"
)

// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
const shutdownWaitTimeout = 15 * time.Second

// ServiceContainer holds all application services.
//
// The scheduler loop and the management surface share the executor, claim
// registry, and rate limiter so manual and scheduled runs exclude each other
// and outbound provider traffic stays under one budget.
type ServiceContainer struct {
	Automation    *service.AutomationService
	Scheduler     core.TickScheduler
	Claims        *service.ClaimRegistry
	Provider      core.DiscoveryProvider
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink    *statsd.Client
	MetricsConfig  config.ObservabilityMetricsConfig
	Leads          notify.LeadSink
	Failures       notify.FailureSink
	NotifierConfig config.ObservabilityNotificationsConfig
}

// Sink returns the metrics sink, or nil when metrics are disabled.
func (o ObservabilityContainer) Sink() statsd.Sink {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// buildObservability configures metrics and notification delivery adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	container := ObservabilityContainer{
		MetricsConfig:  cfg.Metrics,
		NotifierConfig: cfg.Notifications,
	}

	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "geoscout",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			container.MetricsSink = client
		}
	}

	container.Leads, container.Failures = buildNotificationSinks(obsLogger, cfg.Notifications)
	return container
}

// buildNotificationSinks builds the optional outbound delivery sinks. Slack
// carries new-lead events, PagerDuty carries execution failures. Persisted
// in-app notifications are written regardless of either sink.
func buildNotificationSinks(
	logger *slog.Logger,
	cfg config.ObservabilityNotificationsConfig,
) (notify.LeadSink, notify.FailureSink) {
	if !cfg.Enabled {
		return nil, nil
	}

	var leads notify.LeadSink
	var failures notify.FailureSink

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL:      cfg.Slack.WebhookURL,
			Channel:         cfg.Slack.Channel,
			Username:        cfg.Slack.Username,
			Timeout:         cfg.Timeout,
			RetryLimit:      cfg.RetryLimit,
			SearchURLPrefix: cfg.Slack.SearchURLPrefix,
		})
		if err != nil {
			logger.Error("failed to initialise slack notifier", "error", err)
		} else {
			leads = client
		}
	}

	if cfg.PagerDuty.Enabled {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			failures = client
		}
	}

	return leads, failures
}

// NewServices wires repositories, the discovery provider client, the executor
// and both service surfaces.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, errors.New("service dependencies are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	observability := buildObservability(logger, cfg.Observability)

	provider, err := discovery.NewClient(discovery.Config{
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.Provider.Timeout,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build discovery client: %w", err)
	}

	searches := data.NewTrackedSearchRepo(deps.DB)
	logs := data.NewExecutionLogRepo(deps.DB)
	notifications := data.NewNotificationRepo(deps.DB)

	var cache core.CacheRepository
	if deps.RedisClient != nil {
		cache = data.NewRedisCacheRepo(deps.RedisClient)
	}

	claims := service.NewClaimRegistry()
	limiter := ratelimit.NewProviderLimiter(cfg.Provider.RequestsPerSecond)

	executor := service.NewExecutorService(service.ExecutorServiceOptions{
		Searches:      searches,
		Logs:          logs,
		Notifications: notifications,
		Provider:      provider,
		Limiter:       limiter,
		Logger:        logger,
		Metrics:       observability.Sink(),
		Leads:         observability.Leads,
		Failures:      observability.Failures,
	})

	schedulerSvc := service.NewSchedulerService(service.SchedulerServiceOptions{
		Searches:  searches,
		Executor:  executor,
		Claims:    claims,
		BatchSize: cfg.Scheduler.BatchSize,
		Logger:    logger,
	})

	automation := service.NewAutomationService(service.AutomationServiceOptions{
		Searches:      searches,
		Logs:          logs,
		Notifications: notifications,
		Executor:      executor,
		Claims:        claims,
		Cache:         cache,
		Logger:        logger,
	})

	return ServiceContainer{
		Automation:    automation,
		Scheduler:     schedulerSvc,
		Claims:        claims,
		Provider:      provider,
		Observability: observability,
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunScheduler runs the scheduler loop until the context is cancelled.
func RunScheduler(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	interval := 15 * time.Second
	if cfg.Config != nil {
		interval = cfg.Config.Scheduler.Interval
	}

	runner, err := scheduler.NewRunner(scheduler.RunnerOptions{
		Scheduler:  cfg.Services.Scheduler,
		Interval:   interval,
		Logger:     log.Default(),
		SlogLogger: cfg.Logger,
		Metrics:    cfg.Services.Observability.Sink(),
	})
	if err != nil {
		return fmt.Errorf("build scheduler runner: %w", err)
	}

	return runner.Run(ctx)
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Logger = logger

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, len(enabledServices)+1)

	var schedulerDone <-chan struct{}
	if enabledServices[config.ServiceModeScheduler] {
		schedulerDone = launchScheduler(serviceCtx, cfg, errCh)
	}

	return waitForShutdown(shutdownConfig{
		cancel:        cancel,
		errCh:         errCh,
		logger:        logger,
		schedulerDone: schedulerDone,
	})
}

// launchScheduler starts the scheduler loop in the background and reports
// failures on errCh.
func launchScheduler(ctx context.Context, cfg *ServiceOrchestrationConfig, errCh chan<- error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := RunScheduler(ctx, cfg); err != nil {
			select {
			case errCh <- fmt.Errorf("scheduler failed: %w", err):
			case <-ctx.Done():
			}
		}
	}()

	cfg.Logger.InfoContext(ctx, "background service started", "service", "scheduler")
	return done
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	cancel        context.CancelFunc
	errCh         <-chan error
	logger        *slog.Logger
	schedulerDone <-chan struct{}
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		waitForService(cfg.schedulerDone, "scheduler", cfg.logger)
		return nil
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		waitForService(cfg.schedulerDone, "scheduler", cfg.logger)
		return err
	}
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
