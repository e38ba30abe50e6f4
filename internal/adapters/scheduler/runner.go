// Package scheduler provides the adapter that runs the scheduling loop.
package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/geoscout/geoscout/internal/core"
	"github.com/geoscout/geoscout/internal/data"
	"github.com/geoscout/geoscout/internal/observability/metrics"
	"github.com/geoscout/geoscout/internal/observability/notify"
	"github.com/geoscout/geoscout/internal/observability/statsd"
	"github.com/geoscout/geoscout/internal/ratelimit"
	"github.com/geoscout/geoscout/internal/service"
)

// drainTimeout bounds how long shutdown waits for in-flight executions.
const drainTimeout = 30 * time.Second

// Runner drives the scheduler service: it constructs the executor and
// scheduler from their repositories and runs a tick loop with a configurable
// interval until the context is cancelled.
type Runner struct {
	scheduler core.TickScheduler
	interval  time.Duration
	logger    *log.Logger
	metrics   statsd.Sink
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB         *sql.DB
	Provider   core.DiscoveryProvider
	Interval   time.Duration
	BatchSize  int
	Logger     *log.Logger
	SlogLogger *slog.Logger
	Metrics    statsd.Sink

	// Optional dependency injections for testing/decoupling
	Scheduler core.TickScheduler
	Limiter   core.RateLimiter
	Claims    *service.ClaimRegistry

	// Optional delivery sinks
	Leads    notify.LeadSink
	Failures notify.FailureSink
}

// NewRunner creates a new scheduler runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if err := validateRunnerOptions(&opts); err != nil {
		return nil, err
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = wireScheduler(opts)
	}

	return &Runner{
		scheduler: sched,
		interval:  opts.Interval,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}, nil
}

// validateRunnerOptions validates and sets defaults for RunnerOptions.
func validateRunnerOptions(opts *RunnerOptions) error {
	if opts.Scheduler == nil {
		if opts.DB == nil {
			return errors.New("database connection is required")
		}
		if opts.Provider == nil {
			return errors.New("discovery provider is required")
		}
	}
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SlogLogger == nil {
		opts.SlogLogger = slog.Default()
	}
	if opts.Limiter == nil {
		opts.Limiter = ratelimit.NewProviderLimiter(ratelimit.DefaultRequestsPerSecond)
	}
	if opts.Claims == nil {
		opts.Claims = service.NewClaimRegistry()
	}
	return nil
}

// wireScheduler builds the repositories, executor and scheduler service.
func wireScheduler(opts RunnerOptions) *service.SchedulerService {
	searches := data.NewTrackedSearchRepo(opts.DB)
	logs := data.NewExecutionLogRepo(opts.DB)
	notifications := data.NewNotificationRepo(opts.DB)

	executor := service.NewExecutorService(service.ExecutorServiceOptions{
		Searches:      searches,
		Logs:          logs,
		Notifications: notifications,
		Provider:      opts.Provider,
		Limiter:       opts.Limiter,
		Logger:        opts.SlogLogger,
		Metrics:       opts.Metrics,
		Leads:         opts.Leads,
		Failures:      opts.Failures,
	})

	return service.NewSchedulerService(service.SchedulerServiceOptions{
		Searches:  searches,
		Executor:  executor,
		Claims:    opts.Claims,
		BatchSize: opts.BatchSize,
		Logger:    opts.SlogLogger,
	})
}

// Run starts the scheduler loop and runs until the context is cancelled.
// On shutdown it drains in-flight executions before returning.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Printf("Starting scheduler runner with interval %v", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Printf("Scheduler runner stopping: %v", ctx.Err())
			r.drain()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case now := <-ticker.C:
			start := time.Now()
			dispatched, err := r.scheduler.Tick(ctx, now)
			elapsed := time.Since(start)

			r.emitTickMetrics(dispatched, elapsed, err)

			if err != nil {
				r.logger.Printf("Scheduler tick error: %v", err)
				// Continue running despite errors
			} else if dispatched > 0 {
				r.logger.Printf("Scheduler dispatched %d executions", dispatched)
			}
		}
	}
}

// drain waits for dispatched executions to finish, bounded by drainTimeout.
func (r *Runner) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := r.scheduler.Drain(ctx); err != nil {
		r.logger.Printf("Scheduler drain incomplete: %v", err)
	}
}

func (r *Runner) emitTickMetrics(dispatched int, elapsed time.Duration, err error) {
	if r.metrics == nil {
		return
	}

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	} else if dispatched == 0 {
		result = metrics.ResultNoop
	}

	tags := map[string]string{
		"result": result,
	}

	if err != nil {
		if class := metrics.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}

	r.metrics.Count("scheduler.tick", 1, tags)

	if dispatched > 0 {
		r.metrics.Count("scheduler.executions_dispatched", int64(dispatched), tags)
	}

	if elapsed > 0 {
		r.metrics.Timing("scheduler.tick_duration", elapsed, metrics.CloneTags(tags))
	}

	if err == nil {
		r.metrics.Gauge("scheduler.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}
