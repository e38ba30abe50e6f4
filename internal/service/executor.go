package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/geoscout/geoscout/internal/core"
	"github.com/geoscout/geoscout/internal/data"
	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
	"github.com/geoscout/geoscout/internal/observability/metrics"
	"github.com/geoscout/geoscout/internal/observability/notify"
	"github.com/geoscout/geoscout/internal/observability/statsd"
)

// ExecutorService runs one execution of one tracked search: rate-limited
// provider call, execution log, at most one notification, unconditional
// cursor advance.
//
// It is a failure boundary. Provider and persistence failures are recorded
// and logged but never returned; one broken search must not stop the loop or
// its siblings.
type ExecutorService struct {
	searches      core.TrackedSearchRepository
	logs          core.ExecutionLogRepository
	notifications core.NotificationRepository
	provider      core.DiscoveryProvider
	limiter       core.RateLimiter
	timeProvider  data.TimeProvider
	logger        *slog.Logger
	metrics       statsd.Sink
	leads         notify.LeadSink
	failures      notify.FailureSink
}

// ExecutorServiceOptions holds the dependencies for creating an ExecutorService.
// Uses an options struct to keep parameter count ≤ 3 as per project conventions.
type ExecutorServiceOptions struct {
	Searches      core.TrackedSearchRepository
	Logs          core.ExecutionLogRepository
	Notifications core.NotificationRepository
	Provider      core.DiscoveryProvider
	Limiter       core.RateLimiter
	TimeProvider  data.TimeProvider
	Logger        *slog.Logger
	Metrics       statsd.Sink        // optional
	Leads         notify.LeadSink    // optional
	Failures      notify.FailureSink // optional
}

// NewExecutorService creates a new ExecutorService with the given dependencies.
func NewExecutorService(opts ExecutorServiceOptions) *ExecutorService {
	if opts.TimeProvider == nil {
		opts.TimeProvider = &data.RealTimeProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &ExecutorService{
		searches:      opts.Searches,
		logs:          opts.Logs,
		notifications: opts.Notifications,
		provider:      opts.Provider,
		limiter:       opts.Limiter,
		timeProvider:  opts.TimeProvider,
		logger:        opts.Logger.With("component", "executor"),
		metrics:       opts.Metrics,
		leads:         opts.Leads,
		failures:      opts.Failures,
	}
}

// Execute performs one execution attempt for the tracked search.
//
// Order matters: the provider call happens first, then the log entry (exactly
// one per attempt, success or failure), then the optional notification, and
// the cursor advance last so next_run_at reflects the actual completion time.
func (s *ExecutorService) Execute(
	ctx context.Context,
	search *model.TrackedSearch,
	trigger model.TriggerKind,
) domain.ExecutionResult {
	started := s.timeProvider.Now()

	outcome, execErr := s.callProvider(ctx, search)

	completed := s.timeProvider.Now()
	duration := completed.Sub(started)

	status := model.ExecutionSuccess
	errDetail := ""
	if execErr != nil {
		status = model.ExecutionFailed
		errDetail = classifyExecutionError(execErr)
		s.logger.WarnContext(ctx, "execution failed",
			"tracked_search_id", search.ID,
			"trigger", trigger,
			"error", execErr,
		)
		s.alertFailure(ctx, search, trigger, execErr, completed)
	}

	result := domain.ExecutionResult{}
	result.Log = s.recordLog(ctx, domain.RecordExecutionParams{
		TrackedSearchID: search.ID,
		Trigger:         trigger,
		Status:          status,
		TotalFound:      outcome.TotalFound,
		NewFound:        outcome.NewFound,
		Duration:        duration,
		Error:           errDetail,
	})

	if status == model.ExecutionSuccess {
		result.Notification = s.notify(ctx, search, result.Log, outcome.NewFound)
	}

	s.advanceCursor(ctx, advanceParams{
		search:      search,
		trigger:     trigger,
		completedAt: completed,
		newFound:    outcome.NewFound,
	})

	s.emitExecutionMetrics(trigger, status, duration, execErr)

	return result
}

// callProvider acquires a rate-limit slot and runs the provider search.
func (s *ExecutorService) callProvider(
	ctx context.Context,
	search *model.TrackedSearch,
) (domain.SearchOutcome, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return domain.SearchOutcome{}, err
	}
	return s.provider.Search(ctx, domain.SearchParamsFor(search))
}

// recordLog appends the execution log entry. Logging is best-effort: a
// failure here is reported but never masks the execution outcome.
func (s *ExecutorService) recordLog(
	ctx context.Context,
	p domain.RecordExecutionParams,
) *model.ExecutionLog {
	entry, err := s.logs.Record(ctx, p)
	if err != nil {
		s.logger.ErrorContext(ctx, "record execution log failed",
			"tracked_search_id", p.TrackedSearchID,
			"status", p.Status,
			"error", err,
		)
		return nil
	}
	return entry
}

// notify persists the aggregated notification when the search opted in and
// the run found new records. At most one notification per execution. A
// notification always references its execution log row; when the log write
// failed there is nothing valid to reference, so the notification is skipped.
func (s *ExecutorService) notify(
	ctx context.Context,
	search *model.TrackedSearch,
	entry *model.ExecutionLog,
	newFound int,
) *model.Notification {
	if !search.NotifyOnNew || newFound <= 0 {
		return nil
	}
	if entry == nil {
		s.logger.WarnContext(ctx, "skipping notification; execution log entry missing",
			"tracked_search_id", search.ID,
		)
		return nil
	}

	built := SummarizeBatch(BatchSummaryParams{
		SearchID:       search.ID,
		SearchName:     search.Name,
		ExecutionLogID: entry.ID,
		NewFound:       newFound,
	})
	if built == nil {
		return nil
	}

	persisted, err := s.notifications.Create(ctx, built)
	if err != nil {
		s.logger.ErrorContext(ctx, "create notification failed",
			"tracked_search_id", search.ID,
			"error", err,
		)
		return nil
	}

	s.deliverLeads(ctx, search, persisted, newFound)
	return persisted
}

// deliverLeads fans the new-lead event out to the configured sink. Delivery
// failures are logged; the persisted notification remains the source of truth.
func (s *ExecutorService) deliverLeads(
	ctx context.Context,
	search *model.TrackedSearch,
	persisted *model.Notification,
	newFound int,
) {
	if s.leads == nil {
		return
	}

	err := s.leads.SendNewLeads(ctx, notify.NewLeadsPayload{
		SearchID:       search.ID,
		SearchName:     search.Name,
		ExecutionLogID: persisted.ExecutionLogID,
		NewFound:       newFound,
		OccurredAt:     s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "deliver new-lead notification failed",
			"tracked_search_id", search.ID,
			"error", err,
		)
	}
}

// alertFailure pushes the failure to the incident sink when one is configured.
func (s *ExecutorService) alertFailure(
	ctx context.Context,
	search *model.TrackedSearch,
	trigger model.TriggerKind,
	execErr error,
	occurredAt time.Time,
) {
	if s.failures == nil {
		return
	}

	err := s.failures.SendExecutionFailure(ctx, notify.ExecutionFailurePayload{
		SearchID:   search.ID,
		SearchName: search.Name,
		Trigger:    string(trigger),
		Error:      execErr.Error(),
		ErrorClass: metrics.Classify(execErr),
		OccurredAt: occurredAt,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "deliver failure alert failed",
			"tracked_search_id", search.ID,
			"error", err,
		)
	}
}

type advanceParams struct {
	search      *model.TrackedSearch
	trigger     model.TriggerKind
	completedAt time.Time
	newFound    int
}

// advanceCursor moves the scheduling cursor after the attempt. Runs for every
// attempt, including failed ones: a broken search degrades to "try again next
// interval" instead of retry-storming every tick.
func (s *ExecutorService) advanceCursor(ctx context.Context, p advanceParams) {
	advanced, err := s.searches.AdvanceCursor(ctx, domain.AdvanceCursorParams{
		ID:          p.search.ID,
		Trigger:     p.trigger,
		CompletedAt: p.completedAt,
		Interval:    p.search.Interval(),
		NewFound:    p.newFound,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "advance cursor failed",
			"tracked_search_id", p.search.ID,
			"trigger", p.trigger,
			"error", err,
		)
		return
	}
	if !advanced {
		// The search was deleted while this execution was in flight; its log
		// entry stays behind as historical record.
		s.logger.InfoContext(ctx, "cursor not advanced; tracked search gone",
			"tracked_search_id", p.search.ID,
		)
	}
}

func (s *ExecutorService) emitExecutionMetrics(
	trigger model.TriggerKind,
	status model.ExecutionStatus,
	duration time.Duration,
	execErr error,
) {
	result := metrics.ResultSuccess
	if status == model.ExecutionFailed {
		result = metrics.ResultError
	}

	metrics.EmitExecution(s.metrics, metrics.ExecutionMetric{
		Trigger:  string(trigger),
		Result:   result,
		Duration: duration,
		Err:      execErr,
	})
}

// classifyExecutionError maps the failure taxonomy to a human-readable
// summary stored in the execution log's error field.
func classifyExecutionError(err error) string {
	switch {
	case errors.Is(err, core.ErrProviderUnavailable):
		return "provider unreachable: " + err.Error()
	case errors.Is(err, core.ErrProviderRejected):
		return "provider rejected request: " + err.Error()
	default:
		return "unexpected error: " + err.Error()
	}
}
