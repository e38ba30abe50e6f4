package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/geoscout/geoscout/internal/core"
	"github.com/geoscout/geoscout/internal/data"
	"github.com/geoscout/geoscout/internal/domain/model"
	apperrors "github.com/geoscout/geoscout/internal/errors"
)

const (
	// statsCacheKey is the Redis key holding the cached aggregate stats.
	statsCacheKey = "geoscout:automation:stats"

	// statsCacheTTL keeps stats fresh enough for dashboards without hitting
	// four count queries per request.
	statsCacheTTL = 30 * time.Second
)

// AutomationServiceOptions groups dependencies for AutomationService.
// Uses an options struct to keep parameter count ≤ 3 as per project conventions.
type AutomationServiceOptions struct {
	Searches      core.TrackedSearchRepository
	Logs          core.ExecutionLogRepository
	Notifications core.NotificationRepository
	Executor      core.SearchRunner
	Claims        *ClaimRegistry
	Cache         core.CacheRepository // optional
	TimeProvider  data.TimeProvider
	Logger        *slog.Logger
}

// AutomationService is the management surface of the engine: tracked search
// CRUD, manual runs, execution history, notification state and aggregate
// stats. The scheduler loop never goes through it; both share the executor
// and the claim registry so manual and scheduled runs exclude each other.
type AutomationService struct {
	searches      core.TrackedSearchRepository
	logs          core.ExecutionLogRepository
	notifications core.NotificationRepository
	executor      core.SearchRunner
	claims        *ClaimRegistry
	cache         core.CacheRepository
	timeProvider  data.TimeProvider
	logger        *slog.Logger
}

// NewAutomationService constructs a new AutomationService.
func NewAutomationService(opts AutomationServiceOptions) *AutomationService {
	if opts.Claims == nil {
		opts.Claims = NewClaimRegistry()
	}
	if opts.TimeProvider == nil {
		opts.TimeProvider = &data.RealTimeProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &AutomationService{
		searches:      opts.Searches,
		logs:          opts.Logs,
		notifications: opts.Notifications,
		executor:      opts.Executor,
		claims:        opts.Claims,
		cache:         opts.Cache,
		timeProvider:  opts.TimeProvider,
		logger:        opts.Logger.With("component", "automation"),
	}
}

// CreateTrackedSearch validates and persists a new tracked search. The search
// is created active with next_run_at = now, so the next scheduler tick picks
// it up.
func (s *AutomationService) CreateTrackedSearch(
	ctx context.Context,
	req *model.CreateTrackedSearchRequest,
) (*model.TrackedSearch, error) {
	if req == nil {
		return nil, apperrors.Validation("request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	search, err := s.searches.Create(ctx, req, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, data.ErrTrackedSearchNameExists) {
			return nil, apperrors.Conflict(fmt.Sprintf("tracked search named %q already exists", req.Name))
		}
		return nil, fmt.Errorf("create tracked search: %w", err)
	}

	s.invalidateStats(ctx)
	return search, nil
}

// GetTrackedSearch retrieves a tracked search by id.
func (s *AutomationService) GetTrackedSearch(ctx context.Context, id string) (*model.TrackedSearch, error) {
	search, err := s.searches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrTrackedSearchNotFound) {
			return nil, apperrors.NotFound("tracked search")
		}
		return nil, fmt.Errorf("get tracked search: %w", err)
	}
	return search, nil
}

// ListTrackedSearches returns a page of tracked searches.
func (s *AutomationService) ListTrackedSearches(
	ctx context.Context,
	opts model.TrackedSearchListOptions,
) ([]*model.TrackedSearch, error) {
	return s.searches.List(ctx, opts)
}

// ToggleTrackedSearch suspends or resumes scheduling for the search.
// Resuming resets next_run_at to now rather than honoring a stale cursor.
func (s *AutomationService) ToggleTrackedSearch(
	ctx context.Context,
	id string,
	active bool,
) (*model.TrackedSearch, error) {
	search, err := s.searches.ToggleActive(ctx, id, active, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, data.ErrTrackedSearchNotFound) {
			return nil, apperrors.NotFound("tracked search")
		}
		return nil, fmt.Errorf("toggle tracked search: %w", err)
	}

	s.invalidateStats(ctx)
	return search, nil
}

// DeleteTrackedSearch removes the search definition. Its execution logs and
// notifications are deliberately left behind as history.
func (s *AutomationService) DeleteTrackedSearch(ctx context.Context, id string) error {
	ok, err := s.searches.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete tracked search: %w", err)
	}
	if !ok {
		return apperrors.NotFound("tracked search")
	}

	s.invalidateStats(ctx)
	return nil
}

// RunNow executes the search immediately and synchronously, returning its
// execution log. The manual trigger never moves next_run_at, so the regular
// cadence is unaffected. A search with an execution already in flight is
// rejected rather than queued.
func (s *AutomationService) RunNow(ctx context.Context, id string) (*model.ExecutionLog, error) {
	search, err := s.GetTrackedSearch(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.claims.Claim(id) {
		return nil, apperrors.AlreadyRunning(id)
	}
	defer s.claims.Release(id)

	result := s.executor.Execute(ctx, search, model.TriggerManual)
	s.invalidateStats(ctx)
	return result.Log, nil
}

// GetExecutionLogs returns execution history for one tracked search, newest
// first. The id may belong to a deleted search; its history is still served.
func (s *AutomationService) GetExecutionLogs(
	ctx context.Context,
	opts model.ExecutionLogListOptions,
) ([]*model.ExecutionLog, error) {
	if opts.TrackedSearchID == "" {
		return nil, apperrors.ValidationField("tracked_search_id", "tracked search id is required")
	}
	return s.logs.ListByTrackedSearch(ctx, opts)
}

// ListNotifications returns notifications, newest first, optionally only
// unread ones.
func (s *AutomationService) ListNotifications(
	ctx context.Context,
	opts model.NotificationListOptions,
) ([]*model.Notification, error) {
	return s.notifications.List(ctx, opts)
}

// MarkNotificationRead marks one notification as read.
func (s *AutomationService) MarkNotificationRead(ctx context.Context, id string) error {
	ok, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return apperrors.NotFound("notification")
	}

	s.invalidateStats(ctx)
	return nil
}

// MarkAllNotificationsRead marks every unread notification as read and
// returns how many changed.
func (s *AutomationService) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	if n > 0 {
		s.invalidateStats(ctx)
	}
	return n, nil
}

// DeleteNotification removes one notification.
func (s *AutomationService) DeleteNotification(ctx context.Context, id string) error {
	ok, err := s.notifications.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if !ok {
		return apperrors.NotFound("notification")
	}

	s.invalidateStats(ctx)
	return nil
}

// Stats returns the aggregate counters, served from the cache when a fresh
// entry exists. Cache failures fall through to the database.
func (s *AutomationService) Stats(ctx context.Context) (*model.AutomationStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	var (
		total, active      int
		executions, unread int
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		total, active, err = s.searches.Counts(gctx)
		if err != nil {
			return fmt.Errorf("count tracked searches: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		executions, err = s.logs.Count(gctx)
		if err != nil {
			return fmt.Errorf("count executions: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		unread, err = s.notifications.CountUnread(gctx)
		if err != nil {
			return fmt.Errorf("count unread notifications: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	stats := &model.AutomationStats{
		TotalSearches:       total,
		ActiveSearches:      active,
		TotalExecutions:     executions,
		UnreadNotifications: unread,
	}
	s.storeStats(ctx, stats)
	return stats, nil
}

func (s *AutomationService) cachedStats(ctx context.Context) *model.AutomationStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil || raw == nil {
		return nil
	}
	var stats model.AutomationStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		// Stale or corrupt entry; drop it and recompute.
		_, _ = s.cache.Delete(ctx, statsCacheKey)
		return nil
	}
	return &stats
}

func (s *AutomationService) storeStats(ctx context.Context, stats *model.AutomationStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL); err != nil {
		s.logger.DebugContext(ctx, "cache stats failed", "error", err)
	}
}

// invalidateStats drops the cached stats after a write. Best-effort: the TTL
// bounds staleness when the delete fails.
func (s *AutomationService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.DebugContext(ctx, "invalidate stats cache failed", "error", err)
	}
}
