// Package core provides the business logic contracts for the geoscout automation engine.
package core

import (
	"context"
	"time"

	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// TrackedSearchRepository defines the interface for tracked search data operations.
// It is the exclusive owner of the scheduling cursor: next_run_at, last_run_at,
// total_runs and the yield counters change only through AdvanceCursor.
type TrackedSearchRepository interface {
	Create(ctx context.Context, req *model.CreateTrackedSearchRequest, now time.Time) (*model.TrackedSearch, error)
	GetByID(ctx context.Context, id string) (*model.TrackedSearch, error)
	List(ctx context.Context, opts model.TrackedSearchListOptions) ([]*model.TrackedSearch, error)

	// ListDue returns active searches whose next_run_at has passed, ordered by
	// next_run_at ascending with a stable id tie-break. Safe to call while
	// executions are in flight.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*model.TrackedSearch, error)

	// AdvanceCursor applies the post-execution cursor update atomically per id.
	// Scheduled triggers set next_run_at = completed_at + interval; manual
	// triggers leave next_run_at at its prior value. Both bump last_run_at and
	// total_runs. Returns false when the search no longer exists (deleted
	// while the execution was in flight), which is not an error.
	AdvanceCursor(ctx context.Context, p domain.AdvanceCursorParams) (bool, error)

	// ToggleActive suspends or resumes scheduling. Resuming resets
	// next_run_at to now so the search runs promptly.
	ToggleActive(ctx context.Context, id string, active bool, now time.Time) (*model.TrackedSearch, error)

	// Delete removes the definition. Execution logs and notifications that
	// reference the id are untouched.
	Delete(ctx context.Context, id string) (bool, error)

	// Counts returns the total and active number of tracked searches.
	Counts(ctx context.Context) (total int, active int, err error)
}

// ExecutionLogRepository defines the interface for execution log data operations.
// The log is append-only; entries are never updated or deleted by the engine.
type ExecutionLogRepository interface {
	Record(ctx context.Context, p domain.RecordExecutionParams) (*model.ExecutionLog, error)
	ListByTrackedSearch(ctx context.Context, opts model.ExecutionLogListOptions) ([]*model.ExecutionLog, error)
	Count(ctx context.Context) (int, error)
}

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	List(ctx context.Context, opts model.NotificationListOptions) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountUnread(ctx context.Context) (int, error)
}

// TickScheduler drives one scheduling pass per tick and drains in-flight
// work on shutdown.
type TickScheduler interface {
	// Tick dispatches due tracked searches and returns how many it started.
	Tick(ctx context.Context, now time.Time) (int, error)

	// Drain blocks until dispatched executions finish or ctx is done.
	Drain(ctx context.Context) error
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	// Set stores a value with the given key and TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. Returns nil when the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Returns true if the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}
