package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/geoscout/geoscout/internal/core"
	"github.com/geoscout/geoscout/internal/domain/model"
)

// defaultBatchSize bounds how many due searches one tick picks up.
const defaultBatchSize = 25

// SchedulerService drives scheduled executions: each tick lists due tracked
// searches, claims each id, and dispatches it to the executor without waiting
// for earlier dispatches, so a slow or failing search never delays its
// siblings. Claimed ids are released when their execution finishes, success
// or failure.
type SchedulerService struct {
	searches  core.TrackedSearchRepository
	executor  core.SearchRunner
	claims    *ClaimRegistry
	batchSize int
	logger    *slog.Logger

	inFlight sync.WaitGroup
}

// SchedulerServiceOptions holds the dependencies for creating a SchedulerService.
// Uses an options struct to keep parameter count ≤ 3 as per project conventions.
type SchedulerServiceOptions struct {
	Searches  core.TrackedSearchRepository
	Executor  core.SearchRunner
	Claims    *ClaimRegistry
	BatchSize int
	Logger    *slog.Logger
}

// NewSchedulerService creates a new SchedulerService with the given dependencies.
func NewSchedulerService(opts SchedulerServiceOptions) *SchedulerService {
	if opts.Claims == nil {
		opts.Claims = NewClaimRegistry()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &SchedulerService{
		searches:  opts.Searches,
		executor:  opts.Executor,
		claims:    opts.Claims,
		batchSize: opts.BatchSize,
		logger:    opts.Logger.With("component", "scheduler"),
	}
}

// Tick dispatches every due tracked search it can claim and returns the
// number dispatched. Searches already claimed (still running from an earlier
// tick, or mid manual run) are skipped; they will be due again once their
// cursor advances.
func (s *SchedulerService) Tick(ctx context.Context, now time.Time) (int, error) {
	due, err := s.searches.ListDue(ctx, now, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list due tracked searches: %w", err)
	}

	// Executions run on a context detached from the tick context: shutdown
	// cancels ticking, and Drain bounds how long in-flight executions may run
	// to completion. Aborting them mid provider call would lose the log row
	// and the cursor advance for that attempt.
	execCtx := context.WithoutCancel(ctx)

	dispatched := 0
	for _, search := range due {
		if !s.claims.Claim(search.ID) {
			continue
		}
		dispatched++

		s.inFlight.Add(1)
		go func(search *model.TrackedSearch) {
			defer s.inFlight.Done()
			defer s.claims.Release(search.ID)
			s.executor.Execute(execCtx, search, model.TriggerScheduled)
		}(search)
	}

	if dispatched > 0 {
		s.logger.InfoContext(ctx, "dispatched due tracked searches",
			"due", len(due),
			"dispatched", dispatched,
		)
	}

	return dispatched, nil
}

// Drain blocks until all dispatched executions have finished or the context
// is done. Shutdown lets in-flight executions run to completion rather than
// aborting them mid provider call.
func (s *SchedulerService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain in-flight executions: %w", ctx.Err())
	}
}
