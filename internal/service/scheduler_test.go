package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
	"github.com/geoscout/geoscout/internal/mocks"
)

func newSchedulerFixture(t *testing.T) (*mocks.MockTrackedSearchRepository, *mocks.MockSearchRunner, *ClaimRegistry, *SchedulerService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	searches := mocks.NewMockTrackedSearchRepository(ctrl)
	runner := mocks.NewMockSearchRunner(ctrl)
	claims := NewClaimRegistry()

	scheduler := NewSchedulerService(SchedulerServiceOptions{
		Searches: searches,
		Executor: runner,
		Claims:   claims,
	})
	return searches, runner, claims, scheduler
}

func dueSearch(id string) *model.TrackedSearch {
	return &model.TrackedSearch{
		ID:            id,
		Name:          "search " + id,
		Query:         "q",
		Location:      "loc",
		IntervalHours: 1,
		IsActive:      true,
	}
}

func TestSchedulerService_Tick_DispatchesDueSearches(t *testing.T) {
	t.Parallel()
	searches, runner, claims, scheduler := newSchedulerFixture(t)

	ctx := context.Background()
	now := time.Now()
	due := []*model.TrackedSearch{dueSearch("a"), dueSearch("b")}

	searches.EXPECT().ListDue(ctx, now, defaultBatchSize).Return(due, nil)

	var mu sync.Mutex
	executed := map[string]model.TriggerKind{}
	runner.EXPECT().
		Execute(gomock.Any(), gomock.Any(), model.TriggerScheduled).
		DoAndReturn(func(_ context.Context, s *model.TrackedSearch, trigger model.TriggerKind) domain.ExecutionResult {
			mu.Lock()
			executed[s.ID] = trigger
			mu.Unlock()
			return domain.ExecutionResult{}
		}).
		Times(2)

	dispatched, err := scheduler.Tick(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, dispatched)

	require.NoError(t, scheduler.Drain(ctx))
	assert.Len(t, executed, 2)
	assert.Zero(t, claims.InFlight(), "claims must be released after execution")
}

func TestSchedulerService_Tick_SkipsClaimedSearch(t *testing.T) {
	t.Parallel()
	searches, runner, claims, scheduler := newSchedulerFixture(t)

	ctx := context.Background()
	now := time.Now()
	due := []*model.TrackedSearch{dueSearch("busy"), dueSearch("idle")}

	require.True(t, claims.Claim("busy"))

	searches.EXPECT().ListDue(ctx, now, defaultBatchSize).Return(due, nil)
	runner.EXPECT().
		Execute(gomock.Any(), gomock.Any(), model.TriggerScheduled).
		DoAndReturn(func(_ context.Context, s *model.TrackedSearch, _ model.TriggerKind) domain.ExecutionResult {
			assert.Equal(t, "idle", s.ID)
			return domain.ExecutionResult{}
		})

	dispatched, err := scheduler.Tick(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, dispatched, "in-flight search must be skipped, not queued")

	require.NoError(t, scheduler.Drain(ctx))
	assert.True(t, claims.IsRunning("busy"), "foreign claim must stay held")
}

func TestSchedulerService_Tick_ListError(t *testing.T) {
	t.Parallel()
	searches, _, _, scheduler := newSchedulerFixture(t)

	ctx := context.Background()
	now := time.Now()

	searches.EXPECT().ListDue(ctx, now, defaultBatchSize).Return(nil, errors.New("db down"))

	dispatched, err := scheduler.Tick(ctx, now)
	require.Error(t, err)
	assert.Zero(t, dispatched)
}

func TestSchedulerService_Tick_EmptyBatchIsNoop(t *testing.T) {
	t.Parallel()
	searches, _, _, scheduler := newSchedulerFixture(t)

	ctx := context.Background()
	now := time.Now()

	searches.EXPECT().ListDue(ctx, now, defaultBatchSize).Return(nil, nil)

	dispatched, err := scheduler.Tick(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, dispatched)
}

func TestSchedulerService_Tick_ExecutionSurvivesShutdownCancel(t *testing.T) {
	t.Parallel()
	searches, runner, _, scheduler := newSchedulerFixture(t)

	tickCtx, cancelTick := context.WithCancel(context.Background())
	now := time.Now()

	searches.EXPECT().ListDue(tickCtx, now, defaultBatchSize).
		Return([]*model.TrackedSearch{dueSearch("inflight")}, nil)

	tickCancelled := make(chan struct{})
	execErr := make(chan error, 1)
	runner.EXPECT().
		Execute(gomock.Any(), gomock.Any(), model.TriggerScheduled).
		DoAndReturn(func(execCtx context.Context, _ *model.TrackedSearch, _ model.TriggerKind) domain.ExecutionResult {
			<-tickCancelled
			execErr <- execCtx.Err()
			return domain.ExecutionResult{}
		})

	_, err := scheduler.Tick(tickCtx, now)
	require.NoError(t, err)

	// Shutdown cancels ticking while the execution is still running.
	cancelTick()
	close(tickCancelled)

	require.NoError(t, scheduler.Drain(context.Background()))
	assert.NoError(t, <-execErr, "in-flight execution must not observe shutdown cancellation")
}

func TestSchedulerService_Drain_TimesOut(t *testing.T) {
	t.Parallel()
	searches, runner, _, scheduler := newSchedulerFixture(t)

	ctx := context.Background()
	now := time.Now()
	release := make(chan struct{})

	searches.EXPECT().ListDue(ctx, now, defaultBatchSize).
		Return([]*model.TrackedSearch{dueSearch("slow")}, nil)
	runner.EXPECT().
		Execute(gomock.Any(), gomock.Any(), model.TriggerScheduled).
		DoAndReturn(func(context.Context, *model.TrackedSearch, model.TriggerKind) domain.ExecutionResult {
			<-release
			return domain.ExecutionResult{}
		})

	_, err := scheduler.Tick(ctx, now)
	require.NoError(t, err)

	drainCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	require.Error(t, scheduler.Drain(drainCtx))

	close(release)
	require.NoError(t, scheduler.Drain(ctx))
}
