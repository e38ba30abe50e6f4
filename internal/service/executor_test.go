package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/geoscout/geoscout/internal/core"
	"github.com/geoscout/geoscout/internal/data"
	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
	"github.com/geoscout/geoscout/internal/mocks"
)

const testSearchID = "search-123"

type executorFixture struct {
	searches      *mocks.MockTrackedSearchRepository
	logs          *mocks.MockExecutionLogRepository
	notifications *mocks.MockNotificationRepository
	provider      *mocks.MockDiscoveryProvider
	limiter       *mocks.MockRateLimiter
	clock         *data.FixedTimeProvider
	executor      *ExecutorService
}

func newExecutorFixture(t *testing.T) *executorFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &executorFixture{
		searches:      mocks.NewMockTrackedSearchRepository(ctrl),
		logs:          mocks.NewMockExecutionLogRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
		provider:      mocks.NewMockDiscoveryProvider(ctrl),
		limiter:       mocks.NewMockRateLimiter(ctrl),
		clock:         data.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.executor = NewExecutorService(ExecutorServiceOptions{
		Searches:      f.searches,
		Logs:          f.logs,
		Notifications: f.notifications,
		Provider:      f.provider,
		Limiter:       f.limiter,
		TimeProvider:  f.clock,
	})
	return f
}

func testSearch() *model.TrackedSearch {
	return &model.TrackedSearch{
		ID:            testSearchID,
		Name:          "Plumbers Berlin",
		Query:         "plumber",
		Location:      "Berlin",
		RadiusMeters:  5000,
		IntervalHours: 24,
		NotifyOnNew:   true,
		IsActive:      true,
	}
}

func TestExecutorService_Execute_SuccessWithNotification(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()
	started := f.clock.Now()

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, domain.SearchParamsFor(search)).
		DoAndReturn(func(context.Context, domain.SearchParams) (domain.SearchOutcome, error) {
			f.clock.AddTime(250 * time.Millisecond)
			return domain.SearchOutcome{TotalFound: 10, NewFound: 3}, nil
		})

	f.logs.EXPECT().
		Record(ctx, domain.RecordExecutionParams{
			TrackedSearchID: testSearchID,
			Trigger:         model.TriggerScheduled,
			Status:          model.ExecutionSuccess,
			TotalFound:      10,
			NewFound:        3,
			Duration:        250 * time.Millisecond,
		}).
		Return(&model.ExecutionLog{ID: "log-1", Status: model.ExecutionSuccess}, nil)

	f.notifications.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n *model.Notification) (*model.Notification, error) {
			assert.Equal(t, model.NotificationBatchComplete, n.Type)
			assert.Equal(t, testSearchID, n.TrackedSearchID)
			assert.Equal(t, "log-1", n.ExecutionLogID)
			return n, nil
		})

	f.searches.EXPECT().
		AdvanceCursor(ctx, domain.AdvanceCursorParams{
			ID:          testSearchID,
			Trigger:     model.TriggerScheduled,
			CompletedAt: started.Add(250 * time.Millisecond),
			Interval:    24 * time.Hour,
			NewFound:    3,
		}).
		Return(true, nil)

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)

	require.NotNil(t, result.Log)
	assert.True(t, result.Succeeded())
	require.NotNil(t, result.Notification)
}

func TestExecutorService_Execute_NoNewLeadsNoNotification(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, gomock.Any()).
		Return(domain.SearchOutcome{TotalFound: 7, NewFound: 0}, nil)
	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		Return(&model.ExecutionLog{ID: "log-1", Status: model.ExecutionSuccess}, nil)
	f.searches.EXPECT().AdvanceCursor(ctx, gomock.Any()).Return(true, nil)

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)

	assert.True(t, result.Succeeded())
	assert.Nil(t, result.Notification, "empty batch must not notify")
}

func TestExecutorService_Execute_NotifyOptOut(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()
	search.NotifyOnNew = false

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, gomock.Any()).
		Return(domain.SearchOutcome{TotalFound: 10, NewFound: 5}, nil)
	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		Return(&model.ExecutionLog{ID: "log-1", Status: model.ExecutionSuccess}, nil)
	f.searches.EXPECT().AdvanceCursor(ctx, gomock.Any()).Return(true, nil)

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)

	assert.Nil(t, result.Notification, "opted-out search must not notify")
}

func TestExecutorService_Execute_ProviderFailureStillAdvancesCursor(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()
	started := f.clock.Now()

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, gomock.Any()).
		Return(domain.SearchOutcome{}, fmt.Errorf("%w: status 503", core.ErrProviderUnavailable))

	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.RecordExecutionParams) (*model.ExecutionLog, error) {
			assert.Equal(t, model.ExecutionFailed, p.Status)
			assert.Contains(t, p.Error, "provider unreachable")
			assert.Zero(t, p.TotalFound)
			assert.Zero(t, p.NewFound)
			return &model.ExecutionLog{ID: "log-1", Status: p.Status}, nil
		})

	f.searches.EXPECT().
		AdvanceCursor(ctx, domain.AdvanceCursorParams{
			ID:          testSearchID,
			Trigger:     model.TriggerScheduled,
			CompletedAt: started,
			Interval:    24 * time.Hour,
			NewFound:    0,
		}).
		Return(true, nil)

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)

	require.NotNil(t, result.Log)
	assert.False(t, result.Succeeded())
	assert.Nil(t, result.Notification, "failed run must not notify")
}

func TestExecutorService_Execute_LimiterErrorIsFailure(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()

	f.limiter.EXPECT().Acquire(ctx).Return(errors.New("context deadline exceeded"))
	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.RecordExecutionParams) (*model.ExecutionLog, error) {
			assert.Equal(t, model.ExecutionFailed, p.Status)
			assert.Contains(t, p.Error, "unexpected error")
			return &model.ExecutionLog{ID: "log-1", Status: p.Status}, nil
		})
	f.searches.EXPECT().AdvanceCursor(ctx, gomock.Any()).Return(true, nil)

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)
	assert.False(t, result.Succeeded())
}

func TestExecutorService_Execute_ManualTriggerPropagates(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, gomock.Any()).
		Return(domain.SearchOutcome{TotalFound: 2, NewFound: 0}, nil)
	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.RecordExecutionParams) (*model.ExecutionLog, error) {
			assert.Equal(t, model.TriggerManual, p.Trigger)
			return &model.ExecutionLog{ID: "log-1", Status: p.Status}, nil
		})
	f.searches.EXPECT().
		AdvanceCursor(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.AdvanceCursorParams) (bool, error) {
			assert.Equal(t, model.TriggerManual, p.Trigger)
			return true, nil
		})

	f.executor.Execute(ctx, search, model.TriggerManual)
}

func TestExecutorService_Execute_RecordFailureDoesNotBlockCursor(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()
	search.NotifyOnNew = false

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, gomock.Any()).
		Return(domain.SearchOutcome{TotalFound: 1, NewFound: 1}, nil)
	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		Return(nil, errors.New("insert failed"))
	f.searches.EXPECT().AdvanceCursor(ctx, gomock.Any()).Return(true, nil)

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)

	assert.Nil(t, result.Log)
	assert.False(t, result.Succeeded())
}

func TestExecutorService_Execute_RecordFailureSkipsNotification(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, gomock.Any()).
		Return(domain.SearchOutcome{TotalFound: 4, NewFound: 2}, nil)
	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		Return(nil, errors.New("insert failed"))
	f.searches.EXPECT().AdvanceCursor(ctx, gomock.Any()).Return(true, nil)
	// No notifications.Create expectation: a notification always references
	// its execution log row, so none may be written when the log is missing.

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)

	assert.Nil(t, result.Log)
	assert.Nil(t, result.Notification)
}

func TestExecutorService_Execute_SearchDeletedMidFlight(t *testing.T) {
	t.Parallel()
	f := newExecutorFixture(t)

	ctx := context.Background()
	search := testSearch()
	search.NotifyOnNew = false

	f.limiter.EXPECT().Acquire(ctx).Return(nil)
	f.provider.EXPECT().
		Search(ctx, gomock.Any()).
		Return(domain.SearchOutcome{TotalFound: 3, NewFound: 0}, nil)
	f.logs.EXPECT().
		Record(ctx, gomock.Any()).
		Return(&model.ExecutionLog{ID: "log-1", Status: model.ExecutionSuccess}, nil)
	f.searches.EXPECT().AdvanceCursor(ctx, gomock.Any()).Return(false, nil)

	result := f.executor.Execute(ctx, search, model.TriggerScheduled)
	assert.True(t, result.Succeeded(), "log entry survives even when the search is gone")
}
