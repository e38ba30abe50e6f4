package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/geoscout/geoscout/internal/data"
	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
	apperrors "github.com/geoscout/geoscout/internal/errors"
	"github.com/geoscout/geoscout/internal/mocks"
)

type automationFixture struct {
	searches      *mocks.MockTrackedSearchRepository
	logs          *mocks.MockExecutionLogRepository
	notifications *mocks.MockNotificationRepository
	runner        *mocks.MockSearchRunner
	cache         *mocks.MockCacheRepository
	claims        *ClaimRegistry
	clock         *data.FixedTimeProvider
	service       *AutomationService
}

func newAutomationFixture(t *testing.T) *automationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &automationFixture{
		searches:      mocks.NewMockTrackedSearchRepository(ctrl),
		logs:          mocks.NewMockExecutionLogRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
		runner:        mocks.NewMockSearchRunner(ctrl),
		cache:         mocks.NewMockCacheRepository(ctrl),
		claims:        NewClaimRegistry(),
		clock:         data.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.service = NewAutomationService(AutomationServiceOptions{
		Searches:      f.searches,
		Logs:          f.logs,
		Notifications: f.notifications,
		Executor:      f.runner,
		Claims:        f.claims,
		Cache:         f.cache,
		TimeProvider:  f.clock,
	})
	return f
}

func validCreateRequest() *model.CreateTrackedSearchRequest {
	return &model.CreateTrackedSearchRequest{
		Name:          "Plumbers Berlin",
		Query:         "plumber",
		Location:      "Berlin",
		IntervalHours: 24,
	}
}

func TestAutomationService_CreateTrackedSearch_Success(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)

	ctx := context.Background()
	req := validCreateRequest()
	created := &model.TrackedSearch{ID: testSearchID, Name: req.Name}

	f.searches.EXPECT().Create(ctx, req, f.clock.Now()).Return(created, nil)
	f.cache.EXPECT().Delete(ctx, statsCacheKey).Return(true, nil)

	got, err := f.service.CreateTrackedSearch(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestAutomationService_CreateTrackedSearch_Validation(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)

	req := validCreateRequest()
	req.IntervalHours = 0

	_, err := f.service.CreateTrackedSearch(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAutomationService_CreateTrackedSearch_DuplicateName(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)

	ctx := context.Background()
	req := validCreateRequest()

	f.searches.EXPECT().Create(ctx, req, gomock.Any()).Return(nil, data.ErrTrackedSearchNameExists)

	_, err := f.service.CreateTrackedSearch(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAutomationService_GetTrackedSearch_NotFound(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)

	ctx := context.Background()
	f.searches.EXPECT().GetByID(ctx, "missing").Return(nil, data.ErrTrackedSearchNotFound)

	_, err := f.service.GetTrackedSearch(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAutomationService_DeleteTrackedSearch(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)
	ctx := context.Background()

	f.searches.EXPECT().Delete(ctx, testSearchID).Return(true, nil)
	f.cache.EXPECT().Delete(ctx, statsCacheKey).Return(true, nil)
	require.NoError(t, f.service.DeleteTrackedSearch(ctx, testSearchID))

	f.searches.EXPECT().Delete(ctx, "missing").Return(false, nil)
	err := f.service.DeleteTrackedSearch(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAutomationService_RunNow_Success(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)

	ctx := context.Background()
	search := testSearch()
	entry := &model.ExecutionLog{ID: "log-1", Status: model.ExecutionSuccess}

	f.searches.EXPECT().GetByID(ctx, testSearchID).Return(search, nil)
	f.runner.EXPECT().
		Execute(ctx, search, model.TriggerManual).
		DoAndReturn(func(context.Context, *model.TrackedSearch, model.TriggerKind) domain.ExecutionResult {
			assert.True(t, f.claims.IsRunning(testSearchID), "claim must be held during execution")
			return domain.ExecutionResult{Log: entry}
		})
	f.cache.EXPECT().Delete(ctx, statsCacheKey).Return(true, nil)

	got, err := f.service.RunNow(ctx, testSearchID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.False(t, f.claims.IsRunning(testSearchID), "claim must be released afterwards")
}

func TestAutomationService_RunNow_AlreadyRunning(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)

	ctx := context.Background()
	search := testSearch()

	require.True(t, f.claims.Claim(testSearchID))
	f.searches.EXPECT().GetByID(ctx, testSearchID).Return(search, nil)

	_, err := f.service.RunNow(ctx, testSearchID)
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyRunning(err))
	assert.True(t, f.claims.IsRunning(testSearchID), "rejection must not release the foreign claim")
}

func TestAutomationService_GetExecutionLogs_RequiresID(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)

	_, err := f.service.GetExecutionLogs(context.Background(), model.ExecutionLogListOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAutomationService_MarkNotificationRead_NotFound(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)
	ctx := context.Background()

	f.notifications.EXPECT().MarkRead(ctx, "missing").Return(false, nil)

	err := f.service.MarkNotificationRead(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAutomationService_MarkAllNotificationsRead(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)
	ctx := context.Background()

	f.notifications.EXPECT().MarkAllRead(ctx).Return(int64(3), nil)
	f.cache.EXPECT().Delete(ctx, statsCacheKey).Return(true, nil)

	n, err := f.service.MarkAllNotificationsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// Nothing changed: cache stays untouched.
	f.notifications.EXPECT().MarkAllRead(ctx).Return(int64(0), nil)
	n, err = f.service.MarkAllNotificationsRead(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAutomationService_Stats_CacheMissThenStore(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)
	ctx := context.Background()

	f.cache.EXPECT().Get(ctx, statsCacheKey).Return(nil, nil)
	f.searches.EXPECT().Counts(gomock.Any()).Return(5, 3, nil)
	f.logs.EXPECT().Count(gomock.Any()).Return(42, nil)
	f.notifications.EXPECT().CountUnread(gomock.Any()).Return(7, nil)
	f.cache.EXPECT().
		Set(ctx, statsCacheKey, gomock.Any(), statsCacheTTL).
		DoAndReturn(func(_ context.Context, _ string, raw []byte, _ time.Duration) error {
			var cached model.AutomationStats
			require.NoError(t, json.Unmarshal(raw, &cached))
			assert.Equal(t, 5, cached.TotalSearches)
			return nil
		})

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.AutomationStats{
		TotalSearches:       5,
		ActiveSearches:      3,
		TotalExecutions:     42,
		UnreadNotifications: 7,
	}, stats)
}

func TestAutomationService_Stats_ServedFromCache(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)
	ctx := context.Background()

	cached, err := json.Marshal(model.AutomationStats{TotalSearches: 9, ActiveSearches: 4})
	require.NoError(t, err)
	f.cache.EXPECT().Get(ctx, statsCacheKey).Return(cached, nil)

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, stats.TotalSearches)
	assert.Equal(t, 4, stats.ActiveSearches)
}

func TestAutomationService_Stats_CacheErrorFallsThrough(t *testing.T) {
	t.Parallel()
	f := newAutomationFixture(t)
	ctx := context.Background()

	f.cache.EXPECT().Get(ctx, statsCacheKey).Return(nil, errors.New("redis down"))
	f.searches.EXPECT().Counts(gomock.Any()).Return(1, 1, nil)
	f.logs.EXPECT().Count(gomock.Any()).Return(2, nil)
	f.notifications.EXPECT().CountUnread(gomock.Any()).Return(0, nil)
	f.cache.EXPECT().Set(ctx, statsCacheKey, gomock.Any(), statsCacheTTL).Return(errors.New("redis down"))

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err, "cache trouble must not break stats")
	assert.Equal(t, 1, stats.TotalSearches)
}
