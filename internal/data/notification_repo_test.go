package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoscout/geoscout/internal/domain/model"
	"github.com/geoscout/geoscout/internal/testutil"
)

func createTestNotification(t *testing.T, db *sql.DB, tp TimeProvider) *model.Notification {
	t.Helper()
	repo := NewNotificationRepoWithTimeProvider(db, tp)
	n, err := repo.Create(context.Background(), &model.Notification{
		Type:            model.NotificationBatchComplete,
		Title:           "3 new leads",
		Message:         "Plumbers Berlin found 3 new qualifying places",
		TrackedSearchID: fmt.Sprintf("search-%d", time.Now().UnixNano()),
		ExecutionLogID:  fmt.Sprintf("log-%d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	return n
}

func TestNotificationRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		now := testutil.TestTime()
		repo := NewNotificationRepoWithTimeProvider(db, NewFixedTimeProvider(now))

		n, err := repo.Create(ctx, &model.Notification{
			Type:            model.NotificationBatchComplete,
			Title:           "5 new leads",
			Message:         "Cafes Hamburg found 5 new qualifying places",
			TrackedSearchID: "search-abc",
			ExecutionLogID:  "log-abc",
			IsRead:          true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, n.ID, "id is generated when absent")
		assert.Equal(t, model.NotificationBatchComplete, n.Type)
		assert.False(t, n.IsRead, "notifications are always born unread")
		assert.Equal(t, now, n.CreatedAt.UTC())

		// nil and invalid type are rejected
		_, err = repo.Create(ctx, nil)
		assert.ErrorContains(t, err, "notification is required")

		_, err = repo.Create(ctx, &model.Notification{Type: "digest"})
		assert.ErrorContains(t, err, "invalid notification type")
	})
}

func TestNotificationRepo_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		now := testutil.TestTime()
		repo := NewNotificationRepo(db)

		first := createTestNotification(t, db, NewFixedTimeProvider(now))
		second := createTestNotification(t, db, NewFixedTimeProvider(now.Add(time.Minute)))

		all, err := repo.List(ctx, model.NotificationListOptions{Limit: 10})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(all), 2)
		assert.Equal(t, second.ID, all[0].ID, "newest first")
		assert.Equal(t, first.ID, all[1].ID)

		ok, err := repo.MarkRead(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, ok)

		unread, err := repo.List(ctx, model.NotificationListOptions{Limit: 10, UnreadOnly: true})
		require.NoError(t, err)
		for _, n := range unread {
			assert.NotEqual(t, first.ID, n.ID)
			assert.False(t, n.IsRead)
		}
	})
}

func TestNotificationRepo_MarkRead(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewNotificationRepo(db)

		n := createTestNotification(t, db, &RealTimeProvider{})

		ok, err := repo.MarkRead(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		// already read rows still match the UPDATE
		ok, err = repo.MarkRead(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.MarkRead(ctx, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNotificationRepo_MarkAllRead_CountUnread(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewNotificationRepo(db)

		createTestNotification(t, db, &RealTimeProvider{})
		createTestNotification(t, db, &RealTimeProvider{})

		unread, err := repo.CountUnread(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, unread, 2)

		changed, err := repo.MarkAllRead(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(unread), changed)

		unread, err = repo.CountUnread(ctx)
		require.NoError(t, err)
		assert.Zero(t, unread)

		// second sweep finds nothing to change
		changed, err = repo.MarkAllRead(ctx)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})
}

func TestNotificationRepo_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewNotificationRepo(db)

		n := createTestNotification(t, db, &RealTimeProvider{})

		ok, err := repo.Delete(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Delete(ctx, n.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
