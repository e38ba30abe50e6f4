package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/geoscout/geoscout/internal/data/pgxutil"
	"github.com/geoscout/geoscout/internal/domain/model"
)

// NotificationRepo provides database operations for aggregate notifications.
type NotificationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNotificationRepo creates a new NotificationRepo with real time provider.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewNotificationRepoWithTimeProvider creates a NotificationRepo with a custom time provider (useful for tests).
func NewNotificationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: tp}
}

const notificationColumns = `
	id, type, title, message, tracked_search_id, execution_log_id, is_read, created_at`

// Create persists a notification built by the notification generator.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n == nil {
		return nil, errors.New("notification is required")
	}
	if !n.Type.Valid() {
		return nil, fmt.Errorf("invalid notification type: %q", n.Type)
	}

	id := n.ID
	if id == "" {
		id = uuid.NewString()
	}

	var out model.Notification
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO notifications (
				id, type, title, message, tracked_search_id, execution_log_id, is_read, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, FALSE, $7
			) RETURNING `+notificationColumns,
			id,
			n.Type,
			n.Title,
			n.Message,
			n.TrackedSearchID,
			n.ExecutionLogID,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notification])
		return err
	}); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &out, nil
}

// List retrieves notifications, newest first, optionally unread only.
func (r *NotificationRepo) List(
	ctx context.Context,
	opts model.NotificationListOptions,
) ([]*model.Notification, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if opts.UnreadOnly {
		query += ` WHERE NOT is_read`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rowsOut []model.Notification
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Notification])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	res := make([]*model.Notification, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkRead marks one notification as read. Returns false when it doesn't exist.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// MarkAllRead marks every unread notification as read and returns how many changed.
func (r *NotificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE NOT is_read`)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return rows, nil
}

// Delete removes a notification by ID.
func (r *NotificationRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// CountUnread returns the number of unread notifications.
func (r *NotificationRepo) CountUnread(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
