package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/geoscout/geoscout/internal/data/pgxutil"
	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
)

// ExecutionLogRepo provides append-only database operations for execution
// logs. Rows are never updated; each execution attempt writes exactly one.
type ExecutionLogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewExecutionLogRepo creates a new ExecutionLogRepo with real time provider.
func NewExecutionLogRepo(db *sql.DB) *ExecutionLogRepo {
	return &ExecutionLogRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewExecutionLogRepoWithTimeProvider creates an ExecutionLogRepo with a custom time provider (useful for tests).
func NewExecutionLogRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ExecutionLogRepo {
	return &ExecutionLogRepo{DB: db, timeProvider: tp}
}

const executionLogColumns = `
	id, tracked_search_id, trigger, status, total_found, new_found,
	duration_ms, error, created_at`

// Record appends one execution log entry.
func (r *ExecutionLogRepo) Record(
	ctx context.Context,
	p domain.RecordExecutionParams,
) (*model.ExecutionLog, error) {
	if p.TrackedSearchID == "" {
		return nil, errors.New("tracked_search_id is required")
	}
	if !p.Trigger.Valid() {
		return nil, fmt.Errorf("invalid trigger kind: %q", p.Trigger)
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("invalid execution status: %q", p.Status)
	}

	var errMsg *string
	if msg := strings.TrimSpace(p.Error); msg != "" {
		errMsg = &msg
	}

	var out model.ExecutionLog
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO execution_logs (
				id, tracked_search_id, trigger, status, total_found, new_found,
				duration_ms, error, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9
			) RETURNING `+executionLogColumns,
			uuid.NewString(),
			p.TrackedSearchID,
			p.Trigger,
			p.Status,
			p.TotalFound,
			p.NewFound,
			p.Duration.Milliseconds(),
			errMsg,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ExecutionLog])
		return err
	}); err != nil {
		return nil, fmt.Errorf("record execution log: %w", err)
	}
	return &out, nil
}

// ListByTrackedSearch retrieves execution logs for one tracked search, newest
// first. Works for deleted tracked searches too; the history remains.
func (r *ExecutionLogRepo) ListByTrackedSearch(
	ctx context.Context,
	opts model.ExecutionLogListOptions,
) ([]*model.ExecutionLog, error) {
	if opts.TrackedSearchID == "" {
		return nil, errors.New("tracked_search_id is required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	var rowsOut []model.ExecutionLog
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+executionLogColumns+`
			FROM execution_logs
			WHERE tracked_search_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`,
			opts.TrackedSearchID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ExecutionLog])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list execution logs: %w", err)
	}

	res := make([]*model.ExecutionLog, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the total number of execution log entries.
func (r *ExecutionLogRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM execution_logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count execution logs: %w", err)
	}
	return count, nil
}
