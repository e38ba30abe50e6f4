package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/geoscout/geoscout/internal/data/pgxutil"
	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
)

// TrackedSearchRepo provides database operations for tracked searches. It is
// the only writer of the scheduling cursor columns.
type TrackedSearchRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTrackedSearchRepo creates a new TrackedSearchRepo with real time provider.
func NewTrackedSearchRepo(db *sql.DB) *TrackedSearchRepo {
	return &TrackedSearchRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTrackedSearchRepoWithTimeProvider creates a TrackedSearchRepo with a custom time provider (useful for tests).
func NewTrackedSearchRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TrackedSearchRepo {
	return &TrackedSearchRepo{DB: db, timeProvider: tp}
}

const trackedSearchColumns = `
	id, name, query, location, radius_meters, place_type, filters,
	interval_hours, min_score_threshold, notify_on_new, is_active,
	next_run_at, last_run_at, total_runs, total_new_found, last_new_count,
	created_at, updated_at`

// Create inserts a new tracked search. The search is born active with
// next_run_at = now, so it is picked up by the next scheduler tick.
func (r *TrackedSearchRepo) Create(
	ctx context.Context,
	req *model.CreateTrackedSearchRequest,
	now time.Time,
) (*model.TrackedSearch, error) {
	if req == nil {
		return nil, errors.New("create tracked search request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.TrackedSearch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO tracked_searches (
				id, name, query, location, radius_meters, place_type, filters,
				interval_hours, min_score_threshold, notify_on_new, is_active,
				next_run_at, total_runs, total_new_found, last_new_count, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11, 0, 0, 0, $11
			) RETURNING `+trackedSearchColumns,
			uuid.NewString(),
			req.Name,
			req.Query,
			req.Location,
			req.Radius(),
			req.PlaceType,
			req.Filters,
			req.IntervalHours,
			req.Threshold(),
			req.Notify(),
			now.UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TrackedSearch])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a tracked search by ID.
func (r *TrackedSearchRepo) GetByID(ctx context.Context, id string) (*model.TrackedSearch, error) {
	var out model.TrackedSearch
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+trackedSearchColumns+` FROM tracked_searches WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TrackedSearch])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrackedSearchNotFound
		}
		return nil, fmt.Errorf("get tracked search by id: %w", err)
	}
	return &out, nil
}

// List retrieves tracked searches, newest first.
func (r *TrackedSearchRepo) List(
	ctx context.Context,
	opts model.TrackedSearchListOptions,
) ([]*model.TrackedSearch, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + trackedSearchColumns + ` FROM tracked_searches`
	if opts.ActiveOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rowsOut []model.TrackedSearch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TrackedSearch])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list tracked searches: %w", err)
	}

	res := make([]*model.TrackedSearch, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListDue returns active tracked searches whose next_run_at has passed,
// earliest-due first with a stable id tie-break. FOR UPDATE SKIP LOCKED keeps
// two concurrent ticks from selecting the same rows.
func (r *TrackedSearchRepo) ListDue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*model.TrackedSearch, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT ` + trackedSearchColumns + `
		FROM tracked_searches
		WHERE is_active AND next_run_at <= $1
		ORDER BY next_run_at ASC, id ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	var rowsOut []model.TrackedSearch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, now.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TrackedSearch])
		return err
	}); err != nil {
		return nil, fmt.Errorf("query due tracked searches: %w", err)
	}

	res := make([]*model.TrackedSearch, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// AdvanceCursor applies the post-execution cursor update in a single
// conditional UPDATE keyed by id, so concurrent updates to different searches
// never contend and two updates to the same search cannot interleave.
//
// Scheduled triggers move next_run_at to completed_at + interval; manual
// triggers leave the scheduled cadence alone. Both record last_run_at, bump
// total_runs, and fold NewFound into the yield counters.
//
// Return semantics:
//   - (true, nil): cursor advanced
//   - (false, nil): tracked search no longer exists (deleted mid-flight)
//   - (false, err): update failed
func (r *TrackedSearchRepo) AdvanceCursor(ctx context.Context, p domain.AdvanceCursorParams) (bool, error) {
	if p.ID == "" {
		return false, errors.New("tracked search id is required")
	}
	if !p.Trigger.Valid() {
		return false, fmt.Errorf("invalid trigger kind: %q", p.Trigger)
	}

	completed := p.CompletedAt.UTC()
	updated := r.timeProvider.Now().UTC()

	var (
		res pgconn.CommandTag
		err error
	)
	if p.Trigger == model.TriggerScheduled {
		err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
			res, err = conn.Exec(ctx, `
				UPDATE tracked_searches SET
					next_run_at = $2,
					last_run_at = $3,
					total_runs = total_runs + 1,
					total_new_found = total_new_found + $4,
					last_new_count = $4,
					updated_at = $5
				WHERE id = $1`,
				p.ID, completed.Add(p.Interval), completed, p.NewFound, updated)
			return err
		})
	} else {
		err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
			res, err = conn.Exec(ctx, `
				UPDATE tracked_searches SET
					last_run_at = $2,
					total_runs = total_runs + 1,
					total_new_found = total_new_found + $3,
					last_new_count = $3,
					updated_at = $4
				WHERE id = $1`,
				p.ID, completed, p.NewFound, updated)
			return err
		})
	}
	if err != nil {
		return false, fmt.Errorf("advance cursor: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// ToggleActive suspends or resumes a tracked search. Resuming resets
// next_run_at to now so the search is due immediately; suspending leaves the
// cursor in place.
func (r *TrackedSearchRepo) ToggleActive(
	ctx context.Context,
	id string,
	active bool,
	now time.Time,
) (*model.TrackedSearch, error) {
	query := `
		UPDATE tracked_searches
		SET is_active = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + trackedSearchColumns
	args := []any{id, active, r.timeProvider.Now().UTC()}
	if active {
		query = `
			UPDATE tracked_searches
			SET is_active = TRUE, next_run_at = $2, updated_at = $3
			WHERE id = $1
			RETURNING ` + trackedSearchColumns
		args = []any{id, now.UTC(), r.timeProvider.Now().UTC()}
	}

	var out model.TrackedSearch
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TrackedSearch])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrackedSearchNotFound
		}
		return nil, fmt.Errorf("toggle tracked search: %w", err)
	}
	return &out, nil
}

// Delete removes a tracked search definition. Execution logs and
// notifications referencing the id are historical record and stay behind.
func (r *TrackedSearchRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM tracked_searches WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete tracked search: %w", err)
	}
	return rows > 0, nil
}

// Counts returns the total and active number of tracked searches.
func (r *TrackedSearchRepo) Counts(ctx context.Context) (int, int, error) {
	var total, active int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM tracked_searches`).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("count tracked searches: %w", err)
	}
	return total, active, nil
}

func (r *TrackedSearchRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrTrackedSearchNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrTrackedSearchNameExists
	}
	return err
}
