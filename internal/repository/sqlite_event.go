package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
)

const eventColumns = `id, short_id, name, range_from, range_to, active_sections, active_stages, created_at, updated_at`

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(db db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: db}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ShortID,
		e.Name,
		storageString(e.Range.From.Storage()),
		storageString(e.Range.To.Storage()),
		joinList(e.ActiveSectionIDs),
		joinList(stagesToStrings(e.ActiveStages)),
		formatTimestamp(e.CreatedAt),
		formatTimestamp(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

func (r *SQLiteEventRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return scanEvent(row)
}

func (r *SQLiteEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY range_from, name`)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET short_id = ?, name = ?, range_from = ?, range_to = ?,
		active_sections = ?, active_stages = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.ShortID,
		e.Name,
		storageString(e.Range.From.Storage()),
		storageString(e.Range.To.Storage()),
		joinList(e.ActiveSectionIDs),
		joinList(stagesToStrings(e.ActiveStages)),
		formatTimestamp(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return requireAffected(res, "event")
}

// UpdateRange replaces only the event window.
func (r *SQLiteEventRepo) UpdateRange(ctx context.Context, id string, rng dates.Range) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET range_from = ?, range_to = ?, updated_at = ? WHERE id = ?`,
		storageString(rng.From.Storage()), storageString(rng.To.Storage()), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating event range: %w", err)
	}
	return requireAffected(res, "event")
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var fromStr, toStr, sectionsStr, stagesStr, createdAtStr, updatedAtStr string

	err := row.Scan(&e.ID, &e.ShortID, &e.Name, &fromStr, &toStr,
		&sectionsStr, &stagesStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, notFound("event", err)
	}

	from, err := parseDay("range_from", fromStr)
	if err != nil {
		return nil, err
	}
	to, err := parseDay("range_to", toStr)
	if err != nil {
		return nil, err
	}
	e.Range, err = dates.NewRange(from.Local(), to.Local())
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", e.ID, err)
	}

	e.ActiveSectionIDs = splitList(sectionsStr)
	for _, s := range splitList(stagesStr) {
		e.ActiveStages = append(e.ActiveStages, domain.Stage(s))
	}

	if e.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &e, nil
}

func stagesToStrings(stages []domain.Stage) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return out
}

// requireAffected turns an UPDATE or DELETE that touched nothing into ErrNotFound.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
