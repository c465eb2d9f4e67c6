package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, event_id, kind, name, start_date, end_date, completed_at,
		item_id, catalog_item_id, category_id, duration_days, order_index,
		crew_member_id, sync_status, invitation_status, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.EventID,
		string(t.Kind),
		t.Name,
		storageString(t.Start),
		storageString(t.End),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		nullableString(&t.ItemID),
		t.CatalogItemID,
		t.CategoryID,
		t.DurationDays,
		t.Order,
		nullableString(t.CrewMemberID),
		string(t.SyncStatus),
		string(t.InvitationStatus),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// GetByItem returns the task scheduled for an event item, or ErrNotFound
// when the slot is empty.
func (r *SQLiteTaskRepo) GetByItem(ctx context.Context, itemID string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE item_id = ?`, itemID)
	return scanTask(row)
}

func (r *SQLiteTaskRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE event_id = ? ORDER BY start_date, order_index, name`, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by event: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, start_date = ?, end_date = ?, completed_at = ?,
		duration_days = ?, order_index = ?, crew_member_id = ?, sync_status = ?,
		invitation_status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		storageString(t.Start),
		storageString(t.End),
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.DurationDays,
		t.Order,
		nullableString(t.CrewMemberID),
		string(t.SyncStatus),
		string(t.InvitationStatus),
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task")
}

// UpdateDates writes only the span; completion and crew fields are untouched.
func (r *SQLiteTaskRepo) UpdateDates(ctx context.Context, id string, start, end dates.StorageDay) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`,
		storageString(start), storageString(end), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task dates: %w", err)
	}
	return requireAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task")
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var kind, startStr, endStr, syncStr, inviteStr, createdAtStr, updatedAtStr string
	var completedAtStr, itemID, crewID sql.NullString

	err := row.Scan(
		&t.ID, &t.EventID, &kind, &t.Name, &startStr, &endStr, &completedAtStr,
		&itemID, &t.CatalogItemID, &t.CategoryID, &t.DurationDays, &t.Order,
		&crewID, &syncStr, &inviteStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, notFound("task", err)
	}

	t.Kind = domain.TaskKind(kind)
	t.SyncStatus = domain.SyncStatus(syncStr)
	t.InvitationStatus = domain.InvitationStatus(inviteStr)
	t.ItemID = itemID.String
	t.CrewMemberID = parseNullableString(crewID)
	t.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)

	if t.Start, err = parseDay("start_date", startStr); err != nil {
		return nil, err
	}
	if t.End, err = parseDay("end_date", endStr); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}
