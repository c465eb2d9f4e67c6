package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
)

type SQLiteEventItemRepo struct {
	db db.DBTX
}

func NewSQLiteEventItemRepo(db db.DBTX) *SQLiteEventItemRepo {
	return &SQLiteEventItemRepo{db: db}
}

func (r *SQLiteEventItemRepo) Create(ctx context.Context, i *domain.EventItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_items (id, event_id, catalog_item_id, name) VALUES (?, ?, ?, ?)`,
		i.ID, i.EventID, i.CatalogItemID, i.Name)
	if err != nil {
		return fmt.Errorf("inserting event item: %w", err)
	}
	return nil
}

func (r *SQLiteEventItemRepo) GetByID(ctx context.Context, id string) (*domain.EventItem, error) {
	var i domain.EventItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, catalog_item_id, name FROM event_items WHERE id = ?`, id).
		Scan(&i.ID, &i.EventID, &i.CatalogItemID, &i.Name)
	if err != nil {
		return nil, notFound("event item", err)
	}
	return &i, nil
}

func (r *SQLiteEventItemRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.EventItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, catalog_item_id, name FROM event_items WHERE event_id = ? ORDER BY name`, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing event items: %w", err)
	}
	defer rows.Close()

	var out []*domain.EventItem
	for rows.Next() {
		var i domain.EventItem
		if err := rows.Scan(&i.ID, &i.EventID, &i.CatalogItemID, &i.Name); err != nil {
			return nil, fmt.Errorf("scanning event item row: %w", err)
		}
		out = append(out, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event items: %w", err)
	}
	return out, nil
}

// Delete removes the assignment and, through the foreign key, its task.
func (r *SQLiteEventItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event item: %w", err)
	}
	return requireAffected(res, "event item")
}
