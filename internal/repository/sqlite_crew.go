package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
)

type SQLiteCrewRepo struct {
	db db.DBTX
}

func NewSQLiteCrewRepo(db db.DBTX) *SQLiteCrewRepo {
	return &SQLiteCrewRepo{db: db}
}

func (r *SQLiteCrewRepo) Create(ctx context.Context, m *domain.CrewMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO crew_members (id, name, email) VALUES (?, ?, ?)`, m.ID, m.Name, m.Email)
	if err != nil {
		return fmt.Errorf("inserting crew member: %w", err)
	}
	return nil
}

func (r *SQLiteCrewRepo) GetByID(ctx context.Context, id string) (*domain.CrewMember, error) {
	var m domain.CrewMember
	err := r.db.QueryRowContext(ctx, `SELECT id, name, email FROM crew_members WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Email)
	if err != nil {
		return nil, notFound("crew member", err)
	}
	return &m, nil
}

func (r *SQLiteCrewRepo) List(ctx context.Context) ([]*domain.CrewMember, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email FROM crew_members ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing crew: %w", err)
	}
	defer rows.Close()

	var out []*domain.CrewMember
	for rows.Next() {
		var m domain.CrewMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("scanning crew row: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating crew: %w", err)
	}
	return out, nil
}
