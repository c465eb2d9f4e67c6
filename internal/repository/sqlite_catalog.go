package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

func NewSQLiteCatalogRepo(db db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: db}
}

func (r *SQLiteCatalogRepo) CreateSection(ctx context.Context, s *domain.Section) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sections (id, name, order_index) VALUES (?, ?, ?)`,
		s.ID, s.Name, s.Order)
	if err != nil {
		return fmt.Errorf("inserting section: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, section_id, name, stage, order_index, accepts_tasks) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.SectionID, c.Name, string(c.Stage), c.Order, boolToInt(c.AcceptsTasks))
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) CreateItem(ctx context.Context, i *domain.CatalogItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_items (id, category_id, name, order_index) VALUES (?, ?, ?, ?)`,
		i.ID, i.CategoryID, i.Name, i.Order)
	if err != nil {
		return fmt.Errorf("inserting catalog item: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) GetSection(ctx context.Context, id string) (*domain.Section, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, order_index FROM sections WHERE id = ?`, id)
	return scanSection(row)
}

func (r *SQLiteCatalogRepo) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, section_id, name, stage, order_index, accepts_tasks FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

func (r *SQLiteCatalogRepo) GetItem(ctx context.Context, id string) (*domain.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, category_id, name, order_index FROM catalog_items WHERE id = ?`, id)
	return scanCatalogItem(row)
}

func (r *SQLiteCatalogRepo) ListSections(ctx context.Context) ([]*domain.Section, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, order_index FROM sections ORDER BY order_index, name`)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var out []*domain.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, section_id, name, stage, order_index, accepts_tasks FROM categories ORDER BY section_id, order_index, name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) ListItems(ctx context.Context) ([]*domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category_id, name, order_index FROM catalog_items ORDER BY category_id, order_index, name`)
	if err != nil {
		return nil, fmt.Errorf("listing catalog items: %w", err)
	}
	defer rows.Close()

	var out []*domain.CatalogItem
	for rows.Next() {
		i, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog items: %w", err)
	}
	return out, nil
}

func scanSection(row rowScanner) (*domain.Section, error) {
	var s domain.Section
	if err := row.Scan(&s.ID, &s.Name, &s.Order); err != nil {
		return nil, notFound("section", err)
	}
	return &s, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var stage string
	var accepts int
	if err := row.Scan(&c.ID, &c.SectionID, &c.Name, &stage, &c.Order, &accepts); err != nil {
		return nil, notFound("category", err)
	}
	c.Stage = domain.Stage(stage)
	c.AcceptsTasks = intToBool(accepts)
	return &c, nil
}

func scanCatalogItem(row rowScanner) (*domain.CatalogItem, error) {
	var i domain.CatalogItem
	if err := row.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Order); err != nil {
		return nil, notFound("catalog item", err)
	}
	return &i, nil
}
