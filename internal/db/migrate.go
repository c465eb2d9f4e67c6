package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillManualDuration(db); err != nil {
		return fmt.Errorf("backfilling manual task durations: %w", err)
	}
	return nil
}

// migrateBackfillManualDuration fills duration_days for manual tasks written
// before the column existed, from their stored start and end days.
func migrateBackfillManualDuration(db *sql.DB) error {
	ctx := context.Background()
	res, err := db.ExecContext(ctx, `UPDATE tasks
		SET duration_days = CAST(julianday(end_date) - julianday(start_date) AS INTEGER) + 1
		WHERE kind = 'manual' AND duration_days = 0`)
	if err != nil {
		return fmt.Errorf("updating tasks: %w", err)
	}
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("counting backfilled tasks: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id              TEXT PRIMARY KEY,
		short_id        TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL,
		range_from      TEXT NOT NULL,
		range_to        TEXT NOT NULL,
		active_sections TEXT NOT NULL DEFAULT '',
		active_stages   TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		CHECK(range_from <= range_to)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_events_short_id ON events(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS sections (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id            TEXT PRIMARY KEY,
		section_id    TEXT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		stage         TEXT NOT NULL
		              CHECK(stage IN ('planning','production','post_production','delivery')),
		order_index   INTEGER NOT NULL DEFAULT 0,
		accepts_tasks INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_section ON categories(section_id)`,
	`CREATE TABLE IF NOT EXISTS catalog_items (
		id          TEXT PRIMARY KEY,
		category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_items_category ON catalog_items(category_id)`,

	`CREATE TABLE IF NOT EXISTS crew_members (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS event_items (
		id              TEXT PRIMARY KEY,
		event_id        TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		catalog_item_id TEXT NOT NULL REFERENCES catalog_items(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		UNIQUE(event_id, catalog_item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_event_items_event ON event_items(event_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		event_id          TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		kind              TEXT NOT NULL CHECK(kind IN ('catalog','manual')),
		name              TEXT NOT NULL,
		start_date        TEXT NOT NULL,
		end_date          TEXT NOT NULL,
		completed_at      TEXT,
		item_id           TEXT REFERENCES event_items(id) ON DELETE CASCADE,
		catalog_item_id   TEXT NOT NULL DEFAULT '',
		category_id       TEXT NOT NULL DEFAULT '',
		order_index       INTEGER NOT NULL DEFAULT 0,
		crew_member_id    TEXT REFERENCES crew_members(id) ON DELETE SET NULL,
		sync_status       TEXT NOT NULL DEFAULT ''
		                  CHECK(sync_status IN ('','draft','published','invited')),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		CHECK(start_date <= end_date),
		CHECK((kind = 'catalog' AND item_id IS NOT NULL) OR (kind = 'manual' AND category_id != ''))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_event ON tasks(event_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_item ON tasks(item_id) WHERE item_id IS NOT NULL`,

	// Columns added after the first release.
	`ALTER TABLE tasks ADD COLUMN duration_days INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE tasks ADD COLUMN invitation_status TEXT NOT NULL DEFAULT ''`,
}
