package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedEventAndCategory(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO events (id, name, range_from, range_to, created_at, updated_at)
			VALUES ('e1', 'Wedding', '2024-01-01T12:00:00Z', '2024-01-10T12:00:00Z', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		`INSERT INTO sections (id, name) VALUES ('s1', 'Photography')`,
		`INSERT INTO categories (id, section_id, name, stage) VALUES ('c1', 's1', 'Shoot', 'production')`,
		`INSERT INTO catalog_items (id, category_id, name) VALUES ('ci1', 'c1', 'Ceremony')`,
		`INSERT INTO event_items (id, event_id, catalog_item_id, name) VALUES ('i1', 'e1', 'ci1', 'Ceremony')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"events", "sections", "categories", "catalog_items", "crew_members", "event_items", "tasks"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_events_short_id",
		"idx_categories_section",
		"idx_catalog_items_category",
		"idx_event_items_event",
		"idx_tasks_event",
		"idx_tasks_item",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_InMemoryJournalMode(t *testing.T) {
	// WAL only applies to file databases; :memory: keeps reporting "memory".
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_TaskDateOrderConstraint(t *testing.T) {
	db := openTestDB(t)
	seedEventAndCategory(t, db)

	_, err := db.Exec(`INSERT INTO tasks (id, event_id, kind, name, start_date, end_date, item_id, created_at, updated_at)
		VALUES ('t1', 'e1', 'catalog', 'Ceremony', '2024-01-05T12:00:00Z', '2024-01-03T12:00:00Z', 'i1', 'now', 'now')`)
	assert.Error(t, err, "end before start should be rejected")

	_, err = db.Exec(`INSERT INTO tasks (id, event_id, kind, name, start_date, end_date, item_id, created_at, updated_at)
		VALUES ('t1', 'e1', 'catalog', 'Ceremony', '2024-01-03T12:00:00Z', '2024-01-05T12:00:00Z', 'i1', 'now', 'now')`)
	assert.NoError(t, err)
}

func TestMigrate_OneTaskPerEventItem(t *testing.T) {
	db := openTestDB(t)
	seedEventAndCategory(t, db)

	insert := `INSERT INTO tasks (id, event_id, kind, name, start_date, end_date, item_id, created_at, updated_at)
		VALUES (?, 'e1', 'catalog', 'Ceremony', '2024-01-03T12:00:00Z', '2024-01-03T12:00:00Z', 'i1', 'now', 'now')`
	_, err := db.Exec(insert, "t1")
	require.NoError(t, err)
	_, err = db.Exec(insert, "t2")
	assert.Error(t, err)
}

func TestMigrate_KindShapeConstraint(t *testing.T) {
	db := openTestDB(t)
	seedEventAndCategory(t, db)

	_, err := db.Exec(`INSERT INTO tasks (id, event_id, kind, name, start_date, end_date, created_at, updated_at)
		VALUES ('m1', 'e1', 'manual', 'Prep', '2024-01-03T12:00:00Z', '2024-01-03T12:00:00Z', 'now', 'now')`)
	assert.Error(t, err, "manual task without category")

	_, err = db.Exec(`INSERT INTO tasks (id, event_id, kind, name, start_date, end_date, category_id, created_at, updated_at)
		VALUES ('m1', 'e1', 'manual', 'Prep', '2024-01-03T12:00:00Z', '2024-01-03T12:00:00Z', 'c1', 'now', 'now')`)
	assert.NoError(t, err)
}

func TestMigrate_BackfillsManualDuration(t *testing.T) {
	db := openTestDB(t)
	seedEventAndCategory(t, db)

	_, err := db.Exec(`INSERT INTO tasks (id, event_id, kind, name, start_date, end_date, category_id, created_at, updated_at)
		VALUES ('m1', 'e1', 'manual', 'Prep', '2024-01-03T12:00:00Z', '2024-01-05T12:00:00Z', 'c1', 'now', 'now')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var days int
	require.NoError(t, db.QueryRow(`SELECT duration_days FROM tasks WHERE id = 'm1'`).Scan(&days))
	assert.Equal(t, 3, days)
}

func TestMigrate_DeletingEventCascades(t *testing.T) {
	db := openTestDB(t)
	seedEventAndCategory(t, db)
	_, err := db.Exec(`INSERT INTO tasks (id, event_id, kind, name, start_date, end_date, item_id, created_at, updated_at)
		VALUES ('t1', 'e1', 'catalog', 'Ceremony', '2024-01-03T12:00:00Z', '2024-01-03T12:00:00Z', 'i1', 'now', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM events WHERE id = 'e1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM event_items`).Scan(&n))
	assert.Zero(t, n)
}
