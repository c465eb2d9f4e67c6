package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/eventboard/internal/db"
)

// NewTestDB opens a fresh in-memory eventboard database with the event,
// catalog, task and crew tables migrated. Each test gets its own.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open eventboard test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("close eventboard test db: %v", err)
		}
	})
	return database
}

// NewTestUoW wraps database for services that run their writes in a tx.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
