package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the event, catalog, task and crew repositories
// are written against. A gesture that touches several tables gets a *sql.Tx
// from WithinTx; one-off reads use the *sql.DB directly.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
