package compiler

import (
	"context"
	"database/sql"
)

// Execer is the minimal interface needed for compiling an inheritance
// mapping. Implemented by *sql.DB, *sql.Tx, and *sql.Conn. The compiler
// performs no transaction management of its own; wrap the call in a
// transaction (and a migration lock) externally when atomicity or
// serialization against concurrent schema changes is needed.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
