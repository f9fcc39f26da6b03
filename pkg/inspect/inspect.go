// Package inspect reads table column lists from a PostgreSQL catalog.
//
// Results are never cached: the schema mutates between create and drop
// calls (the discriminator column in particular), so every compiler
// invocation introspects fresh.
package inspect

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pthm/lineage"
)

// Querier is the minimal interface needed for introspection.
// Implemented by *sql.DB, *sql.Tx, and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Inspector reads column metadata through an injected Querier.
type Inspector struct {
	db Querier
}

// New creates an Inspector over the given store.
func New(db Querier) *Inspector {
	return &Inspector{db: db}
}

// TableExists reports whether the named table exists in the current schema.
func (i *Inspector) TableExists(ctx context.Context, table string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)`

	var exists bool
	if err := i.db.QueryRowContext(ctx, q, table).Scan(&exists); err != nil {
		return false, &lineage.IntrospectError{Table: table, Err: err}
	}
	return exists, nil
}

// Columns returns the table's columns in physical (ordinal) order. That
// order determines the column order baked into every generated statement,
// so it must not be rearranged. A table that does not exist fails with
// lineage.IntrospectError.
func (i *Inspector) Columns(ctx context.Context, table string) (lineage.Columns, error) {
	exists, err := i.TableExists(ctx, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &lineage.IntrospectError{Table: table}
	}

	const q = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`

	rows, err := i.db.QueryContext(ctx, q, table)
	if err != nil {
		return nil, &lineage.IntrospectError{Table: table, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var cols lineage.Columns
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return nil, &lineage.IntrospectError{Table: table, Err: fmt.Errorf("scanning column: %w", err)}
		}
		cols = append(cols, lineage.Column{Name: name, Type: semanticType(dataType)})
	}
	if err := rows.Err(); err != nil {
		return nil, &lineage.IntrospectError{Table: table, Err: err}
	}
	return cols, nil
}

// semanticType maps a catalog data_type onto the semantic column types the
// statement builders understand. Unrecognized types pass through raw; the
// row-shape type builder rejects them explicitly rather than guessing.
func semanticType(dataType string) lineage.ColumnType {
	switch dataType {
	case "boolean":
		return lineage.Boolean
	case "smallint", "integer":
		return lineage.Integer
	case "bigint":
		return lineage.BigInt
	case "real", "double precision":
		return lineage.Float
	case "numeric":
		return lineage.Decimal
	case "character varying", "character":
		return lineage.String
	case "text":
		return lineage.Text
	case "timestamp without time zone", "timestamp with time zone":
		return lineage.Datetime
	case "date":
		return lineage.Date
	case "time without time zone", "time with time zone":
		return lineage.Time
	case "bytea":
		return lineage.Binary
	default:
		return lineage.ColumnType(dataType)
	}
}
