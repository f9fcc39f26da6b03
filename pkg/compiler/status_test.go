package compiler

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectProbe(mock sqlmock.Sqlmock, pattern string, exists bool, args ...driver.Value) {
	e := mock.ExpectQuery(pattern)
	if len(args) > 0 {
		e.WithArgs(args...)
	}
	e.WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestStatus_Complete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	expectProbe(mock, "information_schema.columns", true, "people", "person_type")
	expectProbe(mock, "pg_class", true, "mti_employees")
	expectProbe(mock, "pg_type", true, "mti_employees_type")
	expectProbe(mock, "pg_proc", true, "GetInsertedPerson")
	expectProbe(mock, "pg_rewrite", true, "mti_employees_ins", "mti_employees")
	expectProbe(mock, "pg_rewrite", true, "mti_employees_upd", "mti_employees")
	expectProbe(mock, "pg_rewrite", true, "mti_employees_del", "mti_employees")
	expectProbe(mock, "pg_proc", true, "mti_employees_del_function")
	expectProbe(mock, "pg_trigger", true, "mti_employees_del_trigger", "employees")

	status, err := New(db).Status(context.Background(), testSpec())
	require.NoError(t, err)
	assert.True(t, status.Complete())
	assert.False(t, status.Empty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatus_EmptyIgnoresDiscriminator(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// After a default drop the shared discriminator column remains; the
	// schema still counts as empty for this child.
	expectProbe(mock, "information_schema.columns", true)
	expectProbe(mock, "pg_class", false)
	expectProbe(mock, "pg_type", false)
	expectProbe(mock, "pg_proc", false)
	expectProbe(mock, "pg_rewrite", false)
	expectProbe(mock, "pg_rewrite", false)
	expectProbe(mock, "pg_rewrite", false)
	expectProbe(mock, "pg_proc", false)
	expectProbe(mock, "pg_trigger", false)

	status, err := New(db).Status(context.Background(), testSpec())
	require.NoError(t, err)
	assert.True(t, status.Empty())
	assert.False(t, status.Complete())
}

func TestStatus_Partial(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// A create that failed partway leaves the early objects in place.
	expectProbe(mock, "information_schema.columns", true)
	expectProbe(mock, "pg_class", true)
	expectProbe(mock, "pg_type", true)
	expectProbe(mock, "pg_proc", false)
	expectProbe(mock, "pg_rewrite", false)
	expectProbe(mock, "pg_rewrite", false)
	expectProbe(mock, "pg_rewrite", false)
	expectProbe(mock, "pg_proc", false)
	expectProbe(mock, "pg_trigger", false)

	status, err := New(db).Status(context.Background(), testSpec())
	require.NoError(t, err)
	assert.False(t, status.Complete())
	assert.False(t, status.Empty())
	assert.True(t, status.View)
	assert.True(t, status.RowType)
	assert.False(t, status.FetchFunction)
}
