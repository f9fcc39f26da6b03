package inspect

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/lineage"
)

func TestColumns_OrdinalOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("people").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("people").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}).
			AddRow("id", "integer").
			AddRow("person_type", "character varying").
			AddRow("name", "character varying").
			AddRow("born_at", "timestamp without time zone").
			AddRow("bio", "text").
			AddRow("active", "boolean"))

	cols, err := New(db).Columns(context.Background(), "people")
	require.NoError(t, err)

	want := lineage.Columns{
		{Name: "id", Type: lineage.Integer},
		{Name: "person_type", Type: lineage.String},
		{Name: "name", Type: lineage.String},
		{Name: "born_at", Type: lineage.Datetime},
		{Name: "bio", Type: lineage.Text},
		{Name: "active", Type: lineage.Boolean},
	}
	assert.Equal(t, want, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumns_MissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = New(db).Columns(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, lineage.IsIntrospectErr(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestColumns_UnknownTypePassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("docs").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("docs").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}).
			AddRow("id", "integer").
			AddRow("payload", "jsonb"))

	cols, err := New(db).Columns(context.Background(), "docs")
	require.NoError(t, err)
	assert.Equal(t, lineage.ColumnType("jsonb"), cols[1].Type)
}

func TestTableExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("people").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := New(db).TableExists(context.Background(), "people")
	require.NoError(t, err)
	assert.True(t, exists)
}
