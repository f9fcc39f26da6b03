package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/lineage"
	"github.com/pthm/lineage/pkg/compiler"
	"github.com/pthm/lineage/test/testutil"
)

func employeeSpec() lineage.Spec {
	return lineage.Spec{
		ParentTable: "people",
		ChildTable:  "employees",
		ParentType:  "Person",
		ChildType:   "Employee",
		TablePrefix: "mti_",
	}
}

func studentSpec() lineage.Spec {
	return lineage.Spec{
		ParentTable: "people",
		ChildTable:  "students",
		ParentType:  "Person",
		ChildType:   "Student",
		TablePrefix: "mti_",
	}
}

func TestCreate_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	c := compiler.New(db)

	require.NoError(t, c.Create(ctx, employeeSpec()))

	s, err := c.Status(ctx, employeeSpec())
	require.NoError(t, err)
	assert.True(t, s.Complete(), "all generated objects should exist: %+v", s)

	// The discriminator column landed on the parent table
	var disc bool
	err = db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'people' AND column_name = 'person_type'
		)`).Scan(&disc)
	require.NoError(t, err)
	assert.True(t, disc)
}

func TestInsertThroughView_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	require.NoError(t, compiler.New(db).Create(ctx, employeeSpec()))

	// INSERT against the view fans out to both tables; RETURNING reads
	// the freshly combined row back.
	var id int
	var name string
	var salary int
	err := db.QueryRowContext(ctx, `
		INSERT INTO mti_employees (name, salary, title)
		VALUES ('Alice', 100, 'Engineer')
		RETURNING id, name, salary`).Scan(&id, &name, &salary)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, 100, salary)

	// Parent row carries the discriminator value
	var discValue string
	err = db.QueryRowContext(ctx, `SELECT person_type FROM people WHERE id = $1`, id).Scan(&discValue)
	require.NoError(t, err)
	assert.Equal(t, "Employee", discValue)

	// Child row references the parent
	var childCount int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE person_id = $1`, id).Scan(&childCount)
	require.NoError(t, err)
	assert.Equal(t, 1, childCount)

	// The combined row reads back through the view
	var title string
	err = db.QueryRowContext(ctx, `SELECT title FROM mti_employees WHERE id = $1`, id).Scan(&title)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", title)
}

func TestUpdateThroughView_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	require.NoError(t, compiler.New(db).Create(ctx, employeeSpec()))

	var id int
	err := db.QueryRowContext(ctx, `
		INSERT INTO mti_employees (name, salary, title)
		VALUES ('Bob', 90, 'Analyst')
		RETURNING id`).Scan(&id)
	require.NoError(t, err)

	// A single UPDATE touching columns from both tables
	_, err = db.ExecContext(ctx, `
		UPDATE mti_employees SET name = 'Robert', salary = 120 WHERE id = $1`, id)
	require.NoError(t, err)

	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM people WHERE id = $1`, id).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Robert", name)

	var salary int
	err = db.QueryRowContext(ctx, `SELECT salary FROM employees WHERE person_id = $1`, id).Scan(&salary)
	require.NoError(t, err)
	assert.Equal(t, 120, salary)
}

func TestDeleteThroughView_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	require.NoError(t, compiler.New(db).Create(ctx, employeeSpec()))

	var id int
	err := db.QueryRowContext(ctx, `
		INSERT INTO mti_employees (name, salary, title)
		VALUES ('Carol', 110, 'Manager')
		RETURNING id`).Scan(&id)
	require.NoError(t, err)

	// DELETE against the view removes the child row; the trigger cascades
	// to the parent.
	_, err = db.ExecContext(ctx, `DELETE FROM mti_employees WHERE id = $1`, id)
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE person_id = $1`, id).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "child row should be gone")

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people WHERE id = $1`, id).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "parent row should be gone")
}

func TestSiblingChildren_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	c := compiler.New(db)

	// Two children of the same parent share the discriminator column; the
	// second create must not try to add it again.
	require.NoError(t, c.Create(ctx, employeeSpec()))
	require.NoError(t, c.Create(ctx, studentSpec()))

	_, err := db.ExecContext(ctx, `
		INSERT INTO mti_employees (name, salary, title) VALUES ('Dave', 100, 'Engineer')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		INSERT INTO mti_students (name, grade) VALUES ('Eve', 12)`)
	require.NoError(t, err)

	// Each view only shows rows with its own discriminator value
	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mti_employees`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mti_students`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Dropping one sibling leaves the other working
	require.NoError(t, c.Drop(ctx, studentSpec()))

	s, err := c.Status(ctx, employeeSpec())
	require.NoError(t, err)
	assert.True(t, s.Complete())

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mti_employees`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDrop_RoundTrip_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	c := compiler.New(db)
	spec := employeeSpec()

	require.NoError(t, c.Create(ctx, spec))
	require.NoError(t, c.Drop(ctx, spec))

	s, err := c.Status(ctx, spec)
	require.NoError(t, err)
	assert.True(t, s.Empty(), "all generated objects should be gone: %+v", s)
	assert.True(t, s.Discriminator, "discriminator column survives a default drop")

	// Create works again after a drop
	require.NoError(t, c.Create(ctx, spec))
	s, err = c.Status(ctx, spec)
	require.NoError(t, err)
	assert.True(t, s.Complete())

	// Dropping the last child can take the discriminator with it
	require.NoError(t, c.DropWithOptions(ctx, spec, compiler.DropOptions{DropDiscriminator: true}))
	s, err = c.Status(ctx, spec)
	require.NoError(t, err)
	assert.True(t, s.Empty())
	assert.False(t, s.Discriminator)
}

func TestCreate_MissingTables_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.EmptyDB(t)
	ctx := context.Background()

	err := compiler.New(db).Create(ctx, employeeSpec())
	require.Error(t, err)
	assert.True(t, lineage.IsIntrospectErr(err))
}

func TestDrop_ToleratesPartialState_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	c := compiler.New(db)

	// Nothing was ever created; drop must still succeed.
	require.NoError(t, c.Drop(ctx, employeeSpec()))

	// Simulate a create that stopped after the view step, then recover.
	require.NoError(t, c.Create(ctx, employeeSpec()))
	_, err := db.ExecContext(ctx, `DROP TRIGGER "mti_employees_del_trigger" ON "employees"`)
	require.NoError(t, err)
	require.NoError(t, c.Drop(ctx, employeeSpec()))

	s, err := c.Status(ctx, employeeSpec())
	require.NoError(t, err)
	assert.True(t, s.Empty())
}
