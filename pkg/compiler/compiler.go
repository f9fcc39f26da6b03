// Package compiler orchestrates the creation and teardown of the schema
// objects that implement one multi-table inheritance mapping.
//
// The compiler holds no state between calls and re-introspects the schema
// on every invocation. Execution is strictly sequential: each statement is
// built, issued, and awaited before the next is built, because later
// statements depend on earlier ones having succeeded (the row-fetch
// function references the row-shape type, the insert rule references the
// function, and so on). A failed statement halts the sequence immediately;
// no step is retried and no partial cleanup is attempted. A failed Create
// may leave a subset of objects behind — Drop with the same spec is safe
// against a partially-created set, since every drop statement tolerates a
// missing object.
package compiler

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/sqlgen"
	"github.com/pthm/lineage/pkg/inspect"
)

// CreateOptions controls Create behavior.
type CreateOptions struct {
	// DryRun writes the ordered statements to the given writer instead of
	// executing them. Introspection still runs against the store.
	DryRun io.Writer
}

// DropOptions controls Drop behavior.
type DropOptions struct {
	// DryRun writes the ordered statements instead of executing them.
	DryRun io.Writer

	// DropDiscriminator removes the parent's discriminator column. The
	// column is shared across all children of the same parent, so it is
	// only dropped when the caller asserts this child is the last one.
	DropDiscriminator bool
}

// Compiler builds and executes the statement sequence for one spec.
type Compiler struct {
	db  Execer
	ins *inspect.Inspector
	log zerolog.Logger
}

// New creates a Compiler over the given store.
func New(db Execer) *Compiler {
	return &Compiler{db: db, ins: inspect.New(db), log: zerolog.Nop()}
}

// WithLogger returns a copy of the compiler that logs each step to log.
func (c *Compiler) WithLogger(log zerolog.Logger) *Compiler {
	out := *c
	out.log = log
	return &out
}

// step is one buildable, executable statement in a create/drop sequence.
type step struct {
	name  string
	build func() (string, error)
}

func stmt(name, s string) step {
	return step{name: name, build: func() (string, error) { return s, nil }}
}

// Create synthesizes the full object set for the spec, in dependency
// order: discriminator column (idempotent), view, row-shape type,
// row-fetch function, insert rule, update rule, delete rule, delete
// trigger function, delete trigger.
func (c *Compiler) Create(ctx context.Context, spec lineage.Spec) error {
	return c.CreateWithOptions(ctx, spec, CreateOptions{})
}

// CreateWithOptions is Create with explicit options.
func (c *Compiler) CreateWithOptions(ctx context.Context, spec lineage.Spec, opts CreateOptions) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	parent, err := c.ins.Columns(ctx, spec.ParentTable)
	if err != nil {
		return err
	}
	child, err := c.ins.Columns(ctx, spec.ChildTable)
	if err != nil {
		return err
	}
	if !child.Has(spec.ForeignKeyColumn()) {
		return &lineage.SpecError{
			Field:  "ForeignKey",
			Reason: fmt.Sprintf("column %q does not exist on table %q", spec.ForeignKeyColumn(), spec.ChildTable),
		}
	}

	// The discriminator column is shared across sibling children; a prior
	// sibling's create may have added it already.
	if !parent.Has(spec.DiscriminatorColumn()) {
		if err := c.run(ctx, stmt("add discriminator column", sqlgen.AddDiscriminatorStatement(spec)), opts.DryRun); err != nil {
			return err
		}
		if opts.DryRun != nil {
			// Nothing was executed; account for the column locally. It
			// would land in last physical position.
			parent = append(parent, lineage.Column{Name: spec.DiscriminatorColumn(), Type: lineage.String})
		} else {
			if parent, err = c.ins.Columns(ctx, spec.ParentTable); err != nil {
				return err
			}
		}
	}

	for _, s := range createSteps(spec, parent, child) {
		if err := c.run(ctx, s, opts.DryRun); err != nil {
			return err
		}
	}
	return nil
}

// createSteps builds the statement sequence that follows the discriminator
// step, in dependency order.
func createSteps(spec lineage.Spec, parent, child lineage.Columns) []step {
	return []step{
		stmt("create view", sqlgen.ViewStatement(spec, parent, child)),
		{name: "create row type", build: func() (string, error) {
			return sqlgen.RowTypeStatement(spec, parent, child)
		}},
		stmt("create row fetch function", sqlgen.FetchFunctionStatement(spec)),
		stmt("create insert rule", sqlgen.InsertRuleStatement(spec, parent, child)),
		stmt("create update rule", sqlgen.UpdateRuleStatement(spec, parent, child)),
		stmt("create delete rule", sqlgen.DeleteRuleStatement(spec)),
		stmt("create delete trigger function", sqlgen.DeleteFunctionStatement(spec)),
		stmt("create delete trigger", sqlgen.DeleteTriggerStatement(spec)),
	}
}

// Drop tears the object set down in the exact inverse of Create's order:
// trigger, trigger function, delete rule, update rule, insert rule, fetch
// function, row-shape type, view. The order is forced by object
// dependencies (a type cannot be dropped while the fetch function
// references it). The discriminator column is left in place unless
// DropOptions says otherwise.
func (c *Compiler) Drop(ctx context.Context, spec lineage.Spec) error {
	return c.DropWithOptions(ctx, spec, DropOptions{})
}

// DropWithOptions is Drop with explicit options.
func (c *Compiler) DropWithOptions(ctx context.Context, spec lineage.Spec, opts DropOptions) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	// DROP RULE has no way to tolerate a missing view, IF EXISTS or not;
	// after a create that failed before the view step, the rule drops must
	// be skipped outright.
	viewExists, err := c.viewExists(ctx, spec.ViewName())
	if err != nil {
		return err
	}

	steps := []step{
		stmt("drop delete trigger", sqlgen.DropDeleteTriggerStatement(spec)),
		stmt("drop delete trigger function", sqlgen.DropDeleteFunctionStatement(spec)),
	}
	if viewExists {
		steps = append(steps,
			stmt("drop delete rule", sqlgen.DropDeleteRuleStatement(spec)),
			stmt("drop update rule", sqlgen.DropUpdateRuleStatement(spec)),
			stmt("drop insert rule", sqlgen.DropInsertRuleStatement(spec)),
		)
	}
	steps = append(steps,
		stmt("drop row fetch function", sqlgen.DropFetchFunctionStatement(spec)),
		stmt("drop row type", sqlgen.DropRowTypeStatement(spec)),
		stmt("drop view", sqlgen.DropViewStatement(spec)),
	)
	if opts.DropDiscriminator {
		steps = append(steps, stmt("drop discriminator column", sqlgen.DropDiscriminatorStatement(spec)))
	}

	for _, s := range steps {
		if err := c.run(ctx, s, opts.DryRun); err != nil {
			return err
		}
	}
	return nil
}

// run builds and executes (or, in dry-run mode, prints) a single step.
func (c *Compiler) run(ctx context.Context, s step, dryRun io.Writer) error {
	text, err := s.build()
	if err != nil {
		return err
	}
	if dryRun != nil {
		_, _ = fmt.Fprintf(dryRun, "-- %s\n%s;\n\n", s.name, text)
		return nil
	}
	c.log.Debug().Str("step", s.name).Msg("executing statement")
	if _, err := c.db.ExecContext(ctx, text); err != nil {
		return &lineage.SQLError{Step: s.name, Statement: text, Err: err}
	}
	return nil
}

func (c *Compiler) viewExists(ctx context.Context, view string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM pg_class c
			JOIN pg_namespace n ON n.oid = c.relnamespace
			WHERE c.relname = $1
			AND n.nspname = current_schema()
			AND c.relkind = 'v'
		)`
	var exists bool
	if err := c.db.QueryRowContext(ctx, q, view).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking view %q: %w", view, err)
	}
	return exists, nil
}
