package compiler

import (
	"context"
	"fmt"

	"github.com/pthm/lineage"
)

// Status reports which of a spec's generated objects currently exist.
// Useful for health checks and for diagnosing the residue of a create or
// drop that failed partway through.
type Status struct {
	Discriminator  bool
	View           bool
	RowType        bool
	FetchFunction  bool
	InsertRule     bool
	UpdateRule     bool
	DeleteRule     bool
	DeleteFunction bool
	DeleteTrigger  bool
}

// Complete reports whether every generated object exists.
func (s *Status) Complete() bool {
	return s.Discriminator && s.View && s.RowType && s.FetchFunction &&
		s.InsertRule && s.UpdateRule && s.DeleteRule &&
		s.DeleteFunction && s.DeleteTrigger
}

// Empty reports whether no generated object exists, the discriminator
// column excepted: it is shared with sibling children and normally
// survives a drop.
func (s *Status) Empty() bool {
	return !s.View && !s.RowType && !s.FetchFunction &&
		!s.InsertRule && !s.UpdateRule && !s.DeleteRule &&
		!s.DeleteFunction && !s.DeleteTrigger
}

// Status probes the catalog for each object the spec names.
func (c *Compiler) Status(ctx context.Context, spec lineage.Spec) (*Status, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	out := &Status{}
	probes := []struct {
		name   string
		target *bool
		query  string
		args   []any
	}{
		{
			"discriminator column", &out.Discriminator,
			`SELECT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
			)`,
			[]any{spec.ParentTable, spec.DiscriminatorColumn()},
		},
		{
			"view", &out.View,
			`SELECT EXISTS (
				SELECT 1 FROM pg_class c
				JOIN pg_namespace n ON n.oid = c.relnamespace
				WHERE c.relname = $1 AND n.nspname = current_schema() AND c.relkind = 'v'
			)`,
			[]any{spec.ViewName()},
		},
		{
			"row type", &out.RowType,
			`SELECT EXISTS (
				SELECT 1 FROM pg_type t
				JOIN pg_namespace n ON n.oid = t.typnamespace
				WHERE t.typname = $1 AND n.nspname = current_schema()
			)`,
			[]any{spec.TypeName()},
		},
		{
			"row fetch function", &out.FetchFunction,
			`SELECT EXISTS (
				SELECT 1 FROM pg_proc p
				JOIN pg_namespace n ON n.oid = p.pronamespace
				WHERE p.proname = $1 AND n.nspname = current_schema()
			)`,
			[]any{spec.FetchFunctionName()},
		},
		{
			"insert rule", &out.InsertRule,
			ruleProbe, []any{spec.InsertRuleName(), spec.ViewName()},
		},
		{
			"update rule", &out.UpdateRule,
			ruleProbe, []any{spec.UpdateRuleName(), spec.ViewName()},
		},
		{
			"delete rule", &out.DeleteRule,
			ruleProbe, []any{spec.DeleteRuleName(), spec.ViewName()},
		},
		{
			"delete trigger function", &out.DeleteFunction,
			`SELECT EXISTS (
				SELECT 1 FROM pg_proc p
				JOIN pg_namespace n ON n.oid = p.pronamespace
				WHERE p.proname = $1 AND n.nspname = current_schema()
			)`,
			[]any{spec.DeleteFunctionName()},
		},
		{
			"delete trigger", &out.DeleteTrigger,
			`SELECT EXISTS (
				SELECT 1 FROM pg_trigger t
				JOIN pg_class c ON c.oid = t.tgrelid
				JOIN pg_namespace n ON n.oid = c.relnamespace
				WHERE t.tgname = $1 AND c.relname = $2 AND n.nspname = current_schema()
			)`,
			[]any{spec.DeleteTriggerName(), spec.ChildTable},
		},
	}

	for _, p := range probes {
		if err := c.db.QueryRowContext(ctx, p.query, p.args...).Scan(p.target); err != nil {
			return nil, fmt.Errorf("checking %s: %w", p.name, err)
		}
	}
	return out, nil
}

const ruleProbe = `SELECT EXISTS (
	SELECT 1 FROM pg_rewrite r
	JOIN pg_class c ON c.oid = r.ev_class
	JOIN pg_namespace n ON n.oid = c.relnamespace
	WHERE r.rulename = $1 AND c.relname = $2 AND n.nspname = current_schema()
)`
