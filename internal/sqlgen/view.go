package sqlgen

import (
	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/sqlgen/sqldsl"
)

// ViewColumns returns the column list of the generated view: all parent
// columns followed by the child columns minus the child's id and foreign
// key. Order follows the physical order of the inputs and is shared by the
// view, the row-shape type, and the insert rule's RETURNING list.
func ViewColumns(spec lineage.Spec, parent, child lineage.Columns) lineage.Columns {
	out := make(lineage.Columns, 0, len(parent)+len(child))
	out = append(out, parent...)
	out = append(out, child.Without("id", spec.ForeignKeyColumn())...)
	return out
}

// ViewStatement builds the CREATE OR REPLACE VIEW statement joining the
// parent and child tables. Parent columns are table-qualified to avoid
// collisions with same-named child columns.
func ViewStatement(spec lineage.Spec, parent, child lineage.Columns) string {
	selects := make([]sqldsl.Expr, 0, len(parent)+len(child))
	for _, c := range parent {
		selects = append(selects, sqldsl.Qualified{Table: spec.ParentTable, Column: c.Name})
	}
	for _, c := range child.Without("id", spec.ForeignKeyColumn()) {
		selects = append(selects, sqldsl.Qualified{Table: spec.ChildTable, Column: c.Name})
	}

	conds := sqldsl.And{
		sqldsl.Eq{
			Left:  sqldsl.Qualified{Table: spec.ParentTable, Column: "id"},
			Right: sqldsl.Qualified{Table: spec.ChildTable, Column: spec.ForeignKeyColumn()},
		},
		sqldsl.Eq{
			Left:  sqldsl.Qualified{Table: spec.ParentTable, Column: spec.DiscriminatorColumn()},
			Right: sqldsl.Lit(spec.ChildType),
		},
	}
	for _, extra := range spec.ExtraConditions {
		conds = append(conds, sqldsl.Raw(extra))
	}

	return sqldsl.Sqlf(`
		CREATE OR REPLACE VIEW %s AS
		SELECT %s
		FROM %s, %s
		WHERE %s`,
		sqldsl.Ident(spec.ViewName()).SQL(),
		sqldsl.List(selects),
		sqldsl.Ident(spec.ParentTable).SQL(),
		sqldsl.Ident(spec.ChildTable).SQL(),
		conds.SQL(),
	)
}
