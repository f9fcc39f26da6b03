package sqlgen

import (
	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/sqlgen/sqldsl"
)

// InsertRuleStatement builds the INSTEAD rule on the view's INSERT event.
//
// The rule performs the parent insert before the child insert; that order
// is a hard invariant (see the package doc). The parent row takes its id
// from the parent sequence and stores the child type in the discriminator
// column; the child row takes its id from its own sequence and links back
// through currval of the parent sequence. The RETURNING clause rebuilds
// the complete view row by calling the row-fetch function once per column,
// each call keyed by currval of the parent sequence.
func InsertRuleStatement(spec lineage.Spec, parent, child lineage.Columns) string {
	parentInsert := sqldsl.InsertStmt{Table: sqldsl.Ident(spec.ParentTable)}
	for _, c := range parent {
		parentInsert.Columns = append(parentInsert.Columns, sqldsl.Ident(c.Name))
		switch c.Name {
		case "id":
			parentInsert.Values = append(parentInsert.Values, sqldsl.NextVal(spec.Sequence()))
		case spec.DiscriminatorColumn():
			parentInsert.Values = append(parentInsert.Values, sqldsl.Lit(spec.ChildType))
		default:
			parentInsert.Values = append(parentInsert.Values, sqldsl.NewRef(c.Name))
		}
	}

	childInsert := sqldsl.InsertStmt{Table: sqldsl.Ident(spec.ChildTable)}
	for _, c := range child {
		childInsert.Columns = append(childInsert.Columns, sqldsl.Ident(c.Name))
		switch c.Name {
		case "id":
			childInsert.Values = append(childInsert.Values, sqldsl.NextVal(spec.ChildSequence()))
		case spec.ForeignKeyColumn():
			childInsert.Values = append(childInsert.Values, sqldsl.CurrVal(spec.Sequence()))
		default:
			childInsert.Values = append(childInsert.Values, sqldsl.NewRef(c.Name))
		}
	}

	// One fetch-function call per view column, each wrapped in a scalar
	// subselect: a set-returning call is not accepted directly in a
	// RETURNING list, but is fine in a subquery's select list.
	fetch := sqldsl.Scalar{Query: sqldsl.SelectStmt{
		Columns: []sqldsl.Expr{sqldsl.Call{
			Name: spec.FetchFunctionName(),
			Args: []sqldsl.Expr{sqldsl.CurrVal(spec.Sequence())},
		}},
	}}
	for _, c := range ViewColumns(spec, parent, child) {
		childInsert.Returning = append(childInsert.Returning, sqldsl.Field{Row: fetch, Name: c.Name})
	}

	return sqldsl.Sqlf(`
		CREATE OR REPLACE RULE %s AS ON INSERT TO %s DO INSTEAD (
		    %s;
		    %s
		)`,
		sqldsl.Ident(spec.InsertRuleName()).SQL(),
		sqldsl.Ident(spec.ViewName()).SQL(),
		parentInsert.SQL(),
		childInsert.SQL(),
	)
}

// UpdateRuleStatement builds the INSTEAD rule on the view's UPDATE event:
// child update before parent update, deliberately the reverse of insert.
// The child's id and foreign key, and the parent's id, are never updated.
func UpdateRuleStatement(spec lineage.Spec, parent, child lineage.Columns) string {
	childUpdate := sqldsl.UpdateStmt{
		Table: sqldsl.Ident(spec.ChildTable),
		Where: sqldsl.Eq{
			Left:  sqldsl.Ident(spec.ForeignKeyColumn()),
			Right: sqldsl.OldRef("id"),
		},
	}
	for _, c := range child.Without("id", spec.ForeignKeyColumn()) {
		childUpdate.Set = append(childUpdate.Set, sqldsl.Assignment{
			Column: sqldsl.Ident(c.Name),
			Value:  sqldsl.NewRef(c.Name),
		})
	}

	parentUpdate := sqldsl.UpdateStmt{
		Table: sqldsl.Ident(spec.ParentTable),
		Where: sqldsl.Eq{
			Left:  sqldsl.Ident("id"),
			Right: sqldsl.OldRef("id"),
		},
	}
	for _, c := range parent.Without("id") {
		parentUpdate.Set = append(parentUpdate.Set, sqldsl.Assignment{
			Column: sqldsl.Ident(c.Name),
			Value:  sqldsl.NewRef(c.Name),
		})
	}

	// A child table carrying nothing but its id and foreign key has no
	// updatable columns; SET with an empty list is not valid SQL.
	if len(childUpdate.Set) == 0 {
		return sqldsl.Sqlf(`
			CREATE OR REPLACE RULE %s AS ON UPDATE TO %s DO INSTEAD (
			    %s
			)`,
			sqldsl.Ident(spec.UpdateRuleName()).SQL(),
			sqldsl.Ident(spec.ViewName()).SQL(),
			parentUpdate.SQL(),
		)
	}

	return sqldsl.Sqlf(`
		CREATE OR REPLACE RULE %s AS ON UPDATE TO %s DO INSTEAD (
		    %s;
		    %s
		)`,
		sqldsl.Ident(spec.UpdateRuleName()).SQL(),
		sqldsl.Ident(spec.ViewName()).SQL(),
		childUpdate.SQL(),
		parentUpdate.SQL(),
	)
}

// DeleteRuleStatement builds the INSTEAD rule on the view's DELETE event.
// A view rewrite rule executes one statement per event, so only the child
// delete lives here; the parent delete cascades through the trigger built
// by DeleteFunctionStatement and DeleteTriggerStatement.
func DeleteRuleStatement(spec lineage.Spec) string {
	del := sqldsl.DeleteStmt{
		Table: sqldsl.Ident(spec.ChildTable),
		Where: sqldsl.Eq{
			Left:  sqldsl.Ident(spec.ForeignKeyColumn()),
			Right: sqldsl.OldRef("id"),
		},
	}
	return "CREATE OR REPLACE RULE " + sqldsl.Ident(spec.DeleteRuleName()).SQL() +
		" AS ON DELETE TO " + sqldsl.Ident(spec.ViewName()).SQL() +
		" DO INSTEAD " + del.SQL()
}
