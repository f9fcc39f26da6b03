package sqlgen

import (
	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/sqlgen/sqldsl"
)

// Drop statements, one per created object. Every one uses IF EXISTS so
// that dropping a partially-created set of objects succeeds; a failed
// create can always be recovered by calling drop with the same spec.

// DropDeleteTriggerStatement drops the child table's delete trigger.
func DropDeleteTriggerStatement(spec lineage.Spec) string {
	return "DROP TRIGGER IF EXISTS " + sqldsl.Ident(spec.DeleteTriggerName()).SQL() +
		" ON " + sqldsl.Ident(spec.ChildTable).SQL()
}

// DropDeleteFunctionStatement drops the cascade trigger function.
func DropDeleteFunctionStatement(spec lineage.Spec) string {
	return "DROP FUNCTION IF EXISTS " + sqldsl.Ident(spec.DeleteFunctionName()).SQL() + "()"
}

// DropDeleteRuleStatement drops the DELETE rewrite rule.
func DropDeleteRuleStatement(spec lineage.Spec) string {
	return dropRule(spec.DeleteRuleName(), spec.ViewName())
}

// DropUpdateRuleStatement drops the UPDATE rewrite rule.
func DropUpdateRuleStatement(spec lineage.Spec) string {
	return dropRule(spec.UpdateRuleName(), spec.ViewName())
}

// DropInsertRuleStatement drops the INSERT rewrite rule.
func DropInsertRuleStatement(spec lineage.Spec) string {
	return dropRule(spec.InsertRuleName(), spec.ViewName())
}

// DropFetchFunctionStatement drops the row-fetch function.
func DropFetchFunctionStatement(spec lineage.Spec) string {
	return "DROP FUNCTION IF EXISTS " + sqldsl.Ident(spec.FetchFunctionName()).SQL() + "(integer)"
}

// DropRowTypeStatement drops the composite row-shape type. It must run
// after the row-fetch function is gone; a type cannot be dropped while a
// function signature references it.
func DropRowTypeStatement(spec lineage.Spec) string {
	return "DROP TYPE IF EXISTS " + sqldsl.Ident(spec.TypeName()).SQL()
}

// DropViewStatement drops the view. Rules on the view go down with it.
func DropViewStatement(spec lineage.Spec) string {
	return "DROP VIEW IF EXISTS " + sqldsl.Ident(spec.ViewName()).SQL()
}

// DropDiscriminatorStatement removes the discriminator column from the
// parent table. The compiler only issues it when the caller asserts this
// child is the last one; sibling children share the column.
func DropDiscriminatorStatement(spec lineage.Spec) string {
	return "ALTER TABLE " + sqldsl.Ident(spec.ParentTable).SQL() +
		" DROP COLUMN IF EXISTS " + sqldsl.Ident(spec.DiscriminatorColumn()).SQL()
}

func dropRule(rule, view string) string {
	return "DROP RULE IF EXISTS " + sqldsl.Ident(rule).SQL() +
		" ON " + sqldsl.Ident(view).SQL()
}
