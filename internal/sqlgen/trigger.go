package sqlgen

import (
	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/sqlgen/sqldsl"
)

// DeleteFunctionStatement builds the trigger function that cascades a
// child-row delete to the parent table. It runs BEFORE DELETE on the child
// and returns the old row so the child delete proceeds.
func DeleteFunctionStatement(spec lineage.Spec) string {
	del := sqldsl.DeleteStmt{
		Table: sqldsl.Ident(spec.ParentTable),
		Where: sqldsl.Eq{
			Left:  sqldsl.Ident("id"),
			Right: sqldsl.OldRef(spec.ForeignKeyColumn()),
		},
	}
	return sqldsl.Sqlf(`
		CREATE OR REPLACE FUNCTION %s() RETURNS trigger AS $$
		BEGIN
		    %s;
		    RETURN OLD;
		END;
		$$ LANGUAGE plpgsql`,
		sqldsl.Ident(spec.DeleteFunctionName()).SQL(),
		del.SQL(),
	)
}

// DeleteTriggerStatement builds the trigger binding the delete function to
// the child table's delete event.
func DeleteTriggerStatement(spec lineage.Spec) string {
	return "CREATE TRIGGER " + sqldsl.Ident(spec.DeleteTriggerName()).SQL() +
		" BEFORE DELETE ON " + sqldsl.Ident(spec.ChildTable).SQL() +
		" FOR EACH ROW EXECUTE PROCEDURE " + sqldsl.Ident(spec.DeleteFunctionName()).SQL() + "()"
}

// AddDiscriminatorStatement builds the ALTER TABLE statement adding the
// discriminator column to the parent table. The compiler only issues it
// when introspection shows the column missing; the column is shared across
// all children of the same parent.
func AddDiscriminatorStatement(spec lineage.Spec) string {
	return "ALTER TABLE " + sqldsl.Ident(spec.ParentTable).SQL() +
		" ADD COLUMN " + sqldsl.Ident(spec.DiscriminatorColumn()).SQL() +
		" " + ddlTypes[lineage.String]
}
