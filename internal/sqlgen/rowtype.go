package sqlgen

import (
	"strings"

	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/sqlgen/sqldsl"
)

// RowTypeStatement builds the CREATE TYPE statement declaring the view's
// row shape. Its column list and order exactly match the view's; the
// insert rewrite rule needs this declared shape for its RETURNING clause.
func RowTypeStatement(spec lineage.Spec, parent, child lineage.Columns) (string, error) {
	cols := ViewColumns(spec, parent, child)
	decls := make([]string, len(cols))
	for i, c := range cols {
		lit, err := DDLType(c)
		if err != nil {
			return "", err
		}
		decls[i] = sqldsl.Ident(c.Name).SQL() + " " + lit
	}
	return "CREATE TYPE " + sqldsl.Ident(spec.TypeName()).SQL() +
		" AS (" + strings.Join(decls, ", ") + ")", nil
}

// FetchFunctionStatement builds the set-returning row-fetch function that
// selects a view row by primary key. A rewritten multi-table insert cannot
// RETURNING a cross-table row directly; the insert rule calls this after
// the fact to reconstruct it.
func FetchFunctionStatement(spec lineage.Spec) string {
	body := sqldsl.SelectStmt{
		Columns: []sqldsl.Expr{sqldsl.Raw("*")},
		From:    []sqldsl.Ident{sqldsl.Ident(spec.ViewName())},
		Where: sqldsl.Eq{
			Left:  sqldsl.Ident("id"),
			Right: sqldsl.Raw("$1"),
		},
	}
	return sqldsl.Sqlf(`
		CREATE OR REPLACE FUNCTION %s(integer) RETURNS SETOF %s AS $$
		    %s
		$$ LANGUAGE sql`,
		sqldsl.Ident(spec.FetchFunctionName()).SQL(),
		sqldsl.Ident(spec.TypeName()).SQL(),
		body.SQL(),
	)
}
