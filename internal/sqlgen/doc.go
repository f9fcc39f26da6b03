// Package sqlgen generates the PostgreSQL statements that implement one
// multi-table inheritance mapping.
//
// Every builder is a pure function from a lineage.Spec (plus introspected
// column lists where needed) to a single statement string. The compiler in
// pkg/compiler decides ordering and execution; nothing in this package
// touches a database.
//
// Statements are assembled through the sqldsl subpackage so identifiers and
// literals are escaped at render time rather than interpolated.
//
// The fixed statement orderings inside the rewrite rules are deliberate and
// must not be changed:
//
//   - insert rule: parent insert before child insert. The calling layer may
//     run a post-insert callback that updates the row; with the child row
//     written first that callback would read a stale parent object.
//   - update rule: child update before parent update, the reverse of insert.
//   - delete: the rule deletes only the child row, because a view rewrite
//     rule executes one statement per event. A BEFORE DELETE trigger on the
//     child table cascades the parent delete.
package sqlgen
