// Package lineage models two-level class-hierarchy inheritance (MTI) over a
// pair of existing PostgreSQL tables and names the schema objects that make
// it work.
//
// An inheritance mapping is described by a Spec: a parent ("supertable") and
// a child table, the logical type names of each, and a handful of optional
// overrides. Compiling a Spec (see pkg/compiler) synthesizes nine
// interdependent schema objects so that ordinary single-table CRUD issued
// against one view transparently fans out into the two physical tables:
//
//  1. a discriminator column on the parent, recording each row's child type
//  2. a view joining parent and child, filtered by the discriminator
//  3. a composite row-shape type mirroring the view's columns
//  4. a row-fetch function used by the insert rule to materialize results
//  5. an INSERT rewrite rule (parent insert before child insert)
//  6. an UPDATE rewrite rule (child update before parent update)
//  7. a DELETE rewrite rule (child delete only; rules allow one statement)
//  8. a trigger function cascading the parent delete
//  9. a BEFORE DELETE trigger binding that function to the child table
//
// This package holds the data model only. SQL generation lives in
// internal/sqlgen, column introspection in pkg/inspect, and orchestration in
// pkg/compiler.
package lineage
