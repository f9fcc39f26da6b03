package sqldsl

import "strings"

// Statement structs for the bodies of rewrite rules. Each renders one SQL
// statement without a trailing semicolon; the rule builders join and
// terminate them.

// Assignment is one SET clause entry of an update statement.
type Assignment struct {
	Column Ident
	Value  Expr
}

// SQL renders "col" = value.
func (a Assignment) SQL() string {
	return a.Column.SQL() + " = " + a.Value.SQL()
}

// InsertStmt is a single-table INSERT with explicit column and value
// lists and an optional RETURNING list.
type InsertStmt struct {
	Table     Ident
	Columns   []Ident
	Values    []Expr
	Returning []Expr
}

// SQL renders the statement.
func (s InsertStmt) SQL() string {
	cols := make([]Expr, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c
	}
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.Table.SQL())
	b.WriteString(" (")
	b.WriteString(List(cols))
	b.WriteString(") VALUES (")
	b.WriteString(List(s.Values))
	b.WriteString(")")
	if len(s.Returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(List(s.Returning))
	}
	return b.String()
}

// UpdateStmt is a single-table UPDATE.
type UpdateStmt struct {
	Table Ident
	Set   []Assignment
	Where Expr
}

// SQL renders the statement.
func (s UpdateStmt) SQL() string {
	sets := make([]string, len(s.Set))
	for i, a := range s.Set {
		sets[i] = a.SQL()
	}
	out := "UPDATE " + s.Table.SQL() + " SET " + strings.Join(sets, ", ")
	if s.Where != nil {
		out += " WHERE " + s.Where.SQL()
	}
	return out
}

// DeleteStmt is a single-table DELETE.
type DeleteStmt struct {
	Table Ident
	Where Expr
}

// SQL renders the statement.
func (s DeleteStmt) SQL() string {
	out := "DELETE FROM " + s.Table.SQL()
	if s.Where != nil {
		out += " WHERE " + s.Where.SQL()
	}
	return out
}

// SelectStmt is the minimal SELECT shape the generator needs: a column
// list over plain tables with an optional conjunction of predicates.
type SelectStmt struct {
	Columns []Expr
	From    []Ident
	Where   Expr
}

// SQL renders the statement.
func (s SelectStmt) SQL() string {
	out := "SELECT " + List(s.Columns)
	if len(s.From) > 0 {
		tables := make([]string, len(s.From))
		for i, t := range s.From {
			tables[i] = t.SQL()
		}
		out += " FROM " + strings.Join(tables, ", ")
	}
	if s.Where != nil {
		out += " WHERE " + s.Where.SQL()
	}
	return out
}

// Scalar wraps a statement as a parenthesized scalar subquery, usable
// anywhere an expression is expected.
type Scalar struct {
	Query SelectStmt
}

// SQL renders (SELECT ...).
func (s Scalar) SQL() string {
	return "(" + s.Query.SQL() + ")"
}
