// Package sqldsl provides a small SQL DSL for generating the DDL and
// rewrite-rule statements that implement multi-table inheritance.
// Identifiers and literals are typed and escaped at render time, so no
// caller-supplied value is ever interpolated into statement text raw.
package sqldsl

import (
	"strings"

	"github.com/lib/pq"
)

// Expr is the interface that all SQL expression types implement.
type Expr interface {
	SQL() string
}

// Ident is a table, column, rule, type, or function name. It renders
// double-quoted via pq.QuoteIdentifier, so any embedded quote characters
// are escaped rather than interpreted.
type Ident string

// SQL renders the quoted identifier.
func (i Ident) SQL() string {
	return pq.QuoteIdentifier(string(i))
}

// Qualified is a table-qualified column reference (e.g. "people"."name").
type Qualified struct {
	Table  string
	Column string
}

// SQL renders the qualified reference with both parts quoted.
func (q Qualified) SQL() string {
	return pq.QuoteIdentifier(q.Table) + "." + pq.QuoteIdentifier(q.Column)
}

// Lit is a string literal, rendered single-quoted via pq.QuoteLiteral.
type Lit string

// SQL renders the escaped literal.
func (l Lit) SQL() string {
	return pq.QuoteLiteral(string(l))
}

// Raw is an escape hatch for caller-trusted SQL fragments, used only for a
// spec's extra view conditions.
type Raw string

// SQL renders the fragment as-is.
func (r Raw) SQL() string {
	return string(r)
}

// NewRef references a column of the NEW pseudo-row inside a rewrite rule.
type NewRef string

// SQL renders NEW."col".
func (n NewRef) SQL() string {
	return "NEW." + pq.QuoteIdentifier(string(n))
}

// OldRef references a column of the OLD pseudo-row inside a rewrite rule
// or trigger function.
type OldRef string

// SQL renders OLD."col".
func (o OldRef) SQL() string {
	return "OLD." + pq.QuoteIdentifier(string(o))
}

// NextVal advances and returns the named sequence.
type NextVal string

// SQL renders nextval('seq').
func (n NextVal) SQL() string {
	return "nextval(" + pq.QuoteLiteral(string(n)) + ")"
}

// CurrVal returns the named sequence's current session value.
type CurrVal string

// SQL renders currval('seq').
func (c CurrVal) SQL() string {
	return "currval(" + pq.QuoteLiteral(string(c)) + ")"
}

// Call is a function invocation. The function name is treated as an
// identifier and quoted, which keeps mixed-case generated names stable.
type Call struct {
	Name string
	Args []Expr
}

// SQL renders the call.
func (c Call) SQL() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.SQL()
	}
	return pq.QuoteIdentifier(c.Name) + "(" + strings.Join(args, ", ") + ")"
}

// Field selects one field from a composite-valued expression:
// (row)."field". The extra parentheses are required by the PostgreSQL
// grammar when the row value is itself an expression.
type Field struct {
	Row  Expr
	Name string
}

// SQL renders the field selection.
func (f Field) SQL() string {
	return "(" + f.Row.SQL() + ")." + pq.QuoteIdentifier(f.Name)
}

// Eq is an equality comparison.
type Eq struct {
	Left  Expr
	Right Expr
}

// SQL renders left = right.
func (e Eq) SQL() string {
	return e.Left.SQL() + " = " + e.Right.SQL()
}

// And joins the given expressions with AND. With no operands it renders
// TRUE; with one it renders that operand alone.
type And []Expr

// SQL renders the conjunction.
func (a And) SQL() string {
	switch len(a) {
	case 0:
		return "TRUE"
	case 1:
		return a[0].SQL()
	}
	parts := make([]string, len(a))
	for i, e := range a {
		parts[i] = e.SQL()
	}
	return strings.Join(parts, " AND ")
}

// List renders expressions joined by ", " for select, VALUES, and
// RETURNING lists.
func List(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.SQL()
	}
	return strings.Join(parts, ", ")
}
