package lineage

import (
	"errors"
	"fmt"
)

// Error taxonomy for spec compilation. Each type carries enough context to
// diagnose the failure without re-running anything: which field, table,
// column, or generated statement was involved.
//
// Use the Is*Err helpers to classify a returned error regardless of how
// deeply it has been wrapped.

// SpecError reports a Spec that is missing a required field or is
// internally inconsistent, including a foreign key column absent from the
// child table. It is a caller mistake, never a runtime DDL failure.
type SpecError struct {
	Field  string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("lineage: invalid spec: %s: %s", e.Field, e.Reason)
}

// IntrospectError reports a referenced table that does not exist or could
// not be read.
type IntrospectError struct {
	Table string
	Err   error
}

func (e *IntrospectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lineage: introspecting %q: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("lineage: table %q does not exist", e.Table)
}

func (e *IntrospectError) Unwrap() error { return e.Err }

// TypeMapError reports a column whose semantic type has no DDL mapping.
// The row-shape type builder fails with this before any DDL for the type
// is executed; it never silently emits a malformed literal.
type TypeMapError struct {
	Column string
	Type   ColumnType
}

func (e *TypeMapError) Error() string {
	return fmt.Sprintf("lineage: column %q: no DDL mapping for type %q", e.Column, string(e.Type))
}

// SQLError reports a generated statement the store rejected. Step names the
// compiler step and Statement carries the full statement text.
type SQLError struct {
	Step      string
	Statement string
	Err       error
}

func (e *SQLError) Error() string {
	return fmt.Sprintf("lineage: %s: %v (statement: %s)", e.Step, e.Err, e.Statement)
}

func (e *SQLError) Unwrap() error { return e.Err }

// IsSpecErr returns true if err is or wraps a *SpecError.
func IsSpecErr(err error) bool {
	var target *SpecError
	return errors.As(err, &target)
}

// IsIntrospectErr returns true if err is or wraps an *IntrospectError.
func IsIntrospectErr(err error) bool {
	var target *IntrospectError
	return errors.As(err, &target)
}

// IsTypeMapErr returns true if err is or wraps a *TypeMapError.
func IsTypeMapErr(err error) bool {
	var target *TypeMapError
	return errors.As(err, &target)
}

// IsSQLErr returns true if err is or wraps a *SQLError.
func IsSQLErr(err error) bool {
	var target *SQLError
	return errors.As(err, &target)
}
