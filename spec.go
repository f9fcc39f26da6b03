package lineage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-openapi/inflect"
)

// Spec describes one inheritance mapping between an existing parent table
// and an existing child table. Callers construct it fully resolved; the
// compiler never inspects language-level type metadata.
//
// A Spec is a value, not persisted state. The compiler re-introspects the
// database on every Create/Drop call, so the same Spec can be reused across
// schema changes.
type Spec struct {
	// ParentTable and ChildTable name the existing physical tables.
	ParentTable string
	ChildTable  string

	// ParentType and ChildType are the logical supertype and subtype names.
	// ChildType is the discriminator value stored on each parent row.
	ParentType string
	ChildType  string

	// TablePrefix is prepended to ChildTable to form the view name.
	TablePrefix string

	// ForeignKey overrides the child column referencing the parent's
	// primary key. Defaults to the singularized parent table name + "_id".
	ForeignKey string

	// SequenceName overrides the parent id sequence.
	// Defaults to ParentTable + "_id_seq".
	SequenceName string

	// ExtraConditions holds additional filter predicates ANDed into the
	// view definition. Each entry is a raw SQL predicate over the joined
	// tables and is emitted verbatim.
	ExtraConditions []string
}

// identPattern is the restricted shape accepted for every identifier a Spec
// carries. Generated statements quote identifiers anyway, but rejecting
// anything outside this set keeps untrusted values out of DDL entirely.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidIdent reports whether s is acceptable as a table, column, type, or
// sequence name.
func ValidIdent(s string) bool {
	return identPattern.MatchString(s)
}

// ViewName returns the name of the generated view: TablePrefix + ChildTable.
func (s Spec) ViewName() string {
	return s.TablePrefix + s.ChildTable
}

// TypeName returns the name of the composite row-shape type.
func (s Spec) TypeName() string {
	return s.ViewName() + "_type"
}

// FetchFunctionName returns the name of the row-fetch function the insert
// rule uses to materialize the freshly inserted view row.
func (s Spec) FetchFunctionName() string {
	return "GetInserted" + s.ParentType
}

// InsertRuleName returns the name of the INSERT rewrite rule.
func (s Spec) InsertRuleName() string {
	return s.ViewName() + "_ins"
}

// UpdateRuleName returns the name of the UPDATE rewrite rule.
func (s Spec) UpdateRuleName() string {
	return s.ViewName() + "_upd"
}

// DeleteRuleName returns the name of the DELETE rewrite rule.
func (s Spec) DeleteRuleName() string {
	return s.ViewName() + "_del"
}

// DeleteFunctionName returns the name of the trigger function that cascades
// a child delete to the parent table.
func (s Spec) DeleteFunctionName() string {
	return s.ViewName() + "_del_function"
}

// DeleteTriggerName returns the name of the BEFORE DELETE trigger on the
// child table.
func (s Spec) DeleteTriggerName() string {
	return s.ViewName() + "_del_trigger"
}

// DiscriminatorColumn returns the parent column recording which child type
// a row belongs to. The column is shared across all children of the same
// parent.
func (s Spec) DiscriminatorColumn() string {
	return strings.ToLower(s.ParentType) + "_type"
}

// ForeignKeyColumn returns the child column referencing the parent's
// primary key: the ForeignKey override if set, otherwise the singularized
// parent table name + "_id".
func (s Spec) ForeignKeyColumn() string {
	if s.ForeignKey != "" {
		return s.ForeignKey
	}
	return inflect.Singularize(s.ParentTable) + "_id"
}

// Sequence returns the parent id sequence name: the SequenceName override
// if set, otherwise ParentTable + "_id_seq".
func (s Spec) Sequence() string {
	if s.SequenceName != "" {
		return s.SequenceName
	}
	return s.ParentTable + "_id_seq"
}

// ChildSequence returns the child table's own id sequence name.
func (s Spec) ChildSequence() string {
	return s.ChildTable + "_id_seq"
}

// Validate checks that every required field is present and that every
// identifier the Spec names (given or derived) has the restricted
// identifier shape. It does not touch the database; existence of the
// foreign key column on the child table is checked by the compiler after
// introspection.
func (s Spec) Validate() error {
	required := []struct{ field, value string }{
		{"ParentTable", s.ParentTable},
		{"ChildTable", s.ChildTable},
		{"ParentType", s.ParentType},
		{"ChildType", s.ChildType},
	}
	for _, r := range required {
		if r.value == "" {
			return &SpecError{Field: r.field, Reason: "required"}
		}
		if !ValidIdent(r.value) {
			return &SpecError{Field: r.field, Reason: fmt.Sprintf("invalid identifier %q", r.value)}
		}
	}
	derived := []struct{ field, value string }{
		{"TablePrefix", s.ViewName()},
		{"ForeignKey", s.ForeignKeyColumn()},
		{"SequenceName", s.Sequence()},
	}
	for _, d := range derived {
		if !ValidIdent(d.value) {
			return &SpecError{Field: d.field, Reason: fmt.Sprintf("invalid identifier %q", d.value)}
		}
	}
	return nil
}
