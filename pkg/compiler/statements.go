package compiler

import (
	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/sqlgen"
)

// Statement is one named DDL statement in create order.
type Statement struct {
	Name string
	SQL  string
}

// Statements returns the ordered create statements for the spec without
// touching a database. Column lists come from the caller in physical order.
// The discriminator add is included when the parent lacks the column, and
// the remaining statements account for it the way Create would after the
// ALTER TABLE ran.
func Statements(spec lineage.Spec, parent, child lineage.Columns) ([]Statement, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var out []Statement
	if !parent.Has(spec.DiscriminatorColumn()) {
		step := stmt("add discriminator column", sqlgen.AddDiscriminatorStatement(spec))
		text, _ := step.build()
		out = append(out, Statement{Name: step.name, SQL: text})
		parent = append(parent, lineage.Column{Name: spec.DiscriminatorColumn(), Type: lineage.String})
	}

	for _, s := range createSteps(spec, parent, child) {
		text, err := s.build()
		if err != nil {
			return nil, err
		}
		out = append(out, Statement{Name: s.name, SQL: text})
	}
	return out, nil
}
