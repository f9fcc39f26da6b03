package sqlgen

import (
	"github.com/pthm/lineage"
)

// ddlTypes is the fixed mapping from semantic column types to the DDL
// literals used when declaring the row-shape type.
var ddlTypes = map[lineage.ColumnType]string{
	lineage.Boolean:  "boolean",
	lineage.Integer:  "integer",
	lineage.BigInt:   "bigint",
	lineage.Float:    "double precision",
	lineage.Decimal:  "numeric",
	lineage.String:   "character varying(255)",
	lineage.Text:     "text",
	lineage.Datetime: "timestamp",
	lineage.Date:     "date",
	lineage.Time:     "time",
	lineage.Binary:   "bytea",
}

// DDLType returns the DDL type literal for a column. A semantic type
// outside the mapping fails with lineage.TypeMapError; it never falls
// through to an empty literal.
func DDLType(c lineage.Column) (string, error) {
	lit, ok := ddlTypes[c.Type]
	if !ok {
		return "", &lineage.TypeMapError{Column: c.Name, Type: c.Type}
	}
	return lit, nil
}
