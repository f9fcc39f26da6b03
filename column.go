package lineage

// ColumnType is the semantic type of a column, independent of the exact
// DDL spelling PostgreSQL reports for it. The introspector maps catalog
// types onto these values and the statement builders map them back to DDL
// literals when declaring the row-shape type.
type ColumnType string

const (
	Boolean  ColumnType = "boolean"
	Integer  ColumnType = "integer"
	BigInt   ColumnType = "bigint"
	Float    ColumnType = "float"
	Decimal  ColumnType = "decimal"
	String   ColumnType = "string"
	Text     ColumnType = "text"
	Datetime ColumnType = "datetime"
	Date     ColumnType = "date"
	Time     ColumnType = "time"
	Binary   ColumnType = "binary"
)

// Column describes one table column: its name and semantic type.
// Column lists are always in physical (ordinal) order; that order is
// load-bearing because it determines the column order baked into the
// generated view, row-shape type, and rewrite rules.
type Column struct {
	Name string
	Type ColumnType
}

// Columns is an ordered column list with small lookup helpers.
type Columns []Column

// Has reports whether a column with the given name is present.
func (cs Columns) Has(name string) bool {
	for _, c := range cs {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Names returns the column names in order.
func (cs Columns) Names() []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

// Without returns the columns whose names are not in exclude, preserving
// order.
func (cs Columns) Without(exclude ...string) Columns {
	out := make(Columns, 0, len(cs))
	for _, c := range cs {
		skip := false
		for _, e := range exclude {
			if c.Name == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}
