package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/cli"
)

// specFlags collects the per-command flags that describe a table pair.
// A command either names a configured entry with --child or builds a
// one-off spec entirely from flags.
type specFlags struct {
	db          string
	child       string
	parentTable string
	childTable  string
	parentType  string
	childType   string
	tablePrefix string
	foreignKey  string
	sequence    string
	conditions  []string
}

func (s *specFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.db, "db", "", "database URL")
	f.StringVar(&s.child, "child", "", "operate on the configured entry with this child_table")
	f.StringVar(&s.parentTable, "parent-table", "", "parent table name")
	f.StringVar(&s.childTable, "child-table", "", "child table name")
	f.StringVar(&s.parentType, "parent-type", "", "parent type name (discriminator column derives from it)")
	f.StringVar(&s.childType, "child-type", "", "child type name (stored as the discriminator value)")
	f.StringVar(&s.tablePrefix, "table-prefix", "", "prefix for the generated view name")
	f.StringVar(&s.foreignKey, "foreign-key", "", "child column referencing the parent (default: singular parent + _id)")
	f.StringVar(&s.sequence, "sequence", "", "parent id sequence (default: <parent>_id_seq)")
	f.StringArrayVar(&s.conditions, "condition", nil, "extra view predicate, ANDed in (repeatable)")
}

// resolve returns the specs a command should operate on: a flag-built spec
// when table flags are given, the configured entries otherwise.
func (s *specFlags) resolve() ([]lineage.Spec, error) {
	if s.parentTable != "" || s.childTable != "" {
		return []lineage.Spec{{
			ParentTable:     s.parentTable,
			ChildTable:      s.childTable,
			ParentType:      s.parentType,
			ChildType:       s.childType,
			TablePrefix:     resolveString(s.tablePrefix, cfg.TablePrefix),
			ForeignKey:      s.foreignKey,
			SequenceName:    s.sequence,
			ExtraConditions: s.conditions,
		}}, nil
	}

	specs, err := cfg.ResolvedSpecs(s.child)
	if err != nil {
		return nil, cli.ConfigError("resolving table entries", err)
	}
	if len(specs) == 0 {
		return nil, cli.ConfigError("no table entries configured (use flags or add tables to lineage.yaml)", nil)
	}
	return specs, nil
}

// resolveDSN gets the database DSN from flag or config.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return "", cli.ConfigError("database configuration", err)
	}
	if dsn == "" {
		return "", cli.ConfigError("database URL is required (use --db or set in config)", nil)
	}
	return dsn, nil
}
