package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/cli"
	"github.com/pthm/lineage/pkg/compiler"
)

var (
	createFlags  specFlags
	createDryRun bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate the view, rules, and triggers for a table pair",
	Long: `Generate the full object set for a parent/child table pair: the
discriminator column, the joined view, its row-shape type and row-fetch
function, the insert/update/delete rewrite rules, and the delete trigger.`,
	Example: `  # Create every entry from lineage.yaml
  lineage create --db postgres://localhost/mydb

  # Create a single configured entry
  lineage create --db postgres://localhost/mydb --child employees

  # Create a one-off pair from flags
  lineage create --db postgres://localhost/mydb \
    --parent-table people --child-table employees \
    --parent-type Person --child-type Employee --table-prefix mti_

  # Preview the statements without applying
  lineage create --db postgres://localhost/mydb --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := createFlags.resolve()
		if err != nil {
			return err
		}
		dryRun := resolveBool(createDryRun, cfg.Create.DryRun)

		dsn, err := resolveDSN(createFlags.db)
		if err != nil {
			return err
		}

		return runCreate(dsn, specs, dryRun)
	},
}

func init() {
	createFlags.register(createCmd)
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "output statements without applying")
}

func runCreate(dsn string, specs []lineage.Spec, dryRun bool) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return cli.DBConnectError("connecting to database", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	c := compiler.New(db).WithLogger(logger)

	opts := compiler.CreateOptions{}
	if dryRun {
		opts.DryRun = os.Stdout
		if !quiet {
			fmt.Fprintln(os.Stderr, "-- Dry-run mode: SQL will be output but not applied")
			fmt.Fprintln(os.Stderr, "")
		}
	}

	for _, spec := range specs {
		if err := c.CreateWithOptions(ctx, spec, opts); err != nil {
			return classify(fmt.Sprintf("creating %s", spec.ViewName()), err)
		}
		if !dryRun && !quiet {
			fmt.Printf("Created %s\n", spec.ViewName())
		}
	}
	return nil
}

// classify maps library errors onto exit codes.
func classify(msg string, err error) error {
	switch {
	case lineage.IsSpecErr(err):
		return cli.BadSpecError(msg, err)
	case lineage.IsIntrospectErr(err):
		return cli.BadSpecError(msg, err)
	default:
		return cli.GeneralError(msg, err)
	}
}
