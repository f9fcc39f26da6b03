package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pthm/lineage"
	"github.com/pthm/lineage/internal/cli"
	"github.com/pthm/lineage/pkg/compiler"
)

var statusFlags specFlags

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which generated objects exist",
	Long:  `Probe the catalog for each generated object of a table pair.`,
	Example: `  # Check every entry from lineage.yaml
  lineage status --db postgres://localhost/mydb

  # Check a single configured entry
  lineage status --db postgres://localhost/mydb --child employees`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := statusFlags.resolve()
		if err != nil {
			return err
		}

		dsn, err := resolveDSN(statusFlags.db)
		if err != nil {
			return err
		}

		return runStatus(dsn, specs)
	},
}

func init() {
	statusFlags.register(statusCmd)
}

func runStatus(dsn string, specs []lineage.Spec) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return cli.DBConnectError("connecting to database", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	c := compiler.New(db).WithLogger(logger)

	for i, spec := range specs {
		s, err := c.Status(ctx, spec)
		if err != nil {
			return classify(fmt.Sprintf("checking %s", spec.ViewName()), err)
		}

		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%s -> %s)\n", spec.ViewName(), spec.ParentTable, spec.ChildTable)
		printObject("discriminator column", s.Discriminator)
		printObject("view", s.View)
		printObject("row type", s.RowType)
		printObject("row fetch function", s.FetchFunction)
		printObject("insert rule", s.InsertRule)
		printObject("update rule", s.UpdateRule)
		printObject("delete rule", s.DeleteRule)
		printObject("delete trigger function", s.DeleteFunction)
		printObject("delete trigger", s.DeleteTrigger)

		switch {
		case s.Complete():
			fmt.Println("Status: complete")
		case s.Empty():
			fmt.Println("Status: not created")
		default:
			fmt.Println("Status: partial (re-run create, or drop to clean up)")
		}
	}
	return nil
}

func printObject(name string, exists bool) {
	state := "missing"
	if exists {
		state = "present"
	}
	fmt.Printf("  %-24s %s\n", name, state)
}
