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
	dropFlags         specFlags
	dropDryRun        bool
	dropDiscriminator bool
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Tear down the generated objects for a table pair",
	Long: `Drop the generated objects in reverse dependency order. The parent's
discriminator column is shared with sibling children and is left in place
unless --drop-discriminator asserts this child is the last one.`,
	Example: `  # Drop every entry from lineage.yaml
  lineage drop --db postgres://localhost/mydb

  # Drop a single configured entry
  lineage drop --db postgres://localhost/mydb --child employees

  # Drop the last child and the shared discriminator column with it
  lineage drop --db postgres://localhost/mydb --child employees --drop-discriminator

  # Preview the statements without applying
  lineage drop --db postgres://localhost/mydb --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := dropFlags.resolve()
		if err != nil {
			return err
		}
		dryRun := resolveBool(dropDryRun, cfg.Drop.DryRun)
		dropDisc := resolveBool(dropDiscriminator, cfg.Drop.DropDiscriminator)

		dsn, err := resolveDSN(dropFlags.db)
		if err != nil {
			return err
		}

		return runDrop(dsn, specs, dryRun, dropDisc)
	},
}

func init() {
	dropFlags.register(dropCmd)
	dropCmd.Flags().BoolVar(&dropDryRun, "dry-run", false, "output statements without applying")
	dropCmd.Flags().BoolVar(&dropDiscriminator, "drop-discriminator", false, "also drop the parent's shared discriminator column")
}

func runDrop(dsn string, specs []lineage.Spec, dryRun, dropDisc bool) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return cli.DBConnectError("connecting to database", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	c := compiler.New(db).WithLogger(logger)

	opts := compiler.DropOptions{DropDiscriminator: dropDisc}
	if dryRun {
		opts.DryRun = os.Stdout
		if !quiet {
			fmt.Fprintln(os.Stderr, "-- Dry-run mode: SQL will be output but not applied")
			fmt.Fprintln(os.Stderr, "")
		}
	}

	for _, spec := range specs {
		if err := c.DropWithOptions(ctx, spec, opts); err != nil {
			return classify(fmt.Sprintf("dropping %s", spec.ViewName()), err)
		}
		if !dryRun && !quiet {
			fmt.Printf("Dropped %s\n", spec.ViewName())
		}
	}
	return nil
}
