package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndhung1104/CSDLNC-09/internal/config"
	"github.com/ndhung1104/CSDLNC-09/internal/schema"
	"github.com/ndhung1104/CSDLNC-09/internal/seed"
	"github.com/ndhung1104/CSDLNC-09/internal/store/pgstore"
)

var schemaCfg struct {
	withMaster   bool
	masterScript string
	printOnly    bool
	createDB     bool
}

var initSchemaCmd = &cobra.Command{
	Use:   "init-schema",
	Short: "Create the clinic tables and optionally load master data",
	Long: `Creates every clinic table in foreign-key order (CREATE TABLE IF NOT EXISTS),
so it is safe to run against a database that already has them. With --with-master
the bootstrap script is loaded when all master tables are empty.`,
	RunE: runInitSchema,
}

func init() {
	rootCmd.AddCommand(initSchemaCmd)
	initSchemaCmd.Flags().BoolVar(&schemaCfg.withMaster, "with-master", false, "Load master data after creating the tables")
	initSchemaCmd.Flags().StringVar(&schemaCfg.masterScript, "master-script", "", "Bootstrap SQL script (default: built-in)")
	initSchemaCmd.Flags().BoolVar(&schemaCfg.printOnly, "print", false, "Print the DDL instead of executing it")
	initSchemaCmd.Flags().BoolVar(&schemaCfg.createDB, "create-db", false, "Create the database first if it does not exist")
}

func runInitSchema(c *cobra.Command, args []string) error {
	stmts := schema.CreateStatements()
	if schemaCfg.printOnly {
		for _, s := range stmts {
			fmt.Fprintf(out, "%s;\n\n", s)
		}
		return nil
	}

	ctx := context.Background()
	connStr, err := resolveConnStr()
	if err != nil {
		return err
	}
	if schemaCfg.createDB {
		if err := ensureDatabase(ctx, connStr); err != nil {
			return err
		}
	}
	pg, err := dial(ctx, connStr)
	if err != nil {
		return err
	}
	defer pg.Close(ctx)

	store := pgstore.New(pg)
	log("[%s] Creating %d tables...", now(), len(schema.Tables()))
	if err := store.RunScript(ctx, stmts); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	log("[%s] Schema ready", now())

	if !schemaCfg.withMaster {
		return nil
	}
	s := seed.New(store, nil, config.Defaults())
	s.Reporter = logReporter{}
	s.Script = func() ([]string, error) { return schema.LoadMaster(schemaCfg.masterScript) }
	booted, err := s.Bootstrap(ctx)
	if err != nil {
		return err
	}
	if !booted {
		log("[%s] Master tables already populated, nothing loaded", now())
	}
	return nil
}
