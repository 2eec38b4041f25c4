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

var statusTargetsFile string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the row count of every clinic table next to its target",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusTargetsFile, "targets", "", "YAML file with row targets")
}

func runStatus(c *cobra.Command, args []string) error {
	targets, err := config.LoadTargets(statusTargetsFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pg, err := openConn(ctx)
	if err != nil {
		return err
	}
	defer pg.Close(ctx)

	names := schema.Names()
	tables := make([]seed.Table, len(names))
	for i, n := range names {
		tables[i] = seed.Table(n)
	}
	store := pgstore.New(pg)
	counts, err := store.Counts(ctx, tables)
	if err != nil {
		return err
	}
	size, err := store.DatabaseSize(ctx)
	if err != nil {
		return err
	}

	goals := map[seed.Table]int64{
		seed.TableCustomer: targets.Customers,
		seed.TableCheckup:  targets.Checkups,
		seed.TableReceipt:  targets.Receipts,
	}
	fmt.Fprintf(out, "\nDatabase size: %s\n\n", formatSize(size))
	fmt.Fprintf(out, "  %-20s %12s %12s %10s\n", "TABLE", "ROWS", "TARGET", "REMAINING")
	for _, t := range tables {
		goal, ok := goals[t]
		if !ok {
			fmt.Fprintf(out, "  %-20s %12d %12s %10s\n", t, counts[t], "-", "-")
			continue
		}
		fmt.Fprintf(out, "  %-20s %12d %12d %10d\n", t, counts[t], goal, seed.Remaining(counts[t], goal))
	}
	return nil
}
