package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/ndhung1104/CSDLNC-09/internal/config"
	"github.com/ndhung1104/CSDLNC-09/internal/schema"
	"github.com/ndhung1104/CSDLNC-09/internal/seed"
	"github.com/ndhung1104/CSDLNC-09/internal/store/memstore"
	"github.com/ndhung1104/CSDLNC-09/internal/store/pgstore"
)

type seedConfig struct {
	targetsFile      string
	overrides        config.Targets
	masterScript     string
	randomSeed       int64
	customerPassword string
	summaryFile      string
	progressBar      bool
	dryRun           bool
}

var seedCfg seedConfig

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the clinic database with synthetic customers, pets, checkups and receipts",
	Long: `Runs the seeding pipeline:
1. Load master data from the bootstrap script if every master table is empty
2. Load master ids (ranks, breeds, branches, products, services, staff)
3. Top up customers, checkups and receipts to their targets
4. Fill pets, receipt details and reviews if their tables are empty
5. Rebuild customer_spending from completed receipts
6. Write JSON + CSV summary

Running it again only generates what is missing.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	d := config.Defaults()
	f := seedCmd.Flags()
	f.StringVar(&seedCfg.targetsFile, "targets", "", "YAML file with row targets (flags below override it)")
	f.Int64Var(&seedCfg.overrides.Customers, "customers", d.Customers, "Target customer count")
	f.Int64Var(&seedCfg.overrides.Checkups, "checkups", d.Checkups, "Target checkup count")
	f.Int64Var(&seedCfg.overrides.Receipts, "receipts", d.Receipts, "Target receipt count")
	f.IntVar(&seedCfg.overrides.MaxPetsPerCustomer, "max-pets", d.MaxPetsPerCustomer, "Max pets per customer")
	f.IntVar(&seedCfg.overrides.MaxItemsPerReceipt, "max-items", d.MaxItemsPerReceipt, "Max line items per receipt")
	f.Float64Var(&seedCfg.overrides.ReviewRatio, "review-ratio", d.ReviewRatio, "Share of completed receipts that get a review")
	f.IntVar(&seedCfg.overrides.BatchSize, "batch-size", d.BatchSize, "Rows per committed batch")
	f.IntVar(&seedCfg.overrides.DetailBatchSize, "detail-batch-size", d.DetailBatchSize, "Rows per committed receipt detail batch")
	f.IntVar(&seedCfg.overrides.HistoryYears, "history-years", d.HistoryYears, "Years of history for visit and receipt dates")
	f.StringVar(&seedCfg.masterScript, "master-script", "", "Bootstrap SQL script, batches separated by GO lines (default: built-in)")
	f.Int64Var(&seedCfg.randomSeed, "random-seed", 0, "Seed for reproducible data (default: time based)")
	f.StringVar(&seedCfg.customerPassword, "customer-password", "", "Plain password hashed with bcrypt and stored on every new customer")
	f.StringVar(&seedCfg.summaryFile, "summary-file", "seed_summary", "Base name for summary files (.json/.csv appended, empty to skip)")
	f.BoolVar(&seedCfg.progressBar, "progress-bar", false, "Draw a progress bar per phase instead of per-batch lines")
	f.BoolVar(&seedCfg.dryRun, "dry-run", false, "Generate into memory against demo master data; no database needed")
}

// resolveTargets loads the targets file and applies the flags that were set
// explicitly on top of it.
func resolveTargets(c *cobra.Command) (config.Targets, error) {
	t, err := config.LoadTargets(seedCfg.targetsFile)
	if err != nil {
		return t, err
	}

	o := seedCfg.overrides
	changed := c.Flags().Changed
	if changed("customers") {
		t.Customers = o.Customers
	}
	if changed("checkups") {
		t.Checkups = o.Checkups
	}
	if changed("receipts") {
		t.Receipts = o.Receipts
	}
	if changed("max-pets") {
		t.MaxPetsPerCustomer = o.MaxPetsPerCustomer
	}
	if changed("max-items") {
		t.MaxItemsPerReceipt = o.MaxItemsPerReceipt
	}
	if changed("review-ratio") {
		t.ReviewRatio = o.ReviewRatio
	}
	if changed("batch-size") {
		t.BatchSize = o.BatchSize
	}
	if changed("detail-batch-size") {
		t.DetailBatchSize = o.DetailBatchSize
	}
	if changed("history-years") {
		t.HistoryYears = o.HistoryYears
	}
	return t, t.Validate()
}

func runSeed(c *cobra.Command, args []string) error {
	targets, err := resolveTargets(c)
	if err != nil {
		return fmt.Errorf("targets: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var store seed.Store
	if seedCfg.dryRun {
		mem := memstore.New()
		mem.LoadDemoMaster()
		store = mem
		log("[%s] Dry run: generating into memory with demo master data", now())
	} else {
		pg, err := openConn(ctx)
		if err != nil {
			return err
		}
		defer pg.Close(context.Background())
		store = pgstore.New(pg)
	}

	rngSeed := seedCfg.randomSeed
	if !c.Flags().Changed("random-seed") {
		rngSeed = time.Now().UnixNano()
	}
	log("[%s] Random seed: %d", now(), rngSeed)

	s := seed.New(store, gofakeit.New(uint64(rngSeed)), targets)
	s.Reporter = newReporter(seedCfg.progressBar)
	s.Script = func() ([]string, error) { return schema.LoadMaster(seedCfg.masterScript) }

	if seedCfg.customerPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(seedCfg.customerPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash customer password: %w", err)
		}
		s.PasswordHash = string(hash)
	}

	sum, runErr := s.Run(ctx)
	printSummary(sum)
	writeSummaryFiles(sum, seedCfg.summaryFile)

	if mem, ok := store.(*memstore.Store); ok {
		printDryRunCounts(ctx, mem)
	}

	if runErr != nil {
		return fmt.Errorf("seeding stopped: %w", runErr)
	}
	log("\n[%s] Seeding finished in %.1fs", now(), sum.DurationSecs)
	return nil
}

func printDryRunCounts(ctx context.Context, mem *memstore.Store) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "In-memory row counts:")
	for _, name := range schema.Names() {
		n, err := mem.Count(ctx, seed.Table(name))
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  %-20s %d\n", name, n)
	}
}
