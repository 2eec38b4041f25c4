package seed

import "context"

// Store is everything a seeding run needs from the clinic database. Every
// Insert method writes its batch as one operation and commits it.
type Store interface {
	ReferenceReader

	Count(ctx context.Context, table Table) (int64, error)
	// MaxCustomerSeq returns the highest n among customer emails of the
	// form user{n}@example.com, 0 if there are none.
	MaxCustomerSeq(ctx context.Context) (int64, error)
	ReceiptIDsByStatus(ctx context.Context, status string) ([]int64, error)
	// RunScript executes the batches in order inside one transaction.
	RunScript(ctx context.Context, batches []string) error

	InsertCustomers(ctx context.Context, batch []Customer) (int64, error)
	InsertPets(ctx context.Context, batch []Pet) (int64, error)
	InsertCheckups(ctx context.Context, batch []Checkup) (int64, error)
	InsertReceipts(ctx context.Context, batch []Receipt) (int64, error)
	InsertReceiptDetails(ctx context.Context, batch []ReceiptDetail) (int64, error)
	InsertReviews(ctx context.Context, batch []Review) (int64, error)

	DeleteSpending(ctx context.Context) (int64, error)
	// SpendingByYear sums receipt totals with the given status per customer
	// and calendar year, ordered by customer then year.
	SpendingByYear(ctx context.Context, status string) ([]CustomerSpending, error)
	InsertSpending(ctx context.Context, batch []CustomerSpending) (int64, error)
}

// Reporter receives human-readable progress of a run.
type Reporter interface {
	// PhaseStart announces a phase; expected is -1 when the row count is
	// only known after generation.
	PhaseStart(phase string, expected int64)
	Progress(phase string, total int64)
	PhaseSkip(phase string, existing int64)
	PhaseDone(phase string, inserted int64)
	Notice(format string, args ...any)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) PhaseStart(string, int64) {}
func (NopReporter) Progress(string, int64) {}
func (NopReporter) PhaseSkip(string, int64) {}
func (NopReporter) PhaseDone(string, int64) {}
func (NopReporter) Notice(string, ...any) {}
