package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndhung1104/CSDLNC-09/internal/config"
)

// PhaseResult records what one generation phase did.
type PhaseResult struct {
	Phase        string  `json:"phase"`
	Table        Table   `json:"table"`
	Existing     int64   `json:"existing"`
	Target       int64   `json:"target,omitempty"`
	Inserted     int64   `json:"inserted"`
	Skipped      bool    `json:"skipped"`
	DurationSecs float64 `json:"duration_secs"`
}

// Summary describes a whole seeding run.
type Summary struct {
	RunID        string        `json:"run_id"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	DurationSecs float64       `json:"duration_secs"`
	Bootstrapped bool          `json:"bootstrapped"`
	Phases       []PhaseResult `json:"phases"`
}

// Inserted sums the rows written across all phases.
func (s *Summary) Inserted() int64 {
	var n int64
	for _, p := range s.Phases {
		n += p.Inserted
	}
	return n
}

// Seeder runs the generation phases against a store, one after another.
type Seeder struct {
	store   Store
	src     Source
	targets config.Targets

	// Reporter receives progress; defaults to NopReporter.
	Reporter Reporter
	// Script loads the bootstrap batches used when all master tables are empty.
	Script func() ([]string, error)
	// Now is the clock used for the generation window and timings.
	Now func() time.Time
	// PasswordHash, when set, is stored as every new customer's credential.
	PasswordHash string
}

func New(store Store, src Source, targets config.Targets) *Seeder {
	return &Seeder{
		store:    store,
		src:      src,
		targets:  targets,
		Reporter: NopReporter{},
		Now:      time.Now,
	}
}

// Run bootstraps master data if needed and generates every entity in
// foreign-key order. Each phase commits all of its batches before the
// next one starts. The summary is returned even when a phase fails.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{
		RunID:     uuid.NewString(),
		StartTime: s.Now(),
	}
	defer func() {
		sum.EndTime = s.Now()
		sum.DurationSecs = sum.EndTime.Sub(sum.StartTime).Seconds()
	}()

	booted, err := s.Bootstrap(ctx)
	if err != nil {
		return sum, err
	}
	sum.Bootstrapped = booted

	refs, err := LoadReferences(ctx, s.store)
	if err != nil {
		return sum, err
	}
	s.Reporter.Notice("Master ids loaded: %d ranks, %d breeds, %d branches, %d sales products, %d medical services, %d front desk, %d vets",
		len(refs.MembershipRanks), len(refs.Breeds), len(refs.Branches), len(refs.SalesProducts),
		len(refs.MedicalServices), len(refs.Receptionists), len(refs.Vets))

	fab := NewFabricator(s.src, refs, s.Now(), s.targets.HistoryYears,
		s.targets.MaxPetsPerCustomer, s.targets.MaxItemsPerReceipt)
	if s.PasswordHash != "" {
		fab.SetPassword(s.PasswordHash)
	}

	for _, p := range s.phases() {
		res, err := s.runPhase(ctx, fab, p)
		sum.Phases = append(sum.Phases, res)
		if err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (s *Seeder) phases() []phase {
	return []phase{
		{name: "customers", table: TableCustomer, mode: modeTarget, target: s.targets.Customers, run: s.seedCustomers},
		{name: "pets", table: TablePet, mode: modeFillEmpty, run: s.seedPets},
		{name: "checkups", table: TableCheckup, mode: modeTarget, target: s.targets.Checkups, run: s.seedCheckups},
		{name: "receipts", table: TableReceipt, mode: modeTarget, target: s.targets.Receipts, run: s.seedReceipts},
		{name: "receipt details", table: TableReceiptDetail, mode: modeFillEmpty, run: s.seedReceiptDetails},
		{name: "customer spending", table: TableCustomerSpending, mode: modeRebuild, run: func(ctx context.Context, _ *Fabricator, _ int64, onCommit func(int64)) (int64, error) {
			return s.RebuildSpending(ctx, onCommit)
		}},
		{name: "reviews", table: TableReview, mode: modeFillEmpty, run: s.seedReviews},
	}
}

func (s *Seeder) seedCustomers(ctx context.Context, fab *Fabricator, n int64, onCommit func(int64)) (int64, error) {
	seq, err := s.store.MaxCustomerSeq(ctx)
	if err != nil {
		return 0, fmt.Errorf("read customer sequence: %w", err)
	}

	w := NewBatchWriter[Customer](s.targets.BatchSize, s.store.InsertCustomers, onCommit)
	for i := int64(1); i <= n; i++ {
		if err := w.Add(ctx, fab.Customer(seq+i)); err != nil {
			return w.Total(), err
		}
	}
	err = w.Flush(ctx)
	return w.Total(), err
}

func (s *Seeder) seedPets(ctx context.Context, fab *Fabricator, _ int64, onCommit func(int64)) (int64, error) {
	customerIDs, err := s.store.KeyIDs(ctx, TableCustomer)
	if err != nil {
		return 0, fmt.Errorf("load customer ids: %w", err)
	}
	if len(customerIDs) == 0 {
		return 0, ErrNoCustomers
	}

	w := NewBatchWriter[Pet](s.targets.BatchSize, s.store.InsertPets, onCommit)
	for _, id := range customerIDs {
		for _, pet := range fab.Pets(id) {
			if err := w.Add(ctx, pet); err != nil {
				return w.Total(), err
			}
		}
	}
	err = w.Flush(ctx)
	return w.Total(), err
}

func (s *Seeder) seedCheckups(ctx context.Context, fab *Fabricator, n int64, onCommit func(int64)) (int64, error) {
	petIDs, err := s.store.KeyIDs(ctx, TablePet)
	if err != nil {
		return 0, fmt.Errorf("load pet ids: %w", err)
	}
	if len(petIDs) == 0 {
		return 0, ErrNoPets
	}
	if len(fab.refs.Vets) == 0 {
		return 0, ErrNoVets
	}

	w := NewBatchWriter[Checkup](s.targets.BatchSize, s.store.InsertCheckups, onCommit)
	for i := int64(0); i < n; i++ {
		if err := w.Add(ctx, fab.Checkup(petIDs)); err != nil {
			return w.Total(), err
		}
	}
	err = w.Flush(ctx)
	return w.Total(), err
}

func (s *Seeder) seedReceipts(ctx context.Context, fab *Fabricator, n int64, onCommit func(int64)) (int64, error) {
	customerIDs, err := s.store.KeyIDs(ctx, TableCustomer)
	if err != nil {
		return 0, fmt.Errorf("load customer ids: %w", err)
	}
	if len(customerIDs) == 0 {
		return 0, ErrNoCustomers
	}
	if len(fab.refs.Receptionists) == 0 {
		return 0, ErrNoReceptionists
	}

	w := NewBatchWriter[Receipt](s.targets.BatchSize, s.store.InsertReceipts, onCommit)
	for i := int64(0); i < n; i++ {
		if err := w.Add(ctx, fab.Receipt(customerIDs)); err != nil {
			return w.Total(), err
		}
	}
	err = w.Flush(ctx)
	return w.Total(), err
}

func (s *Seeder) seedReceiptDetails(ctx context.Context, fab *Fabricator, _ int64, onCommit func(int64)) (int64, error) {
	receiptIDs, err := s.store.KeyIDs(ctx, TableReceipt)
	if err != nil {
		return 0, fmt.Errorf("load receipt ids: %w", err)
	}
	if len(receiptIDs) == 0 {
		return 0, ErrNoReceipts
	}
	petIDs, err := s.store.KeyIDs(ctx, TablePet)
	if err != nil {
		return 0, fmt.Errorf("load pet ids: %w", err)
	}

	w := NewBatchWriter[ReceiptDetail](s.targets.DetailBatchSize, s.store.InsertReceiptDetails, onCommit)
	for _, id := range receiptIDs {
		for _, item := range fab.ReceiptDetails(id, petIDs) {
			if err := w.Add(ctx, item); err != nil {
				return w.Total(), err
			}
		}
	}
	err = w.Flush(ctx)
	return w.Total(), err
}

// seedReviews reviews a random sample of completed receipts, at most one
// review per receipt.
func (s *Seeder) seedReviews(ctx context.Context, fab *Fabricator, _ int64, onCommit func(int64)) (int64, error) {
	ids, err := s.store.ReceiptIDsByStatus(ctx, ReceiptCompleted)
	if err != nil {
		return 0, fmt.Errorf("load completed receipts: %w", err)
	}
	if len(ids) == 0 {
		s.Reporter.Notice("No %s receipt to review", ReceiptCompleted)
		return 0, nil
	}

	shuffleIDs(s.src, ids)
	chosen := ids[:ReviewSampleSize(len(ids), s.targets.ReviewRatio)]

	w := NewBatchWriter[Review](s.targets.BatchSize, s.store.InsertReviews, onCommit)
	for _, id := range chosen {
		if err := w.Add(ctx, fab.Review(id)); err != nil {
			return w.Total(), err
		}
	}
	err = w.Flush(ctx)
	return w.Total(), err
}

// ReviewSampleSize is floor(completed * ratio), capped to completed.
func ReviewSampleSize(completed int, ratio float64) int {
	n := int(float64(completed) * ratio)
	return max(0, min(completed, n))
}
