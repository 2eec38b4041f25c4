// Package memstore keeps the clinic tables in memory. It backs dry runs
// and tests of the seeding pipeline, and enforces the foreign keys and
// unique keys the real schema declares.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ndhung1104/CSDLNC-09/internal/seed"
)

type idSet map[int64]struct{}

func (s idSet) has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Store is an in-memory seed.Store. Generated rows get sequential ids
// starting at 1, like SERIAL columns.
type Store struct {
	master    map[seed.Table]idSet
	employees []seed.Employee
	saleItems []seed.SaleItem

	customers []seed.Customer
	pets      []seed.Pet
	checkups  []seed.Checkup
	receipts  []seed.Receipt
	details   []seed.ReceiptDetail
	spending  []seed.CustomerSpending
	reviews   []seed.Review

	emails      map[string]struct{}
	detailKeys  map[[2]int64]struct{}
	reviewed    idSet
	writeCounts map[seed.Table]int

	// Scripts records every batch list passed to RunScript.
	Scripts [][]string
	// OnScript stands in for executing SQL; it is called by RunScript.
	OnScript func(s *Store, batches []string) error
}

func New() *Store {
	st := &Store{
		master:      make(map[seed.Table]idSet),
		emails:      make(map[string]struct{}),
		detailKeys:  make(map[[2]int64]struct{}),
		reviewed:    make(idSet),
		writeCounts: make(map[seed.Table]int),
	}
	for _, t := range seed.MasterTables {
		st.master[t] = make(idSet)
	}
	return st
}

// AddMaster registers lookup keys for one of seed.MasterTables.
func (s *Store) AddMaster(table seed.Table, ids ...int64) {
	set, ok := s.master[table]
	if !ok {
		panic(fmt.Sprintf("memstore: %s is not a master table", table))
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

// AddEmployee registers a staff member with the given position.
func (s *Store) AddEmployee(id int64, position string) {
	s.AddMaster(seed.TableEmployee, id)
	s.employees = append(s.employees, seed.Employee{ID: id, Position: position})
}

// AddSaleItem registers a product that is also a sales product.
func (s *Store) AddSaleItem(id int64, price decimal.Decimal) {
	s.AddMaster(seed.TableProduct, id)
	s.AddMaster(seed.TableSalesProduct, id)
	s.saleItems = append(s.saleItems, seed.SaleItem{SalesProductID: id, ProductID: id, Price: price})
}

// LoadDemoMaster fills every master table with a small fixed data set.
func (s *Store) LoadDemoMaster() {
	s.AddMaster(seed.TableMembershipRank, 1, 2, 3)
	for id := int64(1); id <= 12; id++ {
		s.AddMaster(seed.TablePetBreed, id)
	}
	s.AddMaster(seed.TableBranch, 1, 2, 3, 4, 5)
	for id := int64(1); id <= 8; id++ {
		s.AddMaster(seed.TableMedicalService, id)
	}
	for id := int64(1); id <= 20; id++ {
		s.AddSaleItem(id, decimal.NewFromInt(25000*id))
	}
	positions := []string{seed.PositionReceptionist, seed.PositionSales, seed.PositionVet, seed.PositionVet, "MANAGER"}
	for i, p := range positions {
		s.AddEmployee(int64(i+1), p)
	}
}

func (s *Store) Count(_ context.Context, table seed.Table) (int64, error) {
	if set, ok := s.master[table]; ok {
		return int64(len(set)), nil
	}
	switch table {
	case seed.TableCustomer:
		return int64(len(s.customers)), nil
	case seed.TablePet:
		return int64(len(s.pets)), nil
	case seed.TableCheckup:
		return int64(len(s.checkups)), nil
	case seed.TableReceipt:
		return int64(len(s.receipts)), nil
	case seed.TableReceiptDetail:
		return int64(len(s.details)), nil
	case seed.TableCustomerSpending:
		return int64(len(s.spending)), nil
	case seed.TableReview:
		return int64(len(s.reviews)), nil
	}
	return 0, fmt.Errorf("unknown table %q", table)
}

func (s *Store) KeyIDs(_ context.Context, table seed.Table) ([]int64, error) {
	if set, ok := s.master[table]; ok {
		return set.sorted(), nil
	}
	switch table {
	case seed.TableCustomer:
		return sequence(len(s.customers)), nil
	case seed.TablePet:
		return sequence(len(s.pets)), nil
	case seed.TableCheckup:
		return sequence(len(s.checkups)), nil
	case seed.TableReceipt:
		return sequence(len(s.receipts)), nil
	case seed.TableReview:
		return sequence(len(s.reviews)), nil
	}
	return nil, fmt.Errorf("table %q has no single-column key", table)
}

func sequence(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

func (s *Store) Employees(context.Context) ([]seed.Employee, error) {
	return slices.Clone(s.employees), nil
}

func (s *Store) SaleItems(context.Context) ([]seed.SaleItem, error) {
	return slices.Clone(s.saleItems), nil
}

var customerEmailRe = regexp.MustCompile(`^user([0-9]+)@example\.com$`)

func (s *Store) MaxCustomerSeq(context.Context) (int64, error) {
	var maxSeq int64
	for _, c := range s.customers {
		m := customerEmailRe.FindStringSubmatch(c.Email)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		maxSeq = max(maxSeq, n)
	}
	return maxSeq, nil
}

func (s *Store) ReceiptIDsByStatus(_ context.Context, status string) ([]int64, error) {
	var ids []int64
	for _, r := range s.receipts {
		if r.Status == status {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (s *Store) RunScript(_ context.Context, batches []string) error {
	s.Scripts = append(s.Scripts, slices.Clone(batches))
	if s.OnScript == nil {
		return nil
	}
	return s.OnScript(s, batches)
}

// Writes reports how many insert calls reached table.
func (s *Store) Writes(table seed.Table) int {
	return s.writeCounts[table]
}

func (s *Store) exists(table seed.Table, id int64) bool {
	if set, ok := s.master[table]; ok {
		return set.has(id)
	}
	var n int
	switch table {
	case seed.TableCustomer:
		n = len(s.customers)
	case seed.TablePet:
		n = len(s.pets)
	case seed.TableReceipt:
		n = len(s.receipts)
	}
	return id >= 1 && id <= int64(n)
}

func fkError(table seed.Table, column string, id int64) error {
	return fmt.Errorf("insert into %s violates foreign key %s=%d", table, column, id)
}

// The insert methods validate the whole batch before appending any row,
// so a failed batch leaves the table unchanged.

func (s *Store) InsertCustomers(_ context.Context, batch []seed.Customer) (int64, error) {
	s.writeCounts[seed.TableCustomer]++
	seen := make(map[string]struct{}, len(batch))
	for _, c := range batch {
		if !s.exists(seed.TableMembershipRank, c.MembershipRankID) {
			return 0, fkError(seed.TableCustomer, "membership_rank_id", c.MembershipRankID)
		}
		_, dup := s.emails[c.Email]
		_, dupBatch := seen[c.Email]
		if dup || dupBatch {
			return 0, fmt.Errorf("insert into customer violates unique customer_email=%s", c.Email)
		}
		seen[c.Email] = struct{}{}
	}
	for _, c := range batch {
		c.ID = int64(len(s.customers) + 1)
		s.customers = append(s.customers, c)
		s.emails[c.Email] = struct{}{}
	}
	return int64(len(batch)), nil
}

func (s *Store) InsertPets(_ context.Context, batch []seed.Pet) (int64, error) {
	s.writeCounts[seed.TablePet]++
	for _, p := range batch {
		if !s.exists(seed.TableCustomer, p.CustomerID) {
			return 0, fkError(seed.TablePet, "customer_id", p.CustomerID)
		}
		if !s.exists(seed.TablePetBreed, p.BreedID) {
			return 0, fkError(seed.TablePet, "breed_id", p.BreedID)
		}
	}
	for _, p := range batch {
		p.ID = int64(len(s.pets) + 1)
		s.pets = append(s.pets, p)
	}
	return int64(len(batch)), nil
}

func (s *Store) InsertCheckups(_ context.Context, batch []seed.Checkup) (int64, error) {
	s.writeCounts[seed.TableCheckup]++
	for _, c := range batch {
		switch {
		case !s.exists(seed.TablePet, c.PetID):
			return 0, fkError(seed.TableCheckup, "pet_id", c.PetID)
		case !s.exists(seed.TableEmployee, c.VetID):
			return 0, fkError(seed.TableCheckup, "vet_id", c.VetID)
		case !s.exists(seed.TableMedicalService, c.MedicalServiceID):
			return 0, fkError(seed.TableCheckup, "medical_service_id", c.MedicalServiceID)
		}
	}
	for _, c := range batch {
		c.ID = int64(len(s.checkups) + 1)
		s.checkups = append(s.checkups, c)
	}
	return int64(len(batch)), nil
}

func (s *Store) InsertReceipts(_ context.Context, batch []seed.Receipt) (int64, error) {
	s.writeCounts[seed.TableReceipt]++
	for _, r := range batch {
		switch {
		case !s.exists(seed.TableCustomer, r.CustomerID):
			return 0, fkError(seed.TableReceipt, "customer_id", r.CustomerID)
		case !s.exists(seed.TableBranch, r.BranchID):
			return 0, fkError(seed.TableReceipt, "branch_id", r.BranchID)
		case !s.exists(seed.TableEmployee, r.ReceptionistID):
			return 0, fkError(seed.TableReceipt, "receptionist_id", r.ReceptionistID)
		}
	}
	for _, r := range batch {
		r.ID = int64(len(s.receipts) + 1)
		s.receipts = append(s.receipts, r)
	}
	return int64(len(batch)), nil
}

func (s *Store) InsertReceiptDetails(_ context.Context, batch []seed.ReceiptDetail) (int64, error) {
	s.writeCounts[seed.TableReceiptDetail]++
	seen := make(map[[2]int64]struct{}, len(batch))
	for _, d := range batch {
		switch {
		case !s.exists(seed.TableReceipt, d.ReceiptID):
			return 0, fkError(seed.TableReceiptDetail, "receipt_id", d.ReceiptID)
		case !s.exists(seed.TableProduct, d.ProductID):
			return 0, fkError(seed.TableReceiptDetail, "product_id", d.ProductID)
		case d.PetID != nil && !s.exists(seed.TablePet, *d.PetID):
			return 0, fkError(seed.TableReceiptDetail, "pet_id", *d.PetID)
		}
		key := [2]int64{d.ReceiptID, int64(d.ItemID)}
		_, dup := s.detailKeys[key]
		_, dupBatch := seen[key]
		if dup || dupBatch {
			return 0, fmt.Errorf("insert into receipt_detail violates primary key (%d, %d)", d.ReceiptID, d.ItemID)
		}
		seen[key] = struct{}{}
	}
	for _, d := range batch {
		s.details = append(s.details, d)
		s.detailKeys[[2]int64{d.ReceiptID, int64(d.ItemID)}] = struct{}{}
	}
	return int64(len(batch)), nil
}

func (s *Store) InsertReviews(_ context.Context, batch []seed.Review) (int64, error) {
	s.writeCounts[seed.TableReview]++
	seen := make(idSet, len(batch))
	for _, r := range batch {
		if !s.exists(seed.TableReceipt, r.ReceiptID) {
			return 0, fkError(seed.TableReview, "receipt_id", r.ReceiptID)
		}
		if s.reviewed.has(r.ReceiptID) || seen.has(r.ReceiptID) {
			return 0, fmt.Errorf("insert into review violates unique receipt_id=%d", r.ReceiptID)
		}
		seen[r.ReceiptID] = struct{}{}
	}
	for _, r := range batch {
		r.ID = int64(len(s.reviews) + 1)
		s.reviews = append(s.reviews, r)
		s.reviewed[r.ReceiptID] = struct{}{}
	}
	return int64(len(batch)), nil
}

func (s *Store) DeleteSpending(context.Context) (int64, error) {
	n := int64(len(s.spending))
	s.spending = nil
	return n, nil
}

func (s *Store) SpendingByYear(_ context.Context, status string) ([]seed.CustomerSpending, error) {
	type key struct {
		customer int64
		year     int
	}
	totals := make(map[key]decimal.Decimal)
	for _, r := range s.receipts {
		if r.Status != status {
			continue
		}
		k := key{r.CustomerID, r.CreatedAt.Year()}
		totals[k] = totals[k].Add(r.TotalPrice)
	}

	rows := make([]seed.CustomerSpending, 0, len(totals))
	for k, v := range totals {
		rows = append(rows, seed.CustomerSpending{CustomerID: k.customer, Year: k.year, MoneySpent: v})
	}
	slices.SortFunc(rows, func(a, b seed.CustomerSpending) int {
		return cmp.Or(cmp.Compare(a.CustomerID, b.CustomerID), cmp.Compare(a.Year, b.Year))
	})
	return rows, nil
}

func (s *Store) InsertSpending(_ context.Context, batch []seed.CustomerSpending) (int64, error) {
	s.writeCounts[seed.TableCustomerSpending]++
	for _, row := range batch {
		if !s.exists(seed.TableCustomer, row.CustomerID) {
			return 0, fkError(seed.TableCustomerSpending, "customer_id", row.CustomerID)
		}
	}
	s.spending = append(s.spending, batch...)
	return int64(len(batch)), nil
}

// ── Snapshots for assertions and dry-run reports ──

func (s *Store) Customers() []seed.Customer { return slices.Clone(s.customers) }
func (s *Store) Pets() []seed.Pet { return slices.Clone(s.pets) }
func (s *Store) Checkups() []seed.Checkup { return slices.Clone(s.checkups) }
func (s *Store) Receipts() []seed.Receipt { return slices.Clone(s.receipts) }
func (s *Store) ReceiptDetails() []seed.ReceiptDetail { return slices.Clone(s.details) }
func (s *Store) Spending() []seed.CustomerSpending { return slices.Clone(s.spending) }
func (s *Store) Reviews() []seed.Review { return slices.Clone(s.reviews) }

// UpdateReceiptStatus changes a receipt's status in place.
func (s *Store) UpdateReceiptStatus(id int64, status string) error {
	if !s.exists(seed.TableReceipt, id) {
		return fmt.Errorf("receipt %d not found", id)
	}
	s.receipts[id-1].Status = status
	return nil
}
