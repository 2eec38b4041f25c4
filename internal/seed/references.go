package seed

import (
	"context"
	"fmt"
	"strings"
)

// ReferenceReader reads primary-key sets and lookup rows from the store.
type ReferenceReader interface {
	// KeyIDs returns the primary keys of table in ascending order.
	KeyIDs(ctx context.Context, table Table) ([]int64, error)
	Employees(ctx context.Context) ([]Employee, error)
	SaleItems(ctx context.Context) ([]SaleItem, error)
}

// References are the master-data key pools fabricators draw foreign keys from.
type References struct {
	MembershipRanks []int64
	Breeds          []int64
	Branches        []int64
	SalesProducts   []int64
	MedicalServices []int64
	SaleItems       []SaleItem
	Receptionists   []int64
	Vets            []int64
}

// LoadReferences loads every master key pool and fails if any required
// pool is empty. Staff pools are checked later by the phases that need them.
func LoadReferences(ctx context.Context, r ReferenceReader) (*References, error) {
	refs := &References{}

	pools := []struct {
		table Table
		dst   *[]int64
	}{
		{TableMembershipRank, &refs.MembershipRanks},
		{TablePetBreed, &refs.Breeds},
		{TableBranch, &refs.Branches},
		{TableSalesProduct, &refs.SalesProducts},
		{TableMedicalService, &refs.MedicalServices},
	}
	for _, p := range pools {
		ids, err := r.KeyIDs(ctx, p.table)
		if err != nil {
			return nil, fmt.Errorf("load %s ids: %w", p.table, err)
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("%s is empty: %w", p.table, ErrMissingMasterData)
		}
		*p.dst = ids
	}

	items, err := r.SaleItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoSaleItems
	}
	refs.SaleItems = items

	employees, err := r.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	refs.Receptionists, refs.Vets = PartitionStaff(employees)

	return refs, nil
}

// PartitionStaff splits employees into the front-desk pool (receptionists
// and sales) and the vet pool. Other positions land in neither.
func PartitionStaff(employees []Employee) (frontDesk, vets []int64) {
	for _, e := range employees {
		switch strings.TrimSpace(e.Position) {
		case PositionReceptionist, PositionSales:
			frontDesk = append(frontDesk, e.ID)
		case PositionVet:
			vets = append(vets, e.ID)
		}
	}
	return frontDesk, vets
}
