package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhung1104/CSDLNC-09/internal/seed"
)

func customer(email string) seed.Customer {
	return seed.Customer{MembershipRankID: 1, Name: "A", Phone: "0900000000", Email: email, Gender: "Male"}
}

func TestInsertCustomers_Keys(t *testing.T) {
	ctx := context.Background()
	st := New()
	st.LoadDemoMaster()

	n, err := st.InsertCustomers(ctx, []seed.Customer{customer("user1@example.com"), customer("user2@example.com")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, []int64{1, 2}, []int64{st.Customers()[0].ID, st.Customers()[1].ID})

	t.Run("duplicate email rejects whole batch", func(t *testing.T) {
		_, err := st.InsertCustomers(ctx, []seed.Customer{customer("user3@example.com"), customer("user1@example.com")})
		assert.ErrorContains(t, err, "unique customer_email")
		assert.Len(t, st.Customers(), 2)
	})

	t.Run("unknown rank", func(t *testing.T) {
		c := customer("user9@example.com")
		c.MembershipRankID = 99
		_, err := st.InsertCustomers(ctx, []seed.Customer{c})
		assert.ErrorContains(t, err, "membership_rank_id=99")
	})

	assert.Equal(t, 3, st.Writes(seed.TableCustomer))
}

func TestMaxCustomerSeq(t *testing.T) {
	ctx := context.Background()
	st := New()
	st.LoadDemoMaster()

	got, err := st.MaxCustomerSeq(ctx)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = st.InsertCustomers(ctx, []seed.Customer{
		customer("user7@example.com"),
		customer("user12@example.com"),
		customer("walk-in@clinic.vn"),
		customer("user99@example.org"),
	})
	require.NoError(t, err)

	got, err = st.MaxCustomerSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)
}

func TestInsertReceiptDetails_CompositeKey(t *testing.T) {
	ctx := context.Background()
	st := New()
	st.LoadDemoMaster()
	_, err := st.InsertCustomers(ctx, []seed.Customer{customer("user1@example.com")})
	require.NoError(t, err)
	_, err = st.InsertReceipts(ctx, []seed.Receipt{{
		BranchID: 1, CustomerID: 1, ReceptionistID: 1,
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), TotalPrice: decimal.NewFromInt(100),
		PaymentMethod: "cash", Status: seed.ReceiptCompleted,
	}})
	require.NoError(t, err)

	line := seed.ReceiptDetail{ItemID: 1, ReceiptID: 1, ProductID: 3, Amount: 2, Price: decimal.NewFromInt(75000)}
	_, err = st.InsertReceiptDetails(ctx, []seed.ReceiptDetail{line})
	require.NoError(t, err)

	_, err = st.InsertReceiptDetails(ctx, []seed.ReceiptDetail{line})
	assert.ErrorContains(t, err, "primary key (1, 1)")

	pet := int64(5)
	orphan := line
	orphan.ItemID = 2
	orphan.PetID = &pet
	_, err = st.InsertReceiptDetails(ctx, []seed.ReceiptDetail{orphan})
	assert.ErrorContains(t, err, "pet_id=5")
	assert.Len(t, st.ReceiptDetails(), 1)
}

func TestSpendingByYear(t *testing.T) {
	ctx := context.Background()
	st := New()
	st.LoadDemoMaster()
	_, err := st.InsertCustomers(ctx, []seed.Customer{customer("user1@example.com"), customer("user2@example.com")})
	require.NoError(t, err)

	receipt := func(customer int64, year int, total int64, status string) seed.Receipt {
		return seed.Receipt{
			BranchID: 1, CustomerID: customer, ReceptionistID: 1,
			CreatedAt:  time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
			TotalPrice: decimal.NewFromInt(total), PaymentMethod: "card", Status: status,
		}
	}
	_, err = st.InsertReceipts(ctx, []seed.Receipt{
		receipt(2, 2025, 300, seed.ReceiptCompleted),
		receipt(1, 2025, 100, seed.ReceiptCompleted),
		receipt(1, 2025, 50, seed.ReceiptCompleted),
		receipt(1, 2024, 70, seed.ReceiptCompleted),
		receipt(1, 2025, 999, seed.ReceiptCanceled),
	})
	require.NoError(t, err)

	rows, err := st.SpendingByYear(ctx, seed.ReceiptCompleted)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(1), rows[0].CustomerID)
	assert.Equal(t, 2024, rows[0].Year)
	assert.True(t, decimal.NewFromInt(70).Equal(rows[0].MoneySpent))
	assert.Equal(t, int64(1), rows[1].CustomerID)
	assert.Equal(t, 2025, rows[1].Year)
	assert.True(t, decimal.NewFromInt(150).Equal(rows[1].MoneySpent))
	assert.Equal(t, int64(2), rows[2].CustomerID)

	_, err = st.InsertSpending(ctx, rows)
	require.NoError(t, err)
	deleted, err := st.DeleteSpending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Empty(t, st.Spending())
}

func TestAddMaster_RejectsGeneratedTable(t *testing.T) {
	assert.Panics(t, func() { New().AddMaster(seed.TableCustomer, 1) })
}
