package pgstore

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhung1104/CSDLNC-09/internal/config"
	"github.com/ndhung1104/CSDLNC-09/internal/schema"
	"github.com/ndhung1104/CSDLNC-09/internal/seed"
)

func TestNumericFrom(t *testing.T) {
	n := NumericFrom(decimal.RequireFromString("1234.50"))
	assert.True(t, n.Valid)
	assert.Equal(t, big.NewInt(123450), n.Int)
	assert.Equal(t, int32(-2), n.Exp)

	back, err := n.Decimal()
	require.NoError(t, err)
	assert.True(t, back.Equal(decimal.RequireFromString("1234.5")))
}

func TestNumeric_Decimal(t *testing.T) {
	d, err := Numeric{pgtype.Numeric{Int: big.NewInt(5), Exp: 6, Valid: true}}.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "5000000", d.String())

	d, err = Numeric{pgtype.Numeric{Valid: true}}.Decimal()
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	for _, n := range []pgtype.Numeric{
		{},
		{Valid: true, NaN: true},
		{Valid: true, InfinityModifier: pgtype.Infinity},
	} {
		_, err := Numeric{n}.Decimal()
		assert.ErrorIs(t, err, errNotFinite)
	}
}

func TestCopyColumnsExistInSchema(t *testing.T) {
	lists := map[seed.Table][]string{
		seed.TableCustomer:         customerColumns,
		seed.TablePet:              petColumns,
		seed.TableCheckup:          checkupColumns,
		seed.TableReceipt:          receiptColumns,
		seed.TableReceiptDetail:    receiptDetailColumns,
		seed.TableReview:           reviewColumns,
		seed.TableCustomerSpending: spendingColumns,
	}
	for table, cols := range lists {
		tmpl, ok := schema.Lookup(string(table))
		require.True(t, ok, "no template for %s", table)

		known := map[string]bool{}
		for _, c := range tmpl.Columns {
			known[c.Name] = true
		}
		for _, c := range cols {
			assert.True(t, known[c], "%s.%s is not in the schema", table, c)
		}
	}
}

// TestStore_Postgres runs the seeding pipeline against a real database. It
// needs an empty database reachable through SEED_TEST_DSN.
func TestStore_Postgres(t *testing.T) {
	dsn := os.Getenv("SEED_TEST_DSN")
	if dsn == "" {
		t.Skip("SEED_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close(ctx)

	st := New(conn)
	require.NoError(t, st.RunScript(ctx, schema.CreateStatements()))

	targets := config.Defaults()
	targets.Customers, targets.Checkups, targets.Receipts = 50, 60, 80
	s := seed.New(st, gofakeit.New(99), targets)
	s.Script = func() ([]string, error) { return schema.LoadMaster("") }

	_, err = s.Run(ctx)
	require.NoError(t, err)

	n, err := st.Count(ctx, seed.TableCustomer)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(50))

	seq, err := st.MaxCustomerSeq(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seq, int64(50))

	first, err := st.SpendingByYear(ctx, seed.ReceiptCompleted)
	require.NoError(t, err)
	_, err = s.RebuildSpending(ctx, nil)
	require.NoError(t, err)
	second, err := st.SpendingByYear(ctx, seed.ReceiptCompleted)
	require.NoError(t, err)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].CustomerID, second[i].CustomerID)
		assert.True(t, first[i].MoneySpent.Equal(second[i].MoneySpent))
	}
}
