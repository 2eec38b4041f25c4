// Package pgstore implements the seeding store on PostgreSQL through pgx.
// Every insert is a single COPY on an autocommit connection, so a batch is
// committed when the call returns.
package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ndhung1104/CSDLNC-09/internal/schema"
	"github.com/ndhung1104/CSDLNC-09/internal/seed"
)

// Conn is the subset of *pgx.Conn the store uses.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	conn Conn
}

var _ seed.Store = (*Store)(nil)

func New(conn Conn) *Store {
	return &Store{conn: conn}
}

func ident(table seed.Table) string {
	return pgx.Identifier{string(table)}.Sanitize()
}

func (s *Store) Count(ctx context.Context, table seed.Table) (int64, error) {
	var n int64
	if err := s.conn.QueryRow(ctx, "SELECT count(*) FROM "+ident(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// Counts returns the row count of every table, in the given order.
func (s *Store) Counts(ctx context.Context, tables []seed.Table) (map[seed.Table]int64, error) {
	counts := make(map[seed.Table]int64, len(tables))
	for _, t := range tables {
		n, err := s.Count(ctx, t)
		if err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, nil
}

// DatabaseSize returns the on-disk size of the connected database in bytes.
func (s *Store) DatabaseSize(ctx context.Context) (int64, error) {
	var n int64
	if err := s.conn.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&n); err != nil {
		return 0, fmt.Errorf("database size: %w", err)
	}
	return n, nil
}

func (s *Store) KeyIDs(ctx context.Context, table seed.Table) ([]int64, error) {
	col, ok := schema.KeyColumn(string(table))
	if !ok {
		return nil, fmt.Errorf("table %q has no single-column key", table)
	}
	key := pgx.Identifier{col}.Sanitize()
	rows, err := s.conn.Query(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", key, ident(table), key))
	if err != nil {
		return nil, fmt.Errorf("query %s ids: %w", table, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan %s ids: %w", table, err)
	}
	return ids, nil
}

func (s *Store) Employees(ctx context.Context) ([]seed.Employee, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT employee_id, COALESCE(employee_position, '')
		FROM employee
		ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (seed.Employee, error) {
		var e seed.Employee
		err := row.Scan(&e.ID, &e.Position)
		return e, err
	})
}

// SaleItems returns the sales products that join to a product, with their price.
func (s *Store) SaleItems(ctx context.Context) ([]seed.SaleItem, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT s.sales_product_id, p.product_id, s.sales_product_price
		FROM sales_product s
		JOIN product p ON p.product_id = s.sales_product_id
		ORDER BY s.sales_product_id`)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (seed.SaleItem, error) {
		var (
			item  seed.SaleItem
			price Numeric
		)
		if err := row.Scan(&item.SalesProductID, &item.ProductID, &price); err != nil {
			return item, err
		}
		d, err := price.Decimal()
		if err != nil {
			return item, fmt.Errorf("sales product %d price: %w", item.SalesProductID, err)
		}
		item.Price = d
		return item, nil
	})
}

func (s *Store) MaxCustomerSeq(ctx context.Context) (int64, error) {
	var n int64
	err := s.conn.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(substring(customer_email FROM '^user([0-9]+)@example\.com$') AS BIGINT)), 0)
		FROM customer`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max customer sequence: %w", err)
	}
	return n, nil
}

func (s *Store) ReceiptIDsByStatus(ctx context.Context, status string) ([]int64, error) {
	rows, err := s.conn.Query(ctx,
		"SELECT receipt_id FROM receipt WHERE receipt_status = $1 ORDER BY receipt_id", status)
	if err != nil {
		return nil, fmt.Errorf("query %s receipts: %w", status, err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// RunScript executes each batch with the simple protocol inside one
// transaction. Any failing batch rolls back the whole script.
func (s *Store) RunScript(ctx context.Context, batches []string) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for i, b := range batches {
		if _, err := tx.Exec(ctx, b); err != nil {
			return fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) copy(ctx context.Context, table seed.Table, columns []string, n int, row func(i int) []any) (int64, error) {
	written, err := s.conn.CopyFrom(ctx, pgx.Identifier{string(table)}, columns,
		pgx.CopyFromSlice(n, func(i int) ([]any, error) { return row(i), nil }))
	if err != nil {
		return written, fmt.Errorf("copy into %s: %w", table, err)
	}
	return written, nil
}

func (s *Store) InsertCustomers(ctx context.Context, batch []seed.Customer) (int64, error) {
	return s.copy(ctx, seed.TableCustomer, customerColumns, len(batch), func(i int) []any {
		c := batch[i]
		return []any{c.MembershipRankID, c.Name, c.Phone, c.Email, c.Password, c.Gender, c.Birthdate, c.Loyalty}
	})
}

func (s *Store) InsertPets(ctx context.Context, batch []seed.Pet) (int64, error) {
	return s.copy(ctx, seed.TablePet, petColumns, len(batch), func(i int) []any {
		p := batch[i]
		return []any{p.CustomerID, p.Name, p.BreedID, p.Gender, p.Birthdate, p.HealthStatus}
	})
}

func (s *Store) InsertCheckups(ctx context.Context, batch []seed.Checkup) (int64, error) {
	return s.copy(ctx, seed.TableCheckup, checkupColumns, len(batch), func(i int) []any {
		c := batch[i]
		return []any{c.MedicalServiceID, c.PetID, c.VetID, c.Symptoms, c.Diagnosis,
			c.PrescriptionAvailable, c.VisitDate, c.FollowUpVisit, c.Status}
	})
}

func (s *Store) InsertReceipts(ctx context.Context, batch []seed.Receipt) (int64, error) {
	return s.copy(ctx, seed.TableReceipt, receiptColumns, len(batch), func(i int) []any {
		r := batch[i]
		return []any{r.BranchID, r.CustomerID, r.ReceptionistID, r.CreatedAt,
			NumericFrom(r.TotalPrice), r.PaymentMethod, r.Status}
	})
}

func (s *Store) InsertReceiptDetails(ctx context.Context, batch []seed.ReceiptDetail) (int64, error) {
	return s.copy(ctx, seed.TableReceiptDetail, receiptDetailColumns, len(batch), func(i int) []any {
		d := batch[i]
		return []any{d.ItemID, d.ReceiptID, d.ProductID, d.PetID, d.Amount, NumericFrom(d.Price)}
	})
}

func (s *Store) InsertReviews(ctx context.Context, batch []seed.Review) (int64, error) {
	return s.copy(ctx, seed.TableReview, reviewColumns, len(batch), func(i int) []any {
		r := batch[i]
		return []any{r.ReceiptID, r.ServiceScore, r.StaffScore, r.OverallScore, r.Comment}
	})
}

func (s *Store) DeleteSpending(ctx context.Context) (int64, error) {
	tag, err := s.conn.Exec(ctx, "DELETE FROM "+ident(seed.TableCustomerSpending))
	if err != nil {
		return 0, fmt.Errorf("delete customer spending: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) SpendingByYear(ctx context.Context, status string) ([]seed.CustomerSpending, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT customer_id,
		       EXTRACT(YEAR FROM receipt_created_date)::int AS year,
		       SUM(receipt_total_price)
		FROM receipt
		WHERE receipt_status = $1
		GROUP BY customer_id, year
		ORDER BY customer_id, year`, status)
	if err != nil {
		return nil, fmt.Errorf("aggregate spending: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (seed.CustomerSpending, error) {
		var (
			cs    seed.CustomerSpending
			total Numeric
		)
		if err := row.Scan(&cs.CustomerID, &cs.Year, &total); err != nil {
			return cs, err
		}
		d, err := total.Decimal()
		if err != nil {
			return cs, fmt.Errorf("customer %d year %d: %w", cs.CustomerID, cs.Year, err)
		}
		cs.MoneySpent = d
		return cs, nil
	})
}

func (s *Store) InsertSpending(ctx context.Context, batch []seed.CustomerSpending) (int64, error) {
	return s.copy(ctx, seed.TableCustomerSpending, spendingColumns, len(batch), func(i int) []any {
		r := batch[i]
		return []any{r.CustomerID, r.Year, NumericFrom(r.MoneySpent)}
	})
}
