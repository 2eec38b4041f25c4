// Package schema describes the clinic tables: their columns, keys and
// foreign keys, the DDL that creates them and the default master-data
// script.
package schema

// TableTemplate defines a table's schema for DDL generation.
type TableTemplate struct {
	Name        string
	Tier        int // 0=no FKs, 1-4=increasing dependency depth
	Master      bool
	PrimaryKey  []string
	Columns     []ColumnDef
	Indexes     []IndexDef
	ForeignKeys []FKDef
	Checks      []string
}

// ColumnDef defines a single column.
type ColumnDef struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	Unique   bool
}

// IndexDef defines an index.
type IndexDef struct {
	Name    string
	Columns []string
	Unique  bool
}

// FKDef defines a foreign key reference.
type FKDef struct {
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string
}

// Tables returns every clinic table. The order is not significant; use
// Ordered for creation order.
func Tables() []TableTemplate {
	return []TableTemplate{
		// ── Tier 0: master data without foreign keys ──
		{
			Name: "membership_rank", Tier: 0, Master: true,
			PrimaryKey: []string{"membership_rank_id"},
			Columns: []ColumnDef{
				{Name: "membership_rank_id", Type: "SERIAL"},
				{Name: "rank_name", Type: "VARCHAR(50)", Unique: true},
				{Name: "min_spending", Type: "NUMERIC(18,2)", Default: "0"},
			},
		},
		{
			Name: "pet_breed", Tier: 0, Master: true,
			PrimaryKey: []string{"breed_id"},
			Columns: []ColumnDef{
				{Name: "breed_id", Type: "SERIAL"},
				{Name: "breed_name", Type: "VARCHAR(100)"},
				{Name: "species", Type: "VARCHAR(50)"},
			},
		},
		{
			Name: "branch", Tier: 0, Master: true,
			PrimaryKey: []string{"branch_id"},
			Columns: []ColumnDef{
				{Name: "branch_id", Type: "SERIAL"},
				{Name: "branch_name", Type: "VARCHAR(100)"},
				{Name: "branch_address", Type: "VARCHAR(255)"},
				{Name: "branch_phone", Type: "VARCHAR(15)"},
			},
		},
		{
			Name: "product", Tier: 0, Master: true,
			PrimaryKey: []string{"product_id"},
			Columns: []ColumnDef{
				{Name: "product_id", Type: "SERIAL"},
				{Name: "product_name", Type: "VARCHAR(150)"},
				{Name: "product_type", Type: "VARCHAR(50)"},
			},
		},
		{
			Name: "medical_service", Tier: 0, Master: true,
			PrimaryKey: []string{"medical_service_id"},
			Columns: []ColumnDef{
				{Name: "medical_service_id", Type: "SERIAL"},
				{Name: "service_name", Type: "VARCHAR(100)"},
				{Name: "service_price", Type: "NUMERIC(18,2)"},
			},
		},

		// ── Tier 1: master data referencing tier 0 ──
		{
			Name: "sales_product", Tier: 1, Master: true,
			PrimaryKey: []string{"sales_product_id"},
			Columns: []ColumnDef{
				{Name: "sales_product_id", Type: "INTEGER"},
				{Name: "sales_product_price", Type: "NUMERIC(18,2)"},
				{Name: "stock_quantity", Type: "INTEGER", Default: "0"},
			},
			ForeignKeys: []FKDef{
				{Column: "sales_product_id", RefTable: "product", RefColumn: "product_id", OnDelete: "CASCADE"},
			},
			Checks: []string{"sales_product_price >= 0"},
		},
		{
			Name: "employee", Tier: 1, Master: true,
			PrimaryKey: []string{"employee_id"},
			Columns: []ColumnDef{
				{Name: "employee_id", Type: "SERIAL"},
				{Name: "branch_id", Type: "INTEGER", Nullable: true},
				{Name: "employee_name", Type: "VARCHAR(100)"},
				{Name: "employee_position", Type: "VARCHAR(10)"},
			},
			ForeignKeys: []FKDef{
				{Column: "branch_id", RefTable: "branch", RefColumn: "branch_id", OnDelete: "SET NULL"},
			},
		},
		{
			Name: "customer", Tier: 1,
			PrimaryKey: []string{"customer_id"},
			Columns: []ColumnDef{
				{Name: "customer_id", Type: "SERIAL"},
				{Name: "membership_rank_id", Type: "INTEGER"},
				{Name: "customer_name", Type: "VARCHAR(100)"},
				{Name: "customer_phone", Type: "VARCHAR(15)"},
				{Name: "customer_email", Type: "VARCHAR(100)", Unique: true},
				{Name: "customer_password", Type: "VARCHAR(100)", Nullable: true},
				{Name: "customer_gender", Type: "VARCHAR(10)"},
				{Name: "customer_birthdate", Type: "DATE"},
				{Name: "customer_loyalty", Type: "INTEGER", Default: "0"},
			},
			ForeignKeys: []FKDef{
				{Column: "membership_rank_id", RefTable: "membership_rank", RefColumn: "membership_rank_id"},
			},
			Checks: []string{"customer_gender IN ('Male', 'Female')", "customer_loyalty >= 0"},
		},

		// ── Tier 2 ──
		{
			Name: "pet", Tier: 2,
			PrimaryKey: []string{"pet_id"},
			Columns: []ColumnDef{
				{Name: "pet_id", Type: "SERIAL"},
				{Name: "customer_id", Type: "INTEGER"},
				{Name: "pet_name", Type: "VARCHAR(100)"},
				{Name: "pet_breed_id", Type: "INTEGER"},
				{Name: "pet_gender", Type: "VARCHAR(10)"},
				{Name: "pet_birthdate", Type: "DATE"},
				{Name: "pet_health_status", Type: "VARCHAR(50)"},
			},
			ForeignKeys: []FKDef{
				{Column: "customer_id", RefTable: "customer", RefColumn: "customer_id", OnDelete: "CASCADE"},
				{Column: "pet_breed_id", RefTable: "pet_breed", RefColumn: "breed_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_pet_customer_id", Columns: []string{"customer_id"}},
			},
			Checks: []string{"pet_gender IN ('Male', 'Female')"},
		},
		{
			Name: "receipt", Tier: 2,
			PrimaryKey: []string{"receipt_id"},
			Columns: []ColumnDef{
				{Name: "receipt_id", Type: "SERIAL"},
				{Name: "branch_id", Type: "INTEGER"},
				{Name: "customer_id", Type: "INTEGER"},
				{Name: "receptionist_id", Type: "INTEGER"},
				{Name: "receipt_created_date", Type: "TIMESTAMP"},
				{Name: "receipt_total_price", Type: "NUMERIC(18,2)"},
				{Name: "receipt_payment_method", Type: "VARCHAR(20)"},
				{Name: "receipt_status", Type: "VARCHAR(20)"},
			},
			ForeignKeys: []FKDef{
				{Column: "branch_id", RefTable: "branch", RefColumn: "branch_id"},
				{Column: "customer_id", RefTable: "customer", RefColumn: "customer_id", OnDelete: "CASCADE"},
				{Column: "receptionist_id", RefTable: "employee", RefColumn: "employee_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_receipt_customer_id", Columns: []string{"customer_id"}},
				{Name: "idx_receipt_status", Columns: []string{"receipt_status"}},
			},
			Checks: []string{
				"receipt_status IN ('completed', 'pending', 'canceled')",
				"receipt_payment_method IN ('cash', 'card', 'bank_transfer')",
				"receipt_total_price >= 0",
			},
		},
		{
			Name: "customer_spending", Tier: 2,
			PrimaryKey: []string{"customer_id", "year"},
			Columns: []ColumnDef{
				{Name: "customer_id", Type: "INTEGER"},
				{Name: "year", Type: "INTEGER"},
				{Name: "money_spent", Type: "NUMERIC(18,2)"},
			},
			ForeignKeys: []FKDef{
				{Column: "customer_id", RefTable: "customer", RefColumn: "customer_id", OnDelete: "CASCADE"},
			},
		},

		// ── Tier 3 ──
		{
			Name: "check_up", Tier: 3,
			PrimaryKey: []string{"check_up_id"},
			Columns: []ColumnDef{
				{Name: "check_up_id", Type: "SERIAL"},
				{Name: "medical_service", Type: "INTEGER"},
				{Name: "pet_id", Type: "INTEGER"},
				{Name: "vet_id", Type: "INTEGER"},
				{Name: "symptoms", Type: "VARCHAR(255)"},
				{Name: "diagnosis", Type: "VARCHAR(255)"},
				{Name: "prescription_available", Type: "BOOLEAN", Default: "FALSE"},
				{Name: "check_up_date", Type: "TIMESTAMP"},
				{Name: "follow_up_visit", Type: "TIMESTAMP", Nullable: true},
				{Name: "status", Type: "VARCHAR(20)"},
			},
			ForeignKeys: []FKDef{
				{Column: "medical_service", RefTable: "medical_service", RefColumn: "medical_service_id"},
				{Column: "pet_id", RefTable: "pet", RefColumn: "pet_id", OnDelete: "CASCADE"},
				{Column: "vet_id", RefTable: "employee", RefColumn: "employee_id"},
			},
			Checks: []string{"status IN ('pending', 'completed')", "follow_up_visit IS NULL OR follow_up_visit > check_up_date"},
		},
		{
			Name: "receipt_detail", Tier: 3,
			PrimaryKey: []string{"receipt_id", "receipt_item_id"},
			Columns: []ColumnDef{
				{Name: "receipt_item_id", Type: "INTEGER"},
				{Name: "receipt_id", Type: "INTEGER"},
				{Name: "product_id", Type: "INTEGER"},
				{Name: "pet_id", Type: "INTEGER", Nullable: true},
				{Name: "receipt_item_amount", Type: "INTEGER"},
				{Name: "receipt_item_price", Type: "NUMERIC(18,2)"},
			},
			ForeignKeys: []FKDef{
				{Column: "receipt_id", RefTable: "receipt", RefColumn: "receipt_id", OnDelete: "CASCADE"},
				{Column: "product_id", RefTable: "product", RefColumn: "product_id"},
				{Column: "pet_id", RefTable: "pet", RefColumn: "pet_id", OnDelete: "SET NULL"},
			},
			Checks: []string{"receipt_item_amount > 0"},
		},
		{
			Name: "review", Tier: 3,
			PrimaryKey: []string{"review_id"},
			Columns: []ColumnDef{
				{Name: "review_id", Type: "SERIAL"},
				{Name: "receipt_id", Type: "INTEGER", Unique: true},
				{Name: "service_score", Type: "INTEGER"},
				{Name: "staff_score", Type: "INTEGER"},
				{Name: "overall_score", Type: "INTEGER"},
				{Name: "comment", Type: "VARCHAR(500)", Nullable: true},
			},
			ForeignKeys: []FKDef{
				{Column: "receipt_id", RefTable: "receipt", RefColumn: "receipt_id", OnDelete: "CASCADE"},
			},
			Checks: []string{
				"service_score BETWEEN 0 AND 10",
				"staff_score BETWEEN 0 AND 10",
				"overall_score BETWEEN 0 AND 10",
			},
		},
	}
}

// Lookup returns the template named name.
func Lookup(name string) (TableTemplate, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return TableTemplate{}, false
}

// KeyColumn returns the single primary-key column of table. Tables with a
// composite key report false.
func KeyColumn(table string) (string, bool) {
	t, ok := Lookup(table)
	if !ok || len(t.PrimaryKey) != 1 {
		return "", false
	}
	return t.PrimaryKey[0], true
}
