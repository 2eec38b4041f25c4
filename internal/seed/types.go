package seed

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table names a table in the clinic store.
type Table string

const (
	TableMembershipRank   Table = "membership_rank"
	TablePetBreed         Table = "pet_breed"
	TableBranch           Table = "branch"
	TableProduct          Table = "product"
	TableSalesProduct     Table = "sales_product"
	TableMedicalService   Table = "medical_service"
	TableEmployee         Table = "employee"
	TableCustomer         Table = "customer"
	TablePet              Table = "pet"
	TableCheckup          Table = "check_up"
	TableReceipt          Table = "receipt"
	TableReceiptDetail    Table = "receipt_detail"
	TableCustomerSpending Table = "customer_spending"
	TableReview           Table = "review"
)

// MasterTables are the lookup tables the bootstrap script fills. Generated
// entities only ever reference them.
var MasterTables = []Table{
	TableMembershipRank,
	TablePetBreed,
	TableBranch,
	TableProduct,
	TableSalesProduct,
	TableMedicalService,
	TableEmployee,
}

// Staff positions as stored in employee.employee_position.
const (
	PositionReceptionist = "RECEP"
	PositionSales        = "SALES"
	PositionVet          = "VET"
)

// Receipt statuses. Only completed receipts count towards spending and get reviews.
const (
	ReceiptCompleted = "completed"
	ReceiptPending   = "pending"
	ReceiptCanceled  = "canceled"
)

type Customer struct {
	ID               int64
	MembershipRankID int64
	Name             string
	Phone            string
	Email            string
	Password         *string
	Gender           string
	Birthdate        time.Time
	Loyalty          int
}

type Pet struct {
	ID           int64
	CustomerID   int64
	Name         string
	BreedID      int64
	Gender       string
	Birthdate    time.Time
	HealthStatus string
}

type Checkup struct {
	ID                    int64
	MedicalServiceID      int64
	PetID                 int64
	VetID                 int64
	Symptoms              string
	Diagnosis             string
	PrescriptionAvailable bool
	VisitDate             time.Time
	FollowUpVisit         *time.Time
	Status                string
}

type Receipt struct {
	ID             int64
	BranchID       int64
	CustomerID     int64
	ReceptionistID int64
	CreatedAt      time.Time
	TotalPrice     decimal.Decimal
	PaymentMethod  string
	Status         string
}

// ReceiptDetail is one line item. ItemID is sequential within its receipt only.
type ReceiptDetail struct {
	ItemID    int
	ReceiptID int64
	ProductID int64
	PetID     *int64
	Amount    int
	Price     decimal.Decimal
}

// CustomerSpending is the derived yearly total of a customer's completed receipts.
type CustomerSpending struct {
	CustomerID int64
	Year       int
	MoneySpent decimal.Decimal
}

type Review struct {
	ID           int64
	ReceiptID    int64
	ServiceScore int
	StaffScore   int
	OverallScore int
	Comment      string
}

type Employee struct {
	ID       int64
	Position string
}

// SaleItem is a sellable catalog entry with the price copied onto line items.
type SaleItem struct {
	SalesProductID int64
	ProductID      int64
	Price          decimal.Decimal
}
