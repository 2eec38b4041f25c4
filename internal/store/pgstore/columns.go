package pgstore

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// COPY column lists. Generated keys are left to their SERIAL defaults.
var (
	customerColumns = []string{
		"membership_rank_id", "customer_name", "customer_phone", "customer_email",
		"customer_password", "customer_gender", "customer_birthdate", "customer_loyalty",
	}
	petColumns = []string{
		"customer_id", "pet_name", "pet_breed_id", "pet_gender", "pet_birthdate", "pet_health_status",
	}
	checkupColumns = []string{
		"medical_service", "pet_id", "vet_id", "symptoms", "diagnosis",
		"prescription_available", "check_up_date", "follow_up_visit", "status",
	}
	receiptColumns = []string{
		"branch_id", "customer_id", "receptionist_id", "receipt_created_date",
		"receipt_total_price", "receipt_payment_method", "receipt_status",
	}
	receiptDetailColumns = []string{
		"receipt_item_id", "receipt_id", "product_id", "pet_id", "receipt_item_amount", "receipt_item_price",
	}
	reviewColumns = []string{
		"receipt_id", "service_score", "staff_score", "overall_score", "comment",
	}
	spendingColumns = []string{
		"customer_id", "year", "money_spent",
	}
)

var errNotFinite = errors.New("numeric value is NULL, NaN or infinite")

// Numeric is a pgtype.Numeric that converts to and from decimal.Decimal.
type Numeric struct {
	pgtype.Numeric
}

// NumericFrom encodes d exactly as coefficient and exponent.
func NumericFrom(d decimal.Decimal) Numeric {
	return Numeric{pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}}
}

func (n Numeric) Decimal() (decimal.Decimal, error) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Decimal{}, errNotFinite
	}
	if n.Int == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
