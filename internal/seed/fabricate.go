package seed

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	prescriptionProbability = 0.7
	followUpProbability     = 0.3
	minFollowUpDays         = 7
	maxFollowUpDays         = 30

	minReceiptTotal = 50000
	maxReceiptTotal = 5000000

	maxItemQuantity = 5
	// nullPetSlots widens the pet pool with empty picks so line items
	// often carry no pet.
	nullPetSlots = 5

	minSubScore     = 6
	maxSubScore     = 10
	maxJitter       = 1
	minOverallScore = 0
	maxOverallScore = 10
	// goodScore is the overall score from which a positive comment is picked.
	goodScore = 7
)

// Fabricator builds single records from the loaded references. It does not
// touch the store.
type Fabricator struct {
	src  Source
	refs *References

	maxPets  int
	maxItems int

	windowStart time.Time
	windowEnd   time.Time
	now         time.Time

	// password is the shared credential placeholder, nil when unset.
	password *string
}

// NewFabricator prepares a fabricator whose timestamps fall within the
// historyYears before now.
func NewFabricator(src Source, refs *References, now time.Time, historyYears, maxPets, maxItems int) *Fabricator {
	return &Fabricator{
		src:         src,
		refs:        refs,
		maxPets:     maxPets,
		maxItems:    maxItems,
		windowStart: now.Add(-time.Duration(365*historyYears) * 24 * time.Hour),
		windowEnd:   now,
		now:         now,
	}
}

// SetPassword makes every fabricated customer carry hash as its credential.
func (f *Fabricator) SetPassword(hash string) {
	f.password = &hash
}

func (f *Fabricator) Customer(seq int64) Customer {
	return Customer{
		MembershipRankID: randomID(f.src, f.refs.MembershipRanks),
		Name:             f.src.Name(),
		Phone:            fmt.Sprintf("0%d", f.src.IntRange(100000000, 999999999)),
		Email:            CustomerEmail(seq),
		Password:         f.password,
		Gender:           randomFrom(f.src, genders),
		Birthdate:        f.src.DateRange(yearsBefore(f.now, 50), yearsBefore(f.now, 18)),
		Loyalty:          0,
	}
}

// CustomerEmail is the synthetic address for the seq-th generated customer.
func CustomerEmail(seq int64) string {
	return fmt.Sprintf("user%d@example.com", seq)
}

// Pets returns between 1 and maxPets pets owned by customerID.
func (f *Fabricator) Pets(customerID int64) []Pet {
	n := f.src.IntRange(1, f.maxPets)
	pets := make([]Pet, n)
	for i := range pets {
		pets[i] = Pet{
			CustomerID:   customerID,
			Name:         fmt.Sprintf("%s %d", f.src.PetName(), f.src.IntRange(1, 99)),
			BreedID:      randomID(f.src, f.refs.Breeds),
			Gender:       randomFrom(f.src, genders),
			Birthdate:    f.src.DateRange(yearsBefore(f.now, 15), f.now),
			HealthStatus: randomFrom(f.src, healthStatuses),
		}
	}
	return pets
}

func (f *Fabricator) Checkup(petIDs []int64) Checkup {
	c := Checkup{
		PetID:            randomID(f.src, petIDs),
		MedicalServiceID: randomID(f.src, f.refs.MedicalServices),
		VetID:            randomID(f.src, f.refs.Vets),
		Symptoms:         randomFrom(f.src, symptomPool),
		Diagnosis:        randomFrom(f.src, diagnosisPool),
		Status:           randomFrom(f.src, checkupStatuses),
		VisitDate:        randomDateBetween(f.src, f.windowStart, f.windowEnd),
	}
	if chance(f.src, followUpProbability) {
		followUp := c.VisitDate.AddDate(0, 0, f.src.IntRange(minFollowUpDays, maxFollowUpDays))
		c.FollowUpVisit = &followUp
	}
	c.PrescriptionAvailable = chance(f.src, prescriptionProbability)
	return c
}

// Receipt fabricates a receipt whose total is independent of its line items.
func (f *Fabricator) Receipt(customerIDs []int64) Receipt {
	return Receipt{
		BranchID:       randomID(f.src, f.refs.Branches),
		CustomerID:     randomID(f.src, customerIDs),
		ReceptionistID: randomID(f.src, f.refs.Receptionists),
		CreatedAt:      randomDateBetween(f.src, f.windowStart, f.windowEnd),
		TotalPrice:     decimal.NewFromInt(int64(f.src.IntRange(minReceiptTotal, maxReceiptTotal))),
		PaymentMethod:  randomFrom(f.src, paymentMethods),
		Status:         receiptStatusLadder.PickFrom(f.src),
	}
}

// ReceiptDetails returns 1..maxItems line items numbered from 1.
func (f *Fabricator) ReceiptDetails(receiptID int64, petIDs []int64) []ReceiptDetail {
	n := f.src.IntRange(1, f.maxItems)
	items := make([]ReceiptDetail, n)
	for i := range items {
		sale := f.refs.SaleItems[f.src.IntRange(0, len(f.refs.SaleItems)-1)]
		items[i] = ReceiptDetail{
			ItemID:    i + 1,
			ReceiptID: receiptID,
			ProductID: sale.ProductID,
			Amount:    f.src.IntRange(1, maxItemQuantity),
			PetID:     f.optionalPet(petIDs),
			Price:     sale.Price,
		}
	}
	return items
}

func (f *Fabricator) optionalPet(petIDs []int64) *int64 {
	idx := f.src.IntRange(0, len(petIDs)+nullPetSlots-1)
	if idx >= len(petIDs) {
		return nil
	}
	id := petIDs[idx]
	return &id
}

func (f *Fabricator) Review(receiptID int64) Review {
	service := f.src.IntRange(minSubScore, maxSubScore)
	staff := f.src.IntRange(minSubScore, maxSubScore)
	overall := OverallScore(service, staff, f.src.IntRange(-maxJitter, maxJitter))

	pool := negativeComments
	if overall >= goodScore {
		pool = positiveComments
	}

	return Review{
		ReceiptID:    receiptID,
		ServiceScore: service,
		StaffScore:   staff,
		OverallScore: overall,
		Comment:      randomFrom(f.src, pool),
	}
}

// OverallScore averages the sub-scores, adds jitter, rounds half to even
// and clamps into [0, 10].
func OverallScore(service, staff, jitter int) int {
	v := int(math.RoundToEven(float64(service+staff)/2 + float64(jitter)))
	return max(minOverallScore, min(maxOverallScore, v))
}
