package seed

import "errors"

var (
	ErrMissingMasterData = errors.New("master data missing, run the bootstrap script first")
	ErrPartialMasterData = errors.New("master data partially populated")
	ErrNoBootstrapScript = errors.New("no bootstrap script available")
	ErrNoVets            = errors.New("no VET employee to assign to checkups")
	ErrNoReceptionists   = errors.New("no RECEP/SALES employee to assign to receipts")
	ErrNoCustomers       = errors.New("no customer to attach records to")
	ErrNoPets            = errors.New("no pet to create checkups for")
	ErrNoReceipts        = errors.New("no receipt to create receipt details for")
	ErrNoSaleItems       = errors.New("no sales product joined to a product")
)
