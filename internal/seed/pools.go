package seed

// ── Value pools ──

var genders = []string{"Male", "Female"}

var healthStatuses = []string{
	"Healthy", "Slightly overweight", "Mild dermatitis", "Mild allergy", "Mild ear infection",
}

var symptomPool = []string{
	"Loss of appetite, mild vomiting",
	"Diarrhea for 2 days",
	"Heavy itching, constant scratching",
	"Dry cough, runny nose",
	"Red eyes with discharge",
	"Lethargic, low energy",
}

var diagnosisPool = []string{
	"Mild allergic dermatitis",
	"Digestive disorder",
	"Upper respiratory infection",
	"Otitis externa",
	"Conjunctivitis",
	"Overweight, reduce portions",
}

var checkupStatuses = []string{"pending", "completed"}

var paymentMethods = []string{"cash", "card", "bank_transfer"}

var positiveComments = []string{
	"Great service, friendly staff.",
	"The vet was thorough and explained everything clearly.",
	"Clean place, my pet felt comfortable.",
	"Fair prices, will come back.",
}

var negativeComments = []string{
	"Waiting time was a bit long.",
	"Prices were higher than expected.",
	"The cashier was not very welcoming.",
}

// receiptStatusLadder: 80% completed, next 15% pending, remaining 5% canceled.
var receiptStatusLadder = Ladder[string]{
	{Value: ReceiptCompleted, Cumulative: 0.80},
	{Value: ReceiptPending, Cumulative: 0.95},
	{Value: ReceiptCanceled, Cumulative: 1.0},
}
