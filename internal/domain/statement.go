package domain

// StatementPeriod selects the look-back window for an account record.
type StatementPeriod string

const (
	PeriodCreation StatementPeriod = "CREATION"
	PeriodMonth    StatementPeriod = "MONTH"
	PeriodYear     StatementPeriod = "YEAR"
)

// ParseStatementPeriod maps a query string value onto a period,
// defaulting to the account creation date.
func ParseStatementPeriod(s string) StatementPeriod {
	switch StatementPeriod(s) {
	case PeriodMonth:
		return PeriodMonth
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodCreation
	}
}

// TransactionShort is a single formatted line of an account record.
type TransactionShort struct {
	Date   string `json:"date"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// AccountRecord is the human-readable projection of an account's
// activity over a period. All fields are pre-formatted strings.
type AccountRecord struct {
	ID                string             `json:"id"`
	Bank              string             `json:"bank"`
	Client            string             `json:"client"`
	Account           string             `json:"account"`
	AccountCreateDate string             `json:"accountCreateDate"`
	Period            string             `json:"period"`
	CreateDateTime    string             `json:"createDateTime"`
	Balance           string             `json:"balance"`
	Transactions      []TransactionShort `json:"transactions"`
}

// Statement is the money-statement projection: two aggregate sums
// over the account's entire history plus the current balance.
type Statement struct {
	ID                string `json:"id"`
	Bank              string `json:"bank"`
	Client            string `json:"client"`
	Account           string `json:"account"`
	AccountCreateDate string `json:"accountCreateDate"`
	Period            string `json:"period"`
	CreateDateTime    string `json:"createDateTime"`
	Balance           string `json:"balance"`
	Replenishment     string `json:"replenishment"`
	Withdrawal        string `json:"withdrawal"`
}

// Check is the receipt projection for a single completed transaction.
// Bank and account fields are empty for the legs a transaction lacks.
type Check struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	TransactionType string `json:"transactionType"`
	SupplierBank    string `json:"supplierBank,omitempty"`
	ConsumerBank    string `json:"consumerBank,omitempty"`
	SupplierAccount string `json:"supplierAccount,omitempty"`
	ConsumerAccount string `json:"consumerAccount,omitempty"`
	Amount          string `json:"amount"`
}
