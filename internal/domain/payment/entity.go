package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is append-only: once recorded it is never edited or removed.
type Payment struct {
	ID          string
	AgencyID    string
	EmployeeID  string
	Date        time.Time
	Amount      decimal.Decimal
	Method      Method
	Description string
	CreatedAt   time.Time
}

type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
	MethodPayPal       Method = "paypal"
	MethodCrypto       Method = "crypto"
	MethodOther        Method = "other"
)

var Methods = []string{
	string(MethodBankTransfer),
	string(MethodCash),
	string(MethodPayPal),
	string(MethodCrypto),
	string(MethodOther),
}
