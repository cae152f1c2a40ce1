package timeentry

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeEntry struct {
	ID           string
	AgencyID     string
	EmployeeID   string
	Date         time.Time
	Hours        decimal.Decimal
	Description  string
	CreatorSales []CreatorSale
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreatorSale is revenue attributed to a content creator within one entry.
type CreatorSale struct {
	CreatorID string
	Amount    decimal.Decimal
}

// SalesTotal sums the creator sales, ignoring negative amounts.
func (e TimeEntry) SalesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.CreatorSales {
		if s.Amount.IsPositive() {
			total = total.Add(s.Amount)
		}
	}
	return total
}
