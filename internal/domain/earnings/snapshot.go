package earnings

import (
	"context"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// Snapshot is a persisted agency-wide reconciliation, captured by the
// scheduler so balances can be compared over time.
type Snapshot struct {
	ID            string
	AgencyID      string
	PeriodName    period.Name
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Owed          decimal.Decimal
	BonusTotal    decimal.Decimal
	Paid          decimal.Decimal
	Outstanding   decimal.Decimal
	EmployeeCount int
	CreatedAt     time.Time
}

func NewSnapshot(agencyID string, rec Reconciliation) Snapshot {
	return Snapshot{
		AgencyID:      agencyID,
		PeriodName:    rec.Period.Name,
		PeriodStart:   rec.Period.Start,
		PeriodEnd:     rec.Period.End,
		Owed:          rec.Owed,
		BonusTotal:    rec.BonusTotal,
		Paid:          rec.Paid,
		Outstanding:   rec.Outstanding,
		EmployeeCount: len(rec.Lines),
	}
}

type SnapshotRepository interface {
	CreateSnapshot(ctx context.Context, snapshot Snapshot) (Snapshot, error)
	ListSnapshots(ctx context.Context, agencyID string, limit int) ([]Snapshot, error)
}
