package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

// BonusRule triggers once an employee's owed total reaches ThresholdAmount.
// A nil EmployeeID applies the rule to every employee of the agency.
type BonusRule struct {
	ID              string
	AgencyID        string
	Name            string
	ThresholdAmount decimal.Decimal
	BonusAmount     decimal.Decimal
	BonusType       Type
	EmployeeID      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Type string

const (
	TypeFixed      Type = "fixed"
	TypePercentage Type = "percentage" // BonusAmount is in [0, 100]
)

func (t Type) IsValid() bool {
	return t == TypeFixed || t == TypePercentage
}

// AppliesTo reports whether the rule is unscoped or scoped to employeeID.
func (r BonusRule) AppliesTo(employeeID string) bool {
	return r.EmployeeID == nil || *r.EmployeeID == employeeID
}
