package bonus

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

type Filter struct {
	// EmployeeID selects rules scoped to that employee plus unscoped rules.
	EmployeeID *string
}

type CreateBonusRuleRequest struct {
	Name            string          `json:"name"`
	ThresholdAmount decimal.Decimal `json:"threshold_amount"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	BonusType       string          `json:"bonus_type"`
	EmployeeID      *string         `json:"employee_id,omitempty"`
}

func (r *CreateBonusRuleRequest) Validate() error {
	rule := r.ToEntity("")
	return ValidateRule(rule)
}

func (r *CreateBonusRuleRequest) ToEntity(agencyID string) BonusRule {
	return BonusRule{
		AgencyID:        agencyID,
		Name:            strings.TrimSpace(r.Name),
		ThresholdAmount: r.ThresholdAmount,
		BonusAmount:     r.BonusAmount,
		BonusType:       Type(r.BonusType),
		EmployeeID:      normalizeEmployeeID(r.EmployeeID),
	}
}

// UpdateBonusRuleRequest is a partial update. An empty employee_id removes
// the employee scope.
type UpdateBonusRuleRequest struct {
	ID              string           `json:"-"`
	Name            *string          `json:"name,omitempty"`
	ThresholdAmount *decimal.Decimal `json:"threshold_amount,omitempty"`
	BonusAmount     *decimal.Decimal `json:"bonus_amount,omitempty"`
	BonusType       *string          `json:"bonus_type,omitempty"`
	EmployeeID      *string          `json:"employee_id,omitempty"`
}

func (r *UpdateBonusRuleRequest) Apply(rule BonusRule) BonusRule {
	if r.Name != nil {
		rule.Name = strings.TrimSpace(*r.Name)
	}
	if r.ThresholdAmount != nil {
		rule.ThresholdAmount = *r.ThresholdAmount
	}
	if r.BonusAmount != nil {
		rule.BonusAmount = *r.BonusAmount
	}
	if r.BonusType != nil {
		rule.BonusType = Type(*r.BonusType)
	}
	if r.EmployeeID != nil {
		rule.EmployeeID = normalizeEmployeeID(r.EmployeeID)
	}
	return rule
}

// ValidateRule checks a complete rule, so it is used both on create and on
// the result of applying an update.
func ValidateRule(rule BonusRule) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(rule.Name) {
		errs.Add("name", "is required")
	} else if len(rule.Name) > 100 {
		errs.Add("name", "must be at most 100 characters")
	}
	if !validator.IsNonNegative(rule.ThresholdAmount) {
		errs.Add("threshold_amount", "must be non-negative")
	}
	if !validator.IsNonNegative(rule.BonusAmount) {
		errs.Add("bonus_amount", "must be non-negative")
	}
	if !rule.BonusType.IsValid() {
		errs.Add("bonus_type", "must be 'fixed' or 'percentage'")
	} else if rule.BonusType == TypePercentage && rule.BonusAmount.GreaterThan(maxPercentage) {
		errs.Add("bonus_amount", "must be between 0 and 100 for percentage bonuses")
	}
	if rule.EmployeeID != nil && !validator.IsValidUUID(*rule.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}

	return errs.Err()
}

func normalizeEmployeeID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type ListBonusRulesRequest struct {
	EmployeeID string
}

func (r *ListBonusRulesRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	return errs.Err()
}

type BonusRuleResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ThresholdAmount decimal.Decimal `json:"threshold_amount"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	BonusType       Type            `json:"bonus_type"`
	EmployeeID      *string         `json:"employee_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func ToResponse(r BonusRule) BonusRuleResponse {
	return BonusRuleResponse{
		ID:              r.ID,
		Name:            r.Name,
		ThresholdAmount: r.ThresholdAmount,
		BonusAmount:     r.BonusAmount,
		BonusType:       r.BonusType,
		EmployeeID:      r.EmployeeID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
