package payment

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Filter struct {
	EmployeeID *string
	Period     *period.Period
	Method     *Method
}

type CreatePaymentRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if validator.IsEmpty(r.Date) {
		errs.Add("date", "is required")
	} else if _, ok := validator.ParseDateOrDateTime(r.Date); !ok {
		errs.Add("date", "must be YYYY-MM-DD or an RFC3339 timestamp")
	}
	if !validator.IsNonNegative(r.Amount) {
		errs.Add("amount", "must be non-negative")
	}
	if !validator.IsInSlice(r.Method, Methods) {
		errs.Add("method", "must be one of: "+strings.Join(Methods, ", "))
	}

	return errs.Err()
}

func (r *CreatePaymentRequest) ToEntity(agencyID string) Payment {
	date, _ := validator.ParseDateOrDateTime(r.Date)
	return Payment{
		AgencyID:    agencyID,
		EmployeeID:  r.EmployeeID,
		Date:        date,
		Amount:      r.Amount,
		Method:      Method(r.Method),
		Description: strings.TrimSpace(r.Description),
	}
}

type ListPaymentsRequest struct {
	EmployeeID string
	Period     period.Query
	Method     string
	SortBy     string // date, amount, created_at
	SortOrder  string
}

func (r *ListPaymentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if r.Method != "" && !validator.IsInSlice(r.Method, Methods) {
		errs.Add("method", "must be one of: "+strings.Join(Methods, ", "))
	}
	if r.SortBy != "" && !validator.IsInSlice(r.SortBy, []string{"date", "amount", "created_at"}) {
		errs.Add("sort_by", "must be one of: date, amount, created_at")
	}
	if r.SortOrder != "" && !validator.IsInSlice(strings.ToLower(r.SortOrder), []string{"asc", "desc"}) {
		errs.Add("sort_order", "must be 'asc' or 'desc'")
	}

	return errs.Err()
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Method      Method          `json:"method"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Date:        p.Date,
		Amount:      p.Amount,
		Method:      p.Method,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
