package timeentry

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Filter is pushed down to the database; a nil field means "no constraint".
type Filter struct {
	EmployeeID *string
	Period     *period.Period
}

// ========== REQUEST DTOs ==========

type CreatorSaleRequest struct {
	CreatorID string          `json:"creator_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type CreateTimeEntryRequest struct {
	EmployeeID   string               `json:"employee_id"`
	Date         string               `json:"date"`
	Hours        decimal.Decimal      `json:"hours"`
	Description  string               `json:"description"`
	CreatorSales []CreatorSaleRequest `json:"creator_sales"`
}

func (r *CreateTimeEntryRequest) Validate() error {
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
	if !validator.IsNonNegative(r.Hours) {
		errs.Add("hours", "must be non-negative")
	}
	validateCreatorSales(&errs, r.CreatorSales)

	return errs.Err()
}

// ToEntity assumes Validate has passed.
func (r *CreateTimeEntryRequest) ToEntity(agencyID string) TimeEntry {
	date, _ := validator.ParseDateOrDateTime(r.Date)
	return TimeEntry{
		AgencyID:     agencyID,
		EmployeeID:   r.EmployeeID,
		Date:         date,
		Hours:        r.Hours,
		Description:  strings.TrimSpace(r.Description),
		CreatorSales: toCreatorSales(r.CreatorSales),
	}
}

// UpdateTimeEntryRequest is a partial update; nil fields are left unchanged.
// A non-nil CreatorSales replaces the whole list.
type UpdateTimeEntryRequest struct {
	ID           string                `json:"-"`
	EmployeeID   *string               `json:"employee_id,omitempty"`
	Date         *string               `json:"date,omitempty"`
	Hours        *decimal.Decimal      `json:"hours,omitempty"`
	Description  *string               `json:"description,omitempty"`
	CreatorSales *[]CreatorSaleRequest `json:"creator_sales,omitempty"`
}

func (r *UpdateTimeEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if r.Date != nil {
		if _, ok := validator.ParseDateOrDateTime(*r.Date); !ok {
			errs.Add("date", "must be YYYY-MM-DD or an RFC3339 timestamp")
		}
	}
	if r.Hours != nil && !validator.IsNonNegative(*r.Hours) {
		errs.Add("hours", "must be non-negative")
	}
	if r.CreatorSales != nil {
		validateCreatorSales(&errs, *r.CreatorSales)
	}

	return errs.Err()
}

// Apply returns a copy of e with the patch applied. Validate first.
func (r *UpdateTimeEntryRequest) Apply(e TimeEntry) TimeEntry {
	if r.EmployeeID != nil {
		e.EmployeeID = *r.EmployeeID
	}
	if r.Date != nil {
		e.Date, _ = validator.ParseDateOrDateTime(*r.Date)
	}
	if r.Hours != nil {
		e.Hours = *r.Hours
	}
	if r.Description != nil {
		e.Description = strings.TrimSpace(*r.Description)
	}
	if r.CreatorSales != nil {
		e.CreatorSales = toCreatorSales(*r.CreatorSales)
	}
	return e
}

type ListTimeEntriesRequest struct {
	EmployeeID string
	Period     period.Query
	SortBy     string // date, hours, created_at
	SortOrder  string // asc, desc
}

func (r *ListTimeEntriesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be a valid UUID")
	}
	if r.SortBy != "" && !validator.IsInSlice(r.SortBy, []string{"date", "hours", "created_at"}) {
		errs.Add("sort_by", "must be one of: date, hours, created_at")
	}
	if r.SortOrder != "" && !validator.IsInSlice(strings.ToLower(r.SortOrder), []string{"asc", "desc"}) {
		errs.Add("sort_order", "must be 'asc' or 'desc'")
	}

	return errs.Err()
}

func validateCreatorSales(errs *validator.ValidationErrors, sales []CreatorSaleRequest) {
	for i, s := range sales {
		if validator.IsEmpty(s.CreatorID) {
			errs.Add(fmt.Sprintf("creator_sales[%d].creator_id", i), "is required")
		}
		if !validator.IsNonNegative(s.Amount) {
			errs.Add(fmt.Sprintf("creator_sales[%d].amount", i), "must be non-negative")
		}
	}
}

func toCreatorSales(in []CreatorSaleRequest) []CreatorSale {
	out := make([]CreatorSale, 0, len(in))
	for _, s := range in {
		out = append(out, CreatorSale{CreatorID: strings.TrimSpace(s.CreatorID), Amount: s.Amount})
	}
	return out
}

// ========== RESPONSE DTOs ==========

type CreatorSaleResponse struct {
	CreatorID string          `json:"creator_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type TimeEntryResponse struct {
	ID           string                `json:"id"`
	EmployeeID   string                `json:"employee_id"`
	Date         time.Time             `json:"date"`
	Hours        decimal.Decimal       `json:"hours"`
	Description  string                `json:"description"`
	CreatorSales []CreatorSaleResponse `json:"creator_sales"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func ToResponse(e TimeEntry) TimeEntryResponse {
	sales := make([]CreatorSaleResponse, 0, len(e.CreatorSales))
	for _, s := range e.CreatorSales {
		sales = append(sales, CreatorSaleResponse{CreatorID: s.CreatorID, Amount: s.Amount})
	}
	return TimeEntryResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		Date:         e.Date,
		Hours:        e.Hours,
		Description:  e.Description,
		CreatorSales: sales,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
