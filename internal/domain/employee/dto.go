package employee

import (
	"strings"

	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Filter narrows ListEmployees at the database.
type Filter struct {
	Status *Status
	IDs    []string
}

type ListEmployeesRequest struct {
	Status    string `json:"status,omitempty"`
	Search    string `json:"search,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`    // name, hourly_rate, created_at
	SortOrder string `json:"sort_order,omitempty"` // asc, desc
}

func (r *ListEmployeesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != "" && !Status(r.Status).IsValid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}
	if r.SortBy != "" && !validator.IsInSlice(r.SortBy, []string{"name", "hourly_rate", "created_at"}) {
		errs.Add("sort_by", "must be one of: name, hourly_rate, created_at")
	}
	if r.SortOrder != "" && !validator.IsInSlice(strings.ToLower(r.SortOrder), []string{"asc", "desc"}) {
		errs.Add("sort_order", "must be 'asc' or 'desc'")
	}

	return errs.Err()
}

func (r *ListEmployeesRequest) ToFilter() Filter {
	var f Filter
	if r.Status != "" {
		s := Status(r.Status)
		f.Status = &s
	}
	return f
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	AgencyID   string          `json:"agency_id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Status     Status          `json:"status"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		AgencyID:   e.AgencyID,
		Name:       e.Name,
		HourlyRate: e.HourlyRate,
		Status:     e.Status,
	}
}
