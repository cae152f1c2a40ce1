package earnings

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	DefaultSnapshotLimit = 12
	MaxSnapshotLimit     = 100
)

// ========== REQUEST DTOs ==========

type ReconciliationRequest struct {
	EmployeeID string // employee id or "all"; empty means "all"
	Period     period.Query
}

func (r *ReconciliationRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID != "" && r.EmployeeID != AllEmployees && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "must be 'all' or a valid UUID")
	}
	return errs.Err()
}

func (r *ReconciliationRequest) Filter() string {
	if r.EmployeeID == "" {
		return AllEmployees
	}
	return r.EmployeeID
}

type ListSnapshotsRequest struct {
	Limit string
}

// ParseLimit validates Limit and applies the default.
func (r *ListSnapshotsRequest) ParseLimit() (int, error) {
	if r.Limit == "" {
		return DefaultSnapshotLimit, nil
	}
	var errs validator.ValidationErrors
	n, err := strconv.Atoi(r.Limit)
	if err != nil || n < 1 || n > MaxSnapshotLimit {
		errs.Add("limit", "must be an integer between 1 and "+strconv.Itoa(MaxSnapshotLimit))
		return 0, errs
	}
	return n, nil
}

// ========== RESPONSE DTOs ==========

// MoneyResponse carries the exact amount and its two-decimal display form.
type MoneyResponse struct {
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

func NewMoney(d decimal.Decimal) MoneyResponse {
	return MoneyResponse{Amount: d, Display: FormatMoney(d)}
}

// FormatMoney renders d as "$1,234.50"; zero renders as "$0.00".
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, cents := fixed[:len(fixed)-3], fixed[len(fixed)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + cents
}

type PeriodResponse struct {
	Name  period.Name `json:"name"`
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
}

func NewPeriodResponse(p period.Period) PeriodResponse {
	return PeriodResponse{Name: p.Name, Start: p.Start, End: p.End}
}

type AppliedBonusResponse struct {
	RuleID          string          `json:"rule_id"`
	RuleName        string          `json:"rule_name"`
	BonusType       bonus.Type      `json:"bonus_type"`
	ThresholdAmount decimal.Decimal `json:"threshold_amount"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	Value           MoneyResponse   `json:"value"`
}

type LineResponse struct {
	EmployeeID   string                 `json:"employee_id"`
	EmployeeName string                 `json:"employee_name"`
	HourlyRate   decimal.Decimal        `json:"hourly_rate"`
	Hours        decimal.Decimal        `json:"hours"`
	EntryCount   int                    `json:"entry_count"`
	Base         MoneyResponse          `json:"base"`
	Sales        MoneyResponse          `json:"sales"`
	Owed         MoneyResponse          `json:"owed"`
	Bonuses      []AppliedBonusResponse `json:"bonuses"`
	BonusTotal   MoneyResponse          `json:"bonus_total"`
	Paid         MoneyResponse          `json:"paid"`
	Outstanding  MoneyResponse          `json:"outstanding"`
}

type ReconciliationResponse struct {
	Period      PeriodResponse `json:"period"`
	EmployeeID  string         `json:"employee_id"`
	Owed        MoneyResponse  `json:"owed"`
	BonusTotal  MoneyResponse  `json:"bonus_total"`
	Paid        MoneyResponse  `json:"paid"`
	Outstanding MoneyResponse  `json:"outstanding"`
	Employees   []LineResponse `json:"employees"`
}

type EmployeeEarningsResponse struct {
	Period PeriodResponse `json:"period"`
	LineResponse
}

type SnapshotResponse struct {
	ID            string         `json:"id"`
	Period        PeriodResponse `json:"period"`
	Owed          MoneyResponse  `json:"owed"`
	BonusTotal    MoneyResponse  `json:"bonus_total"`
	Paid          MoneyResponse  `json:"paid"`
	Outstanding   MoneyResponse  `json:"outstanding"`
	EmployeeCount int            `json:"employee_count"`
	CreatedAt     time.Time      `json:"created_at"`
}

func ToLineResponse(l Line) LineResponse {
	bonuses := make([]AppliedBonusResponse, 0, len(l.Bonuses))
	for _, b := range l.Bonuses {
		bonuses = append(bonuses, AppliedBonusResponse{
			RuleID:          b.Rule.ID,
			RuleName:        b.Rule.Name,
			BonusType:       b.Rule.BonusType,
			ThresholdAmount: b.Rule.ThresholdAmount,
			BonusAmount:     b.Rule.BonusAmount,
			Value:           NewMoney(b.Value),
		})
	}
	return LineResponse{
		EmployeeID:   l.Employee.ID,
		EmployeeName: l.Employee.Name,
		HourlyRate:   l.Employee.HourlyRate,
		Hours:        l.Earnings.Hours,
		EntryCount:   l.Earnings.EntryCount,
		Base:         NewMoney(l.Earnings.Base),
		Sales:        NewMoney(l.Earnings.Sales),
		Owed:         NewMoney(l.Earnings.Owed),
		Bonuses:      bonuses,
		BonusTotal:   NewMoney(l.BonusTotal),
		Paid:         NewMoney(l.Paid),
		Outstanding:  NewMoney(l.Outstanding),
	}
}

func ToReconciliationResponse(filter string, rec Reconciliation) ReconciliationResponse {
	lines := make([]LineResponse, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		lines = append(lines, ToLineResponse(l))
	}
	return ReconciliationResponse{
		Period:      NewPeriodResponse(rec.Period),
		EmployeeID:  filter,
		Owed:        NewMoney(rec.Owed),
		BonusTotal:  NewMoney(rec.BonusTotal),
		Paid:        NewMoney(rec.Paid),
		Outstanding: NewMoney(rec.Outstanding),
		Employees:   lines,
	}
}

func ToSnapshotResponse(s Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:            s.ID,
		Period:        PeriodResponse{Name: s.PeriodName, Start: s.PeriodStart, End: s.PeriodEnd},
		Owed:          NewMoney(s.Owed),
		BonusTotal:    NewMoney(s.BonusTotal),
		Paid:          NewMoney(s.Paid),
		Outstanding:   NewMoney(s.Outstanding),
		EmployeeCount: s.EmployeeCount,
		CreatedAt:     s.CreatedAt,
	}
}
