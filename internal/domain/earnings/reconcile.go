package earnings

import (
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/payment"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
)

// AllEmployees selects every employee in Reconcile.
const AllEmployees = "all"

type Line struct {
	Employee    employee.Employee
	Earnings    Earnings
	Bonuses     []AppliedBonus
	BonusTotal  decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal // Owed + BonusTotal - Paid
}

type Reconciliation struct {
	Period      period.Period
	Owed        decimal.Decimal
	BonusTotal  decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
	Lines       []Line
}

// Reconcile compares what is owed with what was paid inside p, for one
// employee id or for AllEmployees. An id that matches no employee yields
// zero totals and no lines. Rules may be nil.
func Reconcile(
	filter string,
	employees []employee.Employee,
	entries []timeentry.TimeEntry,
	payments []payment.Payment,
	rules []bonus.BonusRule,
	p period.Period,
) Reconciliation {
	rec := Reconciliation{
		Period:      p,
		Owed:        decimal.Zero,
		BonusTotal:  decimal.Zero,
		Paid:        decimal.Zero,
		Outstanding: decimal.Zero,
		Lines:       make([]Line, 0),
	}

	for _, emp := range employees {
		if filter != AllEmployees && emp.ID != filter {
			continue
		}

		e := ComputeEarnings(emp, entries, p)
		applied := EvaluateBonuses(emp, e.Owed, rules)
		line := Line{
			Employee:   emp,
			Earnings:   e,
			Bonuses:    applied,
			BonusTotal: SumBonuses(applied),
			Paid:       PaidWithin(emp.ID, payments, p),
		}
		line.Outstanding = e.Owed.Add(line.BonusTotal).Sub(line.Paid)

		rec.Owed = rec.Owed.Add(e.Owed)
		rec.BonusTotal = rec.BonusTotal.Add(line.BonusTotal)
		rec.Paid = rec.Paid.Add(line.Paid)
		rec.Lines = append(rec.Lines, line)
	}

	rec.Outstanding = rec.Owed.Add(rec.BonusTotal).Sub(rec.Paid)
	return rec
}

// PaidWithin sums the employee's payments dated inside p.
func PaidWithin(employeeID string, payments []payment.Payment, p period.Period) decimal.Decimal {
	paid := decimal.Zero
	for _, pm := range payments {
		if pm.EmployeeID == employeeID && p.Contains(pm.Date) {
			paid = paid.Add(nonNegative(pm.Amount))
		}
	}
	return paid
}
