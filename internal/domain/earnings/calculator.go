// Package earnings derives amounts owed to employees from their time entries,
// evaluates bonus rules against those amounts and reconciles them with
// recorded payments. Everything here is pure: no I/O, no mutation of inputs.
package earnings

import (
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/shopspring/decimal"
)

// Earnings is the breakdown behind an owed amount.
type Earnings struct {
	Hours      decimal.Decimal
	Base       decimal.Decimal // hours x hourly rate
	Sales      decimal.Decimal // attributed creator sales
	Owed       decimal.Decimal // Base + Sales, before bonuses
	EntryCount int
}

// ComputeOwed returns Σ(hours × hourlyRate) + Σ creator sales over the
// employee's entries dated inside p.
func ComputeOwed(emp employee.Employee, entries []timeentry.TimeEntry, p period.Period) decimal.Decimal {
	return ComputeEarnings(emp, entries, p).Owed
}

// ComputeEarnings is ComputeOwed with the intermediate sums kept.
// Negative hours, rates and sale amounts count as zero.
func ComputeEarnings(emp employee.Employee, entries []timeentry.TimeEntry, p period.Period) Earnings {
	rate := nonNegative(emp.HourlyRate)
	out := Earnings{
		Hours: decimal.Zero,
		Base:  decimal.Zero,
		Sales: decimal.Zero,
	}

	for _, e := range entries {
		if e.EmployeeID != emp.ID || !p.Contains(e.Date) {
			continue
		}
		hours := nonNegative(e.Hours)
		out.Hours = out.Hours.Add(hours)
		out.Base = out.Base.Add(hours.Mul(rate))
		out.Sales = out.Sales.Add(e.SalesTotal())
		out.EntryCount++
	}

	out.Owed = out.Base.Add(out.Sales)
	return out
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
