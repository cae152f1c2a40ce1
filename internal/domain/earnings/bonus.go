package earnings

import (
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type AppliedBonus struct {
	Rule  bonus.BonusRule
	Value decimal.Decimal
}

// EvaluateBonuses returns every rule that applies to emp and whose threshold
// is reached by total (threshold inclusive), in input order.
func EvaluateBonuses(emp employee.Employee, total decimal.Decimal, rules []bonus.BonusRule) []AppliedBonus {
	applied := make([]AppliedBonus, 0)
	for _, rule := range rules {
		if !rule.AppliesTo(emp.ID) || total.LessThan(rule.ThresholdAmount) {
			continue
		}
		applied = append(applied, AppliedBonus{Rule: rule, Value: bonusValue(rule, total)})
	}
	return applied
}

func bonusValue(rule bonus.BonusRule, total decimal.Decimal) decimal.Decimal {
	if rule.BonusType == bonus.TypePercentage {
		return total.Mul(rule.BonusAmount).Div(hundred)
	}
	return rule.BonusAmount
}

func SumBonuses(applied []AppliedBonus) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range applied {
		sum = sum.Add(a.Value)
	}
	return sum
}
