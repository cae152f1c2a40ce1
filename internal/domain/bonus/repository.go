package bonus

import "context"

type BonusRuleRepository interface {
	ListBonusRules(ctx context.Context, agencyID string, filter Filter) ([]BonusRule, error)
	GetBonusRuleByID(ctx context.Context, id string, agencyID string) (BonusRule, error)
	CreateBonusRule(ctx context.Context, rule BonusRule) (BonusRule, error)
	UpdateBonusRule(ctx context.Context, rule BonusRule) (BonusRule, error)
	DeleteBonusRule(ctx context.Context, id string, agencyID string) error
}
