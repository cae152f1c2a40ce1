package bonus

import (
	"context"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
)

type BonusRuleService interface {
	List(ctx context.Context, session auth.Session, req ListBonusRulesRequest) ([]BonusRuleResponse, error)
	Get(ctx context.Context, session auth.Session, id string) (BonusRuleResponse, error)
	Create(ctx context.Context, session auth.Session, req CreateBonusRuleRequest) (BonusRuleResponse, error)
	Update(ctx context.Context, session auth.Session, req UpdateBonusRuleRequest) (BonusRuleResponse, error)
	Delete(ctx context.Context, session auth.Session, id string) error
}
