package bonus

import (
	"context"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
)

type BonusRuleServiceImpl struct {
	ruleRepo     bonus.BonusRuleRepository
	employeeRepo employee.EmployeeRepository
}

func NewBonusRuleService(ruleRepo bonus.BonusRuleRepository, employeeRepo employee.EmployeeRepository) bonus.BonusRuleService {
	return &BonusRuleServiceImpl{
		ruleRepo:     ruleRepo,
		employeeRepo: employeeRepo,
	}
}

// List returns rules in evaluation order. With an employee id it returns the
// rules that can apply to that employee.
func (s *BonusRuleServiceImpl) List(ctx context.Context, session auth.Session, req bonus.ListBonusRulesRequest) ([]bonus.BonusRuleResponse, error) {
	if err := session.Require(auth.PermissionBonusRuleView); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var filter bonus.Filter
	if req.EmployeeID != "" {
		filter.EmployeeID = &req.EmployeeID
	}

	rules, err := s.ruleRepo.ListBonusRules(ctx, session.AgencyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]bonus.BonusRuleResponse, 0, len(rules))
	for _, r := range rules {
		responses = append(responses, bonus.ToResponse(r))
	}
	return responses, nil
}

func (s *BonusRuleServiceImpl) Get(ctx context.Context, session auth.Session, id string) (bonus.BonusRuleResponse, error) {
	if err := session.Require(auth.PermissionBonusRuleView); err != nil {
		return bonus.BonusRuleResponse{}, err
	}

	rule, err := s.ruleRepo.GetBonusRuleByID(ctx, id, session.AgencyID)
	if err != nil {
		return bonus.BonusRuleResponse{}, err
	}
	return bonus.ToResponse(rule), nil
}

func (s *BonusRuleServiceImpl) Create(ctx context.Context, session auth.Session, req bonus.CreateBonusRuleRequest) (bonus.BonusRuleResponse, error) {
	if err := session.Require(auth.PermissionBonusRuleManage); err != nil {
		return bonus.BonusRuleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return bonus.BonusRuleResponse{}, err
	}

	rule := req.ToEntity(session.AgencyID)
	if err := s.checkScope(ctx, session.AgencyID, rule.EmployeeID); err != nil {
		return bonus.BonusRuleResponse{}, err
	}

	created, err := s.ruleRepo.CreateBonusRule(ctx, rule)
	if err != nil {
		return bonus.BonusRuleResponse{}, err
	}
	return bonus.ToResponse(created), nil
}

func (s *BonusRuleServiceImpl) Update(ctx context.Context, session auth.Session, req bonus.UpdateBonusRuleRequest) (bonus.BonusRuleResponse, error) {
	if err := session.Require(auth.PermissionBonusRuleManage); err != nil {
		return bonus.BonusRuleResponse{}, err
	}

	existing, err := s.ruleRepo.GetBonusRuleByID(ctx, req.ID, session.AgencyID)
	if err != nil {
		return bonus.BonusRuleResponse{}, err
	}

	rule := req.Apply(existing)
	if err := bonus.ValidateRule(rule); err != nil {
		return bonus.BonusRuleResponse{}, err
	}
	if req.EmployeeID != nil {
		if err := s.checkScope(ctx, session.AgencyID, rule.EmployeeID); err != nil {
			return bonus.BonusRuleResponse{}, err
		}
	}

	updated, err := s.ruleRepo.UpdateBonusRule(ctx, rule)
	if err != nil {
		return bonus.BonusRuleResponse{}, err
	}
	return bonus.ToResponse(updated), nil
}

func (s *BonusRuleServiceImpl) Delete(ctx context.Context, session auth.Session, id string) error {
	if err := session.Require(auth.PermissionBonusRuleManage); err != nil {
		return err
	}
	return s.ruleRepo.DeleteBonusRule(ctx, id, session.AgencyID)
}

func (s *BonusRuleServiceImpl) checkScope(ctx context.Context, agencyID string, employeeID *string) error {
	if employeeID == nil {
		return nil
	}
	_, err := s.employeeRepo.GetEmployeeByID(ctx, *employeeID, agencyID)
	return err
}
