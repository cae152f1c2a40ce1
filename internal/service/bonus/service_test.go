package bonus

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	agencyID   = "0190a5e2-0000-7000-8000-00000000000a"
	employeeID = "0190a5e2-0000-7000-8000-0000000000e1"
	foreignID  = "0190a5e2-0000-7000-8000-0000000000e9"
)

type fakeRuleRepo struct {
	rules []bonus.BonusRule
}

func (f *fakeRuleRepo) ListBonusRules(_ context.Context, agency string, filter bonus.Filter) ([]bonus.BonusRule, error) {
	out := make([]bonus.BonusRule, 0)
	for _, r := range f.rules {
		if r.AgencyID != agency {
			continue
		}
		if filter.EmployeeID != nil && !r.AppliesTo(*filter.EmployeeID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRuleRepo) GetBonusRuleByID(_ context.Context, id string, agency string) (bonus.BonusRule, error) {
	for _, r := range f.rules {
		if r.ID == id && r.AgencyID == agency {
			return r, nil
		}
	}
	return bonus.BonusRule{}, bonus.ErrBonusRuleNotFound
}

func (f *fakeRuleRepo) CreateBonusRule(_ context.Context, rule bonus.BonusRule) (bonus.BonusRule, error) {
	for _, r := range f.rules {
		if r.AgencyID == rule.AgencyID && r.Name == rule.Name {
			return bonus.BonusRule{}, bonus.ErrBonusRuleNameExists
		}
	}
	rule.ID = "rule-new"
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeRuleRepo) UpdateBonusRule(_ context.Context, rule bonus.BonusRule) (bonus.BonusRule, error) {
	for i := range f.rules {
		if f.rules[i].ID == rule.ID {
			f.rules[i] = rule
			return rule, nil
		}
	}
	return bonus.BonusRule{}, bonus.ErrBonusRuleNotFound
}

func (f *fakeRuleRepo) DeleteBonusRule(_ context.Context, id string, agency string) error {
	for i, r := range f.rules {
		if r.ID == id && r.AgencyID == agency {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return bonus.ErrBonusRuleNotFound
}

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) ListEmployees(context.Context, string, employee.Filter) ([]employee.Employee, error) {
	return nil, nil
}

func (fakeEmployeeRepo) GetEmployeeByID(_ context.Context, id string, agency string) (employee.Employee, error) {
	if id == employeeID && agency == agencyID {
		return employee.Employee{ID: id, AgencyID: agency}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (fakeEmployeeRepo) ListAgencyIDs(context.Context) ([]string, error) { return nil, nil }

var (
	owner  = auth.Session{UserID: "u-1", AgencyID: agencyID, Role: auth.RoleOwner}
	viewer = auth.Session{UserID: "u-2", AgencyID: agencyID, Role: auth.RoleViewer}
)

func strPtr(s string) *string { return &s }

func seeded() *fakeRuleRepo {
	return &fakeRuleRepo{rules: []bonus.BonusRule{
		{ID: "r-all", AgencyID: agencyID, Name: "Team target", ThresholdAmount: decimal.NewFromInt(300), BonusAmount: decimal.NewFromInt(50), BonusType: bonus.TypeFixed},
		{ID: "r-emp", AgencyID: agencyID, Name: "Ada special", ThresholdAmount: decimal.NewFromInt(1000), BonusAmount: decimal.NewFromInt(10), BonusType: bonus.TypePercentage, EmployeeID: strPtr(employeeID)},
		{ID: "r-foreign", AgencyID: agencyID, Name: "Other", ThresholdAmount: decimal.Zero, BonusAmount: decimal.NewFromInt(5), BonusType: bonus.TypeFixed, EmployeeID: strPtr(foreignID)},
	}}
}

func TestBonusRuleService_List_ForEmployee(t *testing.T) {
	svc := NewBonusRuleService(seeded(), fakeEmployeeRepo{})

	got, err := svc.List(context.Background(), viewer, bonus.ListBonusRulesRequest{EmployeeID: employeeID})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r-all", got[0].ID)
	assert.Equal(t, "r-emp", got[1].ID)
}

func TestBonusRuleService_Create_PercentageAbove100(t *testing.T) {
	svc := NewBonusRuleService(seeded(), fakeEmployeeRepo{})

	_, err := svc.Create(context.Background(), owner, bonus.CreateBonusRuleRequest{
		Name:            "Too generous",
		ThresholdAmount: decimal.NewFromInt(100),
		BonusAmount:     decimal.NewFromInt(150),
		BonusType:       "percentage",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "bonus_amount")
}

func TestBonusRuleService_Create_DuplicateName(t *testing.T) {
	svc := NewBonusRuleService(seeded(), fakeEmployeeRepo{})

	_, err := svc.Create(context.Background(), owner, bonus.CreateBonusRuleRequest{
		Name:        "Team target",
		BonusAmount: decimal.NewFromInt(1),
		BonusType:   "fixed",
	})

	assert.ErrorIs(t, err, bonus.ErrBonusRuleNameExists)
}

func TestBonusRuleService_Create_ScopedToUnknownEmployee(t *testing.T) {
	svc := NewBonusRuleService(seeded(), fakeEmployeeRepo{})

	_, err := svc.Create(context.Background(), owner, bonus.CreateBonusRuleRequest{
		Name:        "Scoped",
		BonusAmount: decimal.NewFromInt(1),
		BonusType:   "fixed",
		EmployeeID:  strPtr(foreignID),
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestBonusRuleService_Update_ClearsScope(t *testing.T) {
	repo := seeded()
	svc := NewBonusRuleService(repo, fakeEmployeeRepo{})

	got, err := svc.Update(context.Background(), owner, bonus.UpdateBonusRuleRequest{ID: "r-emp", EmployeeID: strPtr("")})

	require.NoError(t, err)
	assert.Nil(t, got.EmployeeID)
	assert.Equal(t, "Ada special", got.Name)
}

func TestBonusRuleService_Update_SwitchToPercentageValidatesAmount(t *testing.T) {
	svc := NewBonusRuleService(seeded(), fakeEmployeeRepo{})
	amount := decimal.NewFromInt(500)

	_, err := svc.Update(context.Background(), owner, bonus.UpdateBonusRuleRequest{
		ID:          "r-all",
		BonusType:   strPtr("percentage"),
		BonusAmount: &amount,
	})

	assert.Error(t, err)
}

func TestBonusRuleService_Delete(t *testing.T) {
	repo := seeded()
	svc := NewBonusRuleService(repo, fakeEmployeeRepo{})

	require.NoError(t, svc.Delete(context.Background(), owner, "r-all"))
	assert.ErrorIs(t, svc.Delete(context.Background(), owner, "r-all"), bonus.ErrBonusRuleNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), viewer, "r-emp"), auth.ErrInsufficientPermission)
}
