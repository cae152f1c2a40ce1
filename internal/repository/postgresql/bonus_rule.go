package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type bonusRuleRepository struct {
	db *database.DB
}

func NewBonusRuleRepository(db *database.DB) bonus.BonusRuleRepository {
	return &bonusRuleRepository{db: db}
}

const bonusRuleColumns = `id, agency_id, name, threshold_amount, bonus_amount, bonus_type, employee_id, created_at, updated_at`

func scanBonusRule(row pgx.Row) (bonus.BonusRule, error) {
	var b bonus.BonusRule
	var bonusType string
	if err := row.Scan(
		&b.ID, &b.AgencyID, &b.Name, &b.ThresholdAmount, &b.BonusAmount, &bonusType,
		&b.EmployeeID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return bonus.BonusRule{}, err
	}
	b.BonusType = bonus.Type(bonusType)
	return b, nil
}

func translateBonusRuleError(err error) error {
	switch {
	case isUniqueViolation(err, "uk_bonus_rules_agency_name"):
		return bonus.ErrBonusRuleNameExists
	case isForeignKeyViolation(err, "fk_bonus_rules_employee"):
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListBonusRules returns rules in creation order, which is the order bonuses
// are evaluated and reported in.
func (r *bonusRuleRepository) ListBonusRules(ctx context.Context, agencyID string, filter bonus.Filter) ([]bonus.BonusRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + bonusRuleColumns + ` FROM bonus_rules WHERE agency_id = $1`
	args := []interface{}{agencyID}

	if filter.EmployeeID != nil {
		query += " AND (employee_id IS NULL OR employee_id = $2)"
		args = append(args, *filter.EmployeeID)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus rules: %w", err)
	}
	defer rows.Close()

	rules := make([]bonus.BonusRule, 0)
	for rows.Next() {
		b, err := scanBonusRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus rule: %w", err)
		}
		rules = append(rules, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bonus rules: %w", err)
	}

	return rules, nil
}

func (r *bonusRuleRepository) GetBonusRuleByID(ctx context.Context, id string, agencyID string) (bonus.BonusRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + bonusRuleColumns + ` FROM bonus_rules WHERE id = $1 AND agency_id = $2`

	b, err := scanBonusRule(q.QueryRow(ctx, query, id, agencyID))
	if err != nil {
		if isNoRows(err) {
			return bonus.BonusRule{}, bonus.ErrBonusRuleNotFound
		}
		return bonus.BonusRule{}, fmt.Errorf("failed to get bonus rule: %w", err)
	}
	return b, nil
}

func (r *bonusRuleRepository) CreateBonusRule(ctx context.Context, rule bonus.BonusRule) (bonus.BonusRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bonus_rules (agency_id, name, threshold_amount, bonus_amount, bonus_type, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bonusRuleColumns

	b, err := scanBonusRule(q.QueryRow(ctx, query,
		rule.AgencyID, rule.Name, rule.ThresholdAmount, rule.BonusAmount, string(rule.BonusType), rule.EmployeeID,
	))
	if err != nil {
		if domainErr := translateBonusRuleError(err); domainErr != nil {
			return bonus.BonusRule{}, domainErr
		}
		return bonus.BonusRule{}, fmt.Errorf("failed to create bonus rule: %w", err)
	}
	return b, nil
}

func (r *bonusRuleRepository) UpdateBonusRule(ctx context.Context, rule bonus.BonusRule) (bonus.BonusRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE bonus_rules
		SET name = $3, threshold_amount = $4, bonus_amount = $5, bonus_type = $6, employee_id = $7, updated_at = NOW()
		WHERE id = $1 AND agency_id = $2
		RETURNING ` + bonusRuleColumns

	b, err := scanBonusRule(q.QueryRow(ctx, query,
		rule.ID, rule.AgencyID, rule.Name, rule.ThresholdAmount, rule.BonusAmount, string(rule.BonusType), rule.EmployeeID,
	))
	if err != nil {
		if isNoRows(err) {
			return bonus.BonusRule{}, bonus.ErrBonusRuleNotFound
		}
		if domainErr := translateBonusRuleError(err); domainErr != nil {
			return bonus.BonusRule{}, domainErr
		}
		return bonus.BonusRule{}, fmt.Errorf("failed to update bonus rule: %w", err)
	}
	return b, nil
}

func (r *bonusRuleRepository) DeleteBonusRule(ctx context.Context, id string, agencyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM bonus_rules WHERE id = $1 AND agency_id = $2 RETURNING id`

	var deletedID string
	if err := q.QueryRow(ctx, query, id, agencyID).Scan(&deletedID); err != nil {
		if isNoRows(err) {
			return bonus.ErrBonusRuleNotFound
		}
		return fmt.Errorf("failed to delete bonus rule: %w", err)
	}
	return nil
}
