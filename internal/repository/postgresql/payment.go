package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/payment"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) ListPayments(ctx context.Context, agencyID string, filter payment.Filter) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, agency_id, employee_id, payment_date, amount, method, description, created_at
		FROM payments
		WHERE agency_id = $1`
	args := []interface{}{agencyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Period != nil {
		query += fmt.Sprintf(" AND payment_date BETWEEN $%d AND $%d", argIdx, argIdx+1)
		args = append(args, filter.Period.Start, filter.Period.End)
		argIdx += 2
	}
	if filter.Method != nil {
		query += fmt.Sprintf(" AND method = $%d", argIdx)
		args = append(args, string(*filter.Method))
	}
	query += " ORDER BY payment_date DESC, id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]payment.Payment, 0)
	for rows.Next() {
		var p payment.Payment
		var method string
		if err := rows.Scan(&p.ID, &p.AgencyID, &p.EmployeeID, &p.Date, &p.Amount, &method, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Method = payment.Method(method)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (agency_id, employee_id, payment_date, amount, method, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		p.AgencyID, p.EmployeeID, p.Date, p.Amount, string(p.Method), p.Description,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err, "fk_payments_employee") {
			return payment.Payment{}, employee.ErrEmployeeNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	return p, nil
}
