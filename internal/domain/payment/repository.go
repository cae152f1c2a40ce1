package payment

import "context"

// PaymentRepository has no update or delete: payments are append-only.
type PaymentRepository interface {
	ListPayments(ctx context.Context, agencyID string, filter Filter) ([]Payment, error)
	CreatePayment(ctx context.Context, payment Payment) (Payment, error)
}
