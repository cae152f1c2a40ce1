package payment

import (
	"context"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
)

type PaymentService interface {
	List(ctx context.Context, session auth.Session, req ListPaymentsRequest) ([]PaymentResponse, error)
	Create(ctx context.Context, session auth.Session, req CreatePaymentRequest) (PaymentResponse, error)
}
