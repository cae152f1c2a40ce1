package payment

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/auth"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/payment"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/collection"
)

type PaymentServiceImpl struct {
	paymentRepo  payment.PaymentRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewPaymentService(paymentRepo payment.PaymentRepository, employeeRepo employee.EmployeeRepository) payment.PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *PaymentServiceImpl) List(ctx context.Context, session auth.Session, req payment.ListPaymentsRequest) ([]payment.PaymentResponse, error) {
	if err := session.Require(auth.PermissionPaymentView); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var filter payment.Filter
	if req.EmployeeID != "" {
		filter.EmployeeID = &req.EmployeeID
	}
	if req.Method != "" {
		m := payment.Method(req.Method)
		filter.Method = &m
	}
	if req.Period != (period.Query{}) {
		p, err := req.Period.Resolve(s.now())
		if err != nil {
			return nil, err
		}
		filter.Period = &p
	}

	payments, err := s.paymentRepo.ListPayments(ctx, session.AgencyID, filter)
	if err != nil {
		return nil, err
	}
	payments = sortPayments(payments, req.SortBy, req.SortOrder)

	responses := make([]payment.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payment.ToResponse(p))
	}
	return responses, nil
}

func (s *PaymentServiceImpl) Create(ctx context.Context, session auth.Session, req payment.CreatePaymentRequest) (payment.PaymentResponse, error) {
	if err := session.Require(auth.PermissionPaymentManage); err != nil {
		return payment.PaymentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	if _, err := s.employeeRepo.GetEmployeeByID(ctx, req.EmployeeID, session.AgencyID); err != nil {
		return payment.PaymentResponse{}, err
	}

	created, err := s.paymentRepo.CreatePayment(ctx, req.ToEntity(session.AgencyID))
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	return payment.ToResponse(created), nil
}

func sortPayments(payments []payment.Payment, sortBy, sortOrder string) []payment.Payment {
	var less func(a, b payment.Payment) bool
	switch sortBy {
	case "date":
		less = func(a, b payment.Payment) bool { return a.Date.Before(b.Date) }
	case "amount":
		less = func(a, b payment.Payment) bool { return a.Amount.LessThan(b.Amount) }
	case "created_at":
		less = func(a, b payment.Payment) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return payments
	}
	if strings.EqualFold(sortOrder, "desc") {
		less = collection.Descending(less)
	}
	return collection.SortBy(payments, less)
}
