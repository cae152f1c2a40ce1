package http

import (
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/payment"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/response"
)

type PaymentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService}
}

func (h *paymentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := payment.ListPaymentsRequest{
		EmployeeID: q.Get("employee_id"),
		Period:     periodQuery(r),
		Method:     q.Get("method"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
	}

	result, err := h.paymentService.List(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req payment.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.paymentService.Create(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment recorded", result)
}
