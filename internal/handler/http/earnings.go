package http

import (
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/earnings"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/response"
)

type EarningsHandler interface {
	Reconcile(w http.ResponseWriter, r *http.Request)
	EmployeeEarnings(w http.ResponseWriter, r *http.Request)
	ListSnapshots(w http.ResponseWriter, r *http.Request)
}

type earningsHandlerImpl struct {
	earningsService earnings.EarningsService
}

func NewEarningsHandler(earningsService earnings.EarningsService) EarningsHandler {
	return &earningsHandlerImpl{earningsService: earningsService}
}

func (h *earningsHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	req := earnings.ReconciliationRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Period:     periodQuery(r),
	}

	result, err := h.earningsService.Reconcile(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *earningsHandlerImpl) EmployeeEarnings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	result, err := h.earningsService.EmployeeEarnings(r.Context(), session, id, periodQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *earningsHandlerImpl) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	req := earnings.ListSnapshotsRequest{Limit: r.URL.Query().Get("limit")}

	result, err := h.earningsService.ListSnapshots(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
