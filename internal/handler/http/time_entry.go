package http

import (
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/response"
)

type TimeEntryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	timeEntryService timeentry.TimeEntryService
}

func NewTimeEntryHandler(timeEntryService timeentry.TimeEntryService) TimeEntryHandler {
	return &timeEntryHandlerImpl{timeEntryService: timeEntryService}
}

func (h *timeEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := timeentry.ListTimeEntriesRequest{
		EmployeeID: q.Get("employee_id"),
		Period:     periodQuery(r),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
	}

	result, err := h.timeEntryService.List(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timeEntryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	result, err := h.timeEntryService.Get(r.Context(), session, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timeEntryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req timeentry.CreateTimeEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.timeEntryService.Create(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time entry created", result)
}

func (h *timeEntryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req timeentry.UpdateTimeEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.timeEntryService.Update(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry updated", result)
}

func (h *timeEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.timeEntryService.Delete(r.Context(), session, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry deleted", nil)
}
