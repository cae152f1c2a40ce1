package http

import (
	"net/http"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/bonus"
	"github.com/cmlabs-hris/agency-earnings-go/internal/handler/http/response"
)

type BonusRuleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type bonusRuleHandlerImpl struct {
	bonusRuleService bonus.BonusRuleService
}

func NewBonusRuleHandler(bonusRuleService bonus.BonusRuleService) BonusRuleHandler {
	return &bonusRuleHandlerImpl{bonusRuleService: bonusRuleService}
}

func (h *bonusRuleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	req := bonus.ListBonusRulesRequest{EmployeeID: r.URL.Query().Get("employee_id")}

	result, err := h.bonusRuleService.List(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusRuleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	result, err := h.bonusRuleService.Get(r.Context(), session, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusRuleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req bonus.CreateBonusRuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.bonusRuleService.Create(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus rule created", result)
}

func (h *bonusRuleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req bonus.UpdateBonusRuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.bonusRuleService.Update(r.Context(), session, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus rule updated", result)
}

func (h *bonusRuleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.bonusRuleService.Delete(r.Context(), session, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus rule deleted", nil)
}
