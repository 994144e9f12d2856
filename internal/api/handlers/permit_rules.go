package handlers

import (
	"context"
	"net/http"

	"github.com/thecodejesters/visaadmin/internal/models"
)

type PermitRuleService interface {
	List(ctx context.Context) ([]models.PermitRule, error)
	Get(ctx context.Context, id int64) (*models.PermitRule, error)
	Create(ctx context.Context, in models.PermitRuleInput) (*models.PermitRule, error)
	Update(ctx context.Context, id int64, patch models.PermitRulePatch) (*models.PermitRule, error)
	Delete(ctx context.Context, id int64) error
	Clone(ctx context.Context, id int64) (*models.PermitRule, error)
}

type PermitRuleHandler struct {
	svc PermitRuleService
}

func NewPermitRuleHandler(svc PermitRuleService) *PermitRuleHandler {
	return &PermitRuleHandler{svc: svc}
}

func (h *PermitRuleHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *PermitRuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	rule, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *PermitRuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PermitRuleInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rule, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *PermitRuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch models.PermitRulePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rule, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (h *PermitRuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PermitRuleHandler) Clone(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	rule, err := h.svc.Clone(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}
