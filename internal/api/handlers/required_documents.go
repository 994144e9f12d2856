package handlers

import (
	"context"
	"net/http"

	"github.com/thecodejesters/visaadmin/internal/models"
)

type RequiredDocumentService interface {
	List(ctx context.Context) ([]models.RequiredDocument, error)
	Get(ctx context.Context, id int64) (*models.RequiredDocument, error)
	Create(ctx context.Context, in models.RequiredDocumentInput) (*models.RequiredDocument, error)
	Update(ctx context.Context, id int64, patch models.RequiredDocumentPatch) (*models.RequiredDocument, error)
	Delete(ctx context.Context, id int64) error
	Clone(ctx context.Context, id int64) (*models.RequiredDocument, error)
}

type RequiredDocumentHandler struct {
	svc RequiredDocumentService
}

func NewRequiredDocumentHandler(svc RequiredDocumentService) *RequiredDocumentHandler {
	return &RequiredDocumentHandler{svc: svc}
}

func (h *RequiredDocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *RequiredDocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *RequiredDocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.RequiredDocumentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *RequiredDocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch models.RequiredDocumentPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *RequiredDocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *RequiredDocumentHandler) Clone(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.Clone(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
