package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/thecodejesters/visaadmin/internal/audit"
	"github.com/thecodejesters/visaadmin/internal/models"
)

type AuditLogReader interface {
	GetAuditLogs(ctx context.Context, q audit.Query) ([]models.AuditLog, error)
}

type AuditHandler struct {
	logs AuditLogReader
}

func NewAuditHandler(logs AuditLogReader) *AuditHandler {
	return &AuditHandler{logs: logs}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := audit.Query{
		Action:       params.Get("action"),
		ResourceType: params.Get("resource_type"),
	}
	q.Limit, _ = strconv.Atoi(params.Get("limit"))
	q.Offset, _ = strconv.Atoi(params.Get("offset"))

	if s := params.Get("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		q.StartDate = &t
	}
	if s := params.Get("end_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
		q.EndDate = &t
	}

	logs, err := h.logs.GetAuditLogs(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"audit_logs": logs, "count": len(logs)})
}
