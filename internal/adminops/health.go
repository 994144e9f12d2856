package adminops

import (
	"context"
	"net/http"

	"github.com/thecodejesters/visaadmin/internal/apiclient"
	"github.com/thecodejesters/visaadmin/internal/models"
)

// Health wraps the unauthenticated monitoring endpoints. Unlike the entity
// operations it returns errors as-is.
type Health struct {
	doer Doer
}

func NewHealth(d Doer) *Health {
	return &Health{doer: d}
}

func (h *Health) Check(ctx context.Context) (*models.HealthStatus, error) {
	var out models.HealthStatus
	if err := h.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *Health) CheckDatabase(ctx context.Context) (*models.DatabaseHealth, error) {
	var out models.DatabaseHealth
	if err := h.get(ctx, "/health/db", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *Health) Diagnostics(ctx context.Context) (*models.Diagnostics, error) {
	var out models.Diagnostics
	if err := h.get(ctx, "/health/diagnostics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *Health) get(ctx context.Context, path string, out any) error {
	return h.doer.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: path}, out)
}
