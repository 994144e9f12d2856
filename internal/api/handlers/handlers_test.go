package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecodejesters/visaadmin/internal/audit"
	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/models"
	"github.com/thecodejesters/visaadmin/internal/permitrule"
	"github.com/thecodejesters/visaadmin/internal/validation"
)

type probe struct {
	pingErr error
	tables  map[string]error
}

func (p probe) Ping(ctx context.Context) error { return p.pingErr }

func (p probe) TableAccessible(ctx context.Context, table string) error { return p.tables[table] }

func testConfig() *config.Config {
	return &config.Config{
		Env:      "production",
		Server:   config.ServerConfig{Port: 8080, CORSOrigins: []string{"*"}},
		Supabase: config.SupabaseConfig{URL: "https://abcd.supabase.co/rest/v1", ServiceKey: "svc"},
		Auth:     config.AuthConfig{DevBypass: true, AdminEmails: []string{"dev@localhost.com"}},
	}
}

func get(h http.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestDatabaseHealthReportsFailingTable(t *testing.T) {
	h := NewHealthHandler(probe{tables: map[string]error{tableRequiredDocuments: errors.New("permission denied")}}, nil, testConfig())

	rec := get(h.Database)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var got models.DatabaseHealth
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "connected", got.Database)
	assert.False(t, got.AllTestsPassed)
	assert.True(t, got.Services[tablePermitRules])
	assert.False(t, got.Services[tableRequiredDocuments])
}

func TestDatabaseHealthDisconnected(t *testing.T) {
	h := NewHealthHandler(probe{pingErr: errors.New("dial tcp: refused")}, nil, testConfig())

	rec := get(h.Database)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"disconnected"`)
}

func TestDiagnostics(t *testing.T) {
	h := NewHealthHandler(probe{tables: map[string]error{tablePermitRules: errors.New("relation does not exist")}}, nil, testConfig())

	rec := get(h.Diagnostics)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Diagnostics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "https://abcd.supabase.co", got.Supabase.URL)
	assert.Equal(t, "supabase-cloud", got.Supabase.URLType)
	assert.True(t, got.Supabase.HasServiceKey)
	assert.False(t, got.Supabase.HasAnonKey)
	assert.False(t, got.Server.IsDevelopment)
	require.NotNil(t, got.Tests.TableAccess)
	assert.False(t, got.Tests.TableAccess.PermitRules)
	require.NotNil(t, got.Tests.TableAccess.PermitRulesError)
	assert.Contains(t, *got.Tests.TableAccess.PermitRulesError, "relation does not exist")
	assert.True(t, got.Tests.TableAccess.RequiredDocuments)
}

func TestDiagnosticsWithoutDatabase(t *testing.T) {
	rec := get(NewHealthHandler(nil, nil, testConfig()).Diagnostics)

	var got models.Diagnostics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Nil(t, got.Tests.BasicConnection)
	assert.Equal(t, "database not configured", got.Tests.Error)
}

func TestReadyz(t *testing.T) {
	rec := get(NewHealthHandler(probe{}, probe{pingErr: errors.New("redis down")}, testConfig()).Readyz)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")

	rec = get(NewHealthHandler(probe{}, probe{}, testConfig()).Readyz)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnvCheckWarnsAboutBypassInProduction(t *testing.T) {
	rec := get(NewHealthHandler(nil, nil, testConfig()).EnvCheck)

	var got struct {
		Env      map[string]string `json:"env"`
		Warnings []string          `json:"warnings"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "missing", got.Env["DATABASE_URL"])
	assert.Equal(t, "set", got.Env["SUPABASE_SERVICE_KEY"])
	assert.NotContains(t, got.Env, "DEV_BYPASS_AUTH")
	assert.Contains(t, got.Warnings, "dev auth bypass is enabled outside development")
	assert.NotContains(t, rec.Body.String(), "svc")
}

func TestURLType(t *testing.T) {
	tests := map[string]string{
		"":                          "missing",
		"not a url":                 "missing",
		"https://xyz.supabase.co":   "supabase-cloud",
		"http://localhost:54321":    "local",
		"http://127.0.0.1:54321":    "local",
		"https://db.example.com/db": "custom",
	}
	for in, want := range tests {
		assert.Equal(t, want, urlType(in), in)
	}
}

type auditReader struct {
	got audit.Query
}

func (a *auditReader) GetAuditLogs(ctx context.Context, q audit.Query) ([]models.AuditLog, error) {
	a.got = q
	return []models.AuditLog{{Action: audit.ActionCreate}}, nil
}

func TestAuditLogsQuery(t *testing.T) {
	reader := &auditReader{}
	h := NewAuditHandler(reader)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/audit-logs?action=clone&limit=10&offset=20&start_date=2026-01-02T00:00:00Z", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "clone", reader.got.Action)
	assert.Equal(t, 10, reader.got.Limit)
	assert.Equal(t, 20, reader.got.Offset)
	require.NotNil(t, reader.got.StartDate)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/audit-logs?end_date=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteServiceError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/permit-rules/1", nil)
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{&validation.Error{Fields: []string{"title is required"}}, http.StatusBadRequest, "validation failed: title is required"},
		{permitrule.ErrNotFound, http.StatusNotFound, "permit rule not found"},
		{fmt.Errorf("get permit rule: %w", errors.New("read tcp 10.0.0.4:5432: connection reset")), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeServiceError(rec, req, tt.err)
		assert.Equal(t, tt.status, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tt.msg, body["error"])
	}
}
