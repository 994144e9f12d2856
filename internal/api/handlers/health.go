package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/models"
)

const serviceName = "visa-admin-api"

const (
	tablePermitRules       = "permit_rules"
	tableRequiredDocuments = "required_documents"
)

type DatabaseProbe interface {
	Ping(ctx context.Context) error
	TableAccessible(ctx context.Context, table string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      DatabaseProbe
	redis   Pinger
	cfg     *config.Config
	started time.Time
}

// NewHealthHandler accepts nil probes; the corresponding checks are skipped.
func NewHealthHandler(db DatabaseProbe, redis Pinger, cfg *config.Config) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, cfg: cfg, started: time.Now()}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(r.Context()); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]any{"status": statusStr(status), "checks": checks})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
	})
}

func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	res := models.DatabaseHealth{
		Status:    "unhealthy",
		Database:  "disconnected",
		Services:  map[string]bool{tablePermitRules: false, tableRequiredDocuments: false},
		Timestamp: time.Now().UTC(),
	}

	if h.db == nil || h.db.Ping(r.Context()) != nil {
		writeJSON(w, http.StatusServiceUnavailable, res)
		return
	}
	res.Database = "connected"

	res.AllTestsPassed = true
	for table := range res.Services {
		ok := h.db.TableAccessible(r.Context(), table) == nil
		res.Services[table] = ok
		res.AllTestsPassed = res.AllTestsPassed && ok
	}

	status := http.StatusServiceUnavailable
	if res.AllTestsPassed {
		res.Status = "healthy"
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}

func (h *HealthHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	d := models.Diagnostics{
		Server: models.ServerDiagnostics{
			NodeEnv:       h.cfg.Env,
			Port:          h.cfg.Server.Port,
			IsDevelopment: h.cfg.IsDevelopment(),
			Uptime:        now.Sub(h.started).Seconds(),
			Timestamp:     now,
		},
		Supabase: models.SupabaseDiagnostics{
			URL:           maskURL(h.cfg.Supabase.URL),
			HasAnonKey:    h.cfg.Supabase.AnonKey != "",
			HasServiceKey: h.cfg.Supabase.ServiceKey != "",
			URLType:       urlType(h.cfg.Supabase.URL),
		},
		CORS: models.CORSDiagnostics{Origins: h.cfg.Server.CORSOrigins},
	}

	if h.db == nil {
		d.Tests.Error = "database not configured"
		writeJSON(w, http.StatusOK, d)
		return
	}

	connected := h.db.Ping(r.Context()) == nil
	d.Tests.BasicConnection = &connected
	if !connected {
		d.Tests.Error = "database ping failed"
		writeJSON(w, http.StatusOK, d)
		return
	}

	access := &models.TableAccess{}
	if err := h.db.TableAccessible(r.Context(), tablePermitRules); err != nil {
		msg := err.Error()
		access.PermitRulesError = &msg
	} else {
		access.PermitRules = true
	}
	if err := h.db.TableAccessible(r.Context(), tableRequiredDocuments); err != nil {
		msg := err.Error()
		access.RequiredDocumentsError = &msg
	} else {
		access.RequiredDocuments = true
	}
	d.Tests.TableAccess = access

	writeJSON(w, http.StatusOK, d)
}

// EnvCheck reports which settings are present without revealing their values.
func (h *HealthHandler) EnvCheck(w http.ResponseWriter, r *http.Request) {
	present := func(ok bool) string {
		if ok {
			return "set"
		}
		return "missing"
	}

	env := map[string]string{
		"APP_ENV":              h.cfg.Env,
		"DATABASE_URL":         present(h.cfg.Database.URL != ""),
		"SUPABASE_URL":         present(h.cfg.Supabase.URL != ""),
		"SUPABASE_SERVICE_KEY": present(h.cfg.Supabase.ServiceKey != ""),
		"SUPABASE_JWT_SECRET":  present(h.cfg.Auth.JWTSecret != ""),
		"ADMIN_EMAILS":         present(len(h.cfg.Auth.AdminEmails) > 0),
	}
	if h.cfg.IsDevelopment() {
		env["DEV_BYPASS_AUTH"] = present(h.cfg.Auth.DevBypass)
		env["DEV_USER_EMAIL"] = present(h.cfg.Auth.DevUserEmail != "")
	}

	warnings := []string{}
	if h.cfg.Auth.DevBypass && !h.cfg.IsDevelopment() {
		warnings = append(warnings, "dev auth bypass is enabled outside development")
	}
	if len(h.cfg.Server.CORSOrigins) == 1 && h.cfg.Server.CORSOrigins[0] == "*" && !h.cfg.IsDevelopment() {
		warnings = append(warnings, "CORS allows every origin")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Environment Variables Check",
		"env":       env,
		"timestamp": time.Now().UTC(),
		"warnings":  warnings,
	})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

func urlType(raw string) string {
	u, err := url.Parse(raw)
	if raw == "" || err != nil || u.Host == "" {
		return "missing"
	}
	host := u.Hostname()
	switch {
	case strings.HasSuffix(host, ".supabase.co"):
		return "supabase-cloud"
	case host == "localhost" || host == "127.0.0.1" || host == "::1":
		return "local"
	default:
		return "custom"
	}
}

// maskURL keeps scheme and host only.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if raw == "" || err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
