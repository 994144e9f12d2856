package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/thecodejesters/visaadmin/internal/api/handlers"
	"github.com/thecodejesters/visaadmin/internal/api/middleware"
	"github.com/thecodejesters/visaadmin/internal/auth"
	"github.com/thecodejesters/visaadmin/internal/config"
)

// Deps are the services the router exposes. Database and Redis may be nil.
type Deps struct {
	Config       *config.Config
	PermitRules  handlers.PermitRuleService
	RequiredDocs handlers.RequiredDocumentService
	AuditLogs    handlers.AuditLogReader
	Database     handlers.DatabaseProbe
	Redis        handlers.Pinger
	Metrics      *middleware.Metrics
	RateLimiter  *middleware.RateLimiter
}

type Router struct {
	mux  *chi.Mux
	deps Deps
	auth *auth.Middleware
}

func NewRouter(deps Deps) *Router {
	if deps.Metrics == nil {
		deps.Metrics = middleware.NewMetrics()
	}
	return &Router{
		mux:  chi.NewRouter(),
		deps: deps,
		auth: auth.NewMiddleware(deps.Config.Auth),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux
	cfg := rt.deps.Config

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(rt.deps.Metrics.Instrument)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	if rt.deps.RateLimiter != nil {
		r.Use(rt.deps.RateLimiter.Limit)
	}

	health := handlers.NewHealthHandler(rt.deps.Database, rt.deps.Redis, cfg)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/health", health.Health)
	r.Get("/health/db", health.Database)
	r.Get("/health/diagnostics", health.Diagnostics)
	r.Handle("/metrics", rt.deps.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(rt.auth.Authenticate)

		rules := handlers.NewPermitRuleHandler(rt.deps.PermitRules)
		r.Route("/permit-rules", func(r chi.Router) {
			r.Get("/", rules.List)
			r.Post("/", rules.Create)
			r.Get("/{id}", rules.Get)
			r.Put("/{id}", rules.Update)
			r.Delete("/{id}", rules.Delete)
			r.Post("/{id}/clone", rules.Clone)
		})

		docs := handlers.NewRequiredDocumentHandler(rt.deps.RequiredDocs)
		r.Route("/required-documents", func(r chi.Router) {
			r.Get("/", docs.List)
			r.Post("/", docs.Create)
			r.Get("/{id}", docs.Get)
			r.Put("/{id}", docs.Update)
			r.Delete("/{id}", docs.Delete)
			r.Post("/{id}/clone", docs.Clone)
		})

		if rt.deps.AuditLogs != nil {
			r.Get("/audit-logs", handlers.NewAuditHandler(rt.deps.AuditLogs).List)
		}
		r.Get("/env-check", health.EnvCheck)
	})

	return r
}
