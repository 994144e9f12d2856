package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thecodejesters/visaadmin/internal/api"
	"github.com/thecodejesters/visaadmin/internal/api/handlers"
	"github.com/thecodejesters/visaadmin/internal/api/middleware"
	"github.com/thecodejesters/visaadmin/internal/audit"
	"github.com/thecodejesters/visaadmin/internal/cache"
	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/database"
	"github.com/thecodejesters/visaadmin/internal/logger"
	"github.com/thecodejesters/visaadmin/internal/permitrule"
	"github.com/thecodejesters/visaadmin/internal/queue"
	"github.com/thecodejesters/visaadmin/internal/requireddoc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", false)
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.DevBypass && !cfg.IsDevelopment() {
		slog.Warn("dev auth bypass is enabled outside development", "env", cfg.Env)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, database.MigrationSource(cfg.Database.MigrationsPath)); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	auditSvc := audit.NewService(db)

	// Redis is optional: without it lists are not cached and audit entries are written inline.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	var (
		listCache *cache.Cache
		recorder  audit.Recorder = auditSvc
		redisPing handlers.Pinger
	)
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, running without cache or queue", "error", err)
	} else {
		listCache = cache.NewCache(rdb, cfg.Redis.CacheTTL)
		redisPing = listCache

		qc := queue.NewClient(cfg.Redis)
		defer qc.Close()
		recorder = qc
	}

	var ruleCache permitrule.ListCache
	var docCache requireddoc.ListCache
	if listCache != nil {
		ruleCache, docCache = listCache, listCache
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	go limiter.Cleanup(ctx)

	router := api.NewRouter(api.Deps{
		Config:       cfg,
		PermitRules:  permitrule.NewService(permitrule.NewPgStore(db), ruleCache, recorder),
		RequiredDocs: requireddoc.NewService(requireddoc.NewPgStore(db), docCache, recorder),
		AuditLogs:    auditSvc,
		Database:     database.NewProbe(db),
		Redis:        redisPing,
		Metrics:      middleware.NewMetrics(),
		RateLimiter:  limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
