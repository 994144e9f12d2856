package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/thecodejesters/visaadmin/internal/audit"
	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/database"
	"github.com/thecodejesters/visaadmin/internal/logger"
	"github.com/thecodejesters/visaadmin/internal/queue"
	"github.com/thecodejesters/visaadmin/internal/queue/workers"
)

const concurrency = 4

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", false)
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Redis),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default":        3,
				queue.QueueAudit: 1,
			},
		},
	)

	slog.Info("starting worker", "concurrency", concurrency)
	if err := srv.Run(workers.NewServeMux(audit.NewService(db))); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
