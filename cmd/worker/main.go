// The worker binary runs the retention pruner: on a cron schedule it
// deletes catalogue records older than the configured retention period.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"vid-catalog/internal/config"
	hhttp "vid-catalog/internal/handler/http"
	pgRepo "vid-catalog/internal/infra/adapter/persistence/postgres"
	"vid-catalog/internal/infra/db"
	"vid-catalog/internal/usecase/catalog"
)

const pruneTimeout = 5 * time.Minute

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.RetentionDays <= 0 {
		logger.Info("retention pruning disabled, nothing to do",
			slog.Int("retention_days", cfg.RetentionDays))
		return
	}

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	waitForMigrations(logger, database)

	svc := &catalog.Service{Repo: pgRepo.NewVideoRepo(database)}
	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour

	c := cron.New()
	_, err = c.AddFunc(cfg.PruneSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
		defer cancel()

		deleted, err := svc.PruneOlderThan(ctx, retention)
		if err != nil {
			logger.Error("retention prune failed", slog.Any("error", err))
			return
		}
		hhttp.RecordVideosPruned(deleted)
		logger.Info("retention prune completed",
			slog.Int64("deleted", deleted),
			slog.Int("retention_days", cfg.RetentionDays))
	})
	if err != nil {
		logger.Error("invalid prune schedule",
			slog.String("schedule", cfg.PruneSchedule),
			slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()
	logger.Info("retention worker started",
		slog.String("schedule", cfg.PruneSchedule),
		slog.Int("retention_days", cfg.RetentionDays))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("worker stopped")
}

func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// waitForMigrations blocks until the API server has created the schema.
func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM videos LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}
