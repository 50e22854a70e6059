// Command worker purges summaries older than RETENTION_DAYS on a cron
// schedule and exposes health probes and metrics on WORKER_HEALTH_PORT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"summary-service/internal/infra/adapter/persistence"
	"summary-service/internal/infra/db"
	workerPkg "summary-service/internal/infra/worker"
	"summary-service/internal/observability/logging"
	sumUC "summary-service/internal/usecase/summary"
)

func main() {
	_ = godotenv.Load()
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := workerPkg.NewMetrics()
	cfg := workerPkg.LoadConfigFromEnv(logger, metrics)
	logger.Info("worker configuration loaded",
		slog.String("schedule", cfg.Schedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("retention_days", cfg.RetentionDays),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.Int("health_port", cfg.HealthPort))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is required")
	}
	conn, dialect, err := db.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := waitForMigrations(ctx, logger, conn); err != nil {
		return err
	}

	repo, err := persistence.NewSummaryRepo(conn, dialect)
	if err != nil {
		return err
	}
	svc := sumUC.NewService(repo, nil)

	health := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	healthDone := make(chan error, 1)
	go func() { healthDone <- health.Start(ctx) }()

	if !cfg.Enabled() {
		logger.Warn("RETENTION_DAYS is not set; summaries are kept forever")
		health.SetReady(true)
		<-ctx.Done()
		return <-healthDone
	}

	job := workerPkg.NewRetentionJob(svc, cfg, metrics, logger)
	if os.Getenv("RETENTION_RUN_ON_START") == "true" {
		if _, err := job.RunOnce(ctx); err != nil {
			logger.Warn("initial retention run failed", slog.Any("error", err))
		}
	}

	sched, err := workerPkg.NewScheduler(job, cfg)
	if err != nil {
		return err
	}
	sched.Start()
	health.SetReady(true)
	logger.Info("retention scheduler started", slog.Time("next_run", sched.Next()))

	<-ctx.Done()
	logger.Info("shutting down worker")
	health.SetReady(false)

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		logger.Warn("retention run still in progress at shutdown", slog.Any("error", err))
	}
	return <-healthDone
}

// waitForMigrations polls until the api process has created the schema.
func waitForMigrations(ctx context.Context, logger *slog.Logger, conn *sql.DB) error {
	const probe = "SELECT 1 FROM summaries LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := conn.ExecContext(ctx, probe); err == nil {
			return nil
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	return errors.New("migrations did not complete in time")
}
