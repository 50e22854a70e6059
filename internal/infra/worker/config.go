// Package worker runs the scheduled retention purge of stored summaries and
// the health and metrics endpoints of the standalone worker process.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"summary-service/internal/config"
)

// Config controls the retention job.
type Config struct {
	// Schedule is a standard five-field cron expression.
	Schedule string
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string
	// RetentionDays is the age after which summaries are purged. Zero or
	// less disables the job.
	RetentionDays int
	// JobTimeout bounds one purge run.
	JobTimeout time.Duration
	// HealthPort serves /health, /health/ready and /metrics in cmd/worker.
	HealthPort int
}

// DefaultConfig returns a disabled job scheduled daily at 03:00 UTC.
func DefaultConfig() Config {
	return Config{
		Schedule:      "0 3 * * *",
		Timezone:      "UTC",
		RetentionDays: 0,
		JobTimeout:    10 * time.Minute,
		HealthPort:    9091,
	}
}

// Enabled reports whether summaries expire at all.
func (c Config) Enabled() bool { return c.RetentionDays > 0 }

// Validate checks every field and reports all failures together.
func (c Config) Validate() error {
	var errs []error
	if err := validateSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if c.RetentionDays > 3650 {
		errs = append(errs, fmt.Errorf("retention days must be at most 3650, got %d", c.RetentionDays))
	}
	if c.JobTimeout <= 0 {
		errs = append(errs, errors.New("job timeout must be positive"))
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		errs = append(errs, fmt.Errorf("health port must be between 1024 and 65535, got %d", c.HealthPort))
	}
	return errors.Join(errs...)
}

func validateSchedule(expr string) error {
	if expr == "" {
		return errors.New("cron expression is required")
	}
	_, err := cron.ParseStandard(expr)
	return err
}

// LoadConfigFromEnv reads RETENTION_SCHEDULE, RETENTION_TIMEZONE,
// RETENTION_DAYS, RETENTION_JOB_TIMEOUT and WORKER_HEALTH_PORT. Invalid
// values fall back to their defaults with a warning so the worker always
// starts; every fallback is counted in metrics.
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) Config {
	def := DefaultConfig()
	cfg := Config{
		Schedule:      config.GetEnvOrDefault("RETENTION_SCHEDULE", def.Schedule),
		Timezone:      config.GetEnvOrDefault("RETENTION_TIMEZONE", def.Timezone),
		RetentionDays: config.GetEnvInt("RETENTION_DAYS", def.RetentionDays),
		JobTimeout:    config.GetEnvDuration("RETENTION_JOB_TIMEOUT", def.JobTimeout),
		HealthPort:    config.GetEnvInt("WORKER_HEALTH_PORT", def.HealthPort),
	}

	fallback := func(field, envKey string, invalid any, err error) {
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("env_key", envKey),
			slog.Any("invalid_value", invalid),
			slog.String("error", err.Error()))
		metrics.RecordConfigFallback(field)
	}

	if err := validateSchedule(cfg.Schedule); err != nil {
		fallback("schedule", "RETENTION_SCHEDULE", cfg.Schedule, err)
		cfg.Schedule = def.Schedule
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		fallback("timezone", "RETENTION_TIMEZONE", cfg.Timezone, err)
		cfg.Timezone = def.Timezone
	}
	if cfg.RetentionDays > 3650 {
		fallback("retention_days", "RETENTION_DAYS", cfg.RetentionDays, errors.New("out of range"))
		cfg.RetentionDays = def.RetentionDays
	}
	if cfg.JobTimeout <= 0 {
		fallback("job_timeout", "RETENTION_JOB_TIMEOUT", cfg.JobTimeout, errors.New("must be positive"))
		cfg.JobTimeout = def.JobTimeout
	}
	if cfg.HealthPort < 1024 || cfg.HealthPort > 65535 {
		fallback("health_port", "WORKER_HEALTH_PORT", cfg.HealthPort, errors.New("out of range"))
		cfg.HealthPort = def.HealthPort
	}
	return cfg
}

// hostname is used to label log lines from several worker replicas.
func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
