package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"summary-service/internal/handler/http/respond"
)

// Purger deletes summaries created before cutoff and reports how many rows
// were removed and how many remain.
type Purger interface {
	Purge(ctx context.Context, cutoff time.Time) (removed, remaining int64, err error)
}

// RetentionJob deletes summaries older than the configured retention period.
type RetentionJob struct {
	purger  Purger
	cfg     Config
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time

	// guards against overlapping runs when a purge outlasts the schedule
	running sync.Mutex
}

// NewRetentionJob wires a job. metrics may be nil.
func NewRetentionJob(p Purger, cfg Config, m *Metrics, logger *slog.Logger) *RetentionJob {
	if m == nil {
		m = NewMetrics()
	}
	return &RetentionJob{
		purger:  p,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With(slog.String("job", "retention"), slog.String("host", hostname())),
		now:     time.Now,
	}
}

// Cutoff is the creation time before which summaries are purged.
func (j *RetentionJob) Cutoff() time.Time {
	return j.now().AddDate(0, 0, -j.cfg.RetentionDays)
}

// RunOnce performs one purge bounded by the job timeout. A run that starts
// while another is in progress is skipped and returns (0, nil).
func (j *RetentionJob) RunOnce(ctx context.Context) (int64, error) {
	if !j.running.TryLock() {
		j.logger.Warn("retention run skipped: previous run still in progress")
		return 0, nil
	}
	defer j.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, j.cfg.JobTimeout)
	defer cancel()

	start := time.Now()
	cutoff := j.Cutoff()
	removed, remaining, err := j.purger.Purge(ctx, cutoff)
	elapsed := time.Since(start)
	j.metrics.RecordJobDuration(elapsed.Seconds())

	if err != nil {
		j.metrics.RecordJobRun("failure")
		j.logger.Error("retention run failed",
			slog.Time("cutoff", cutoff),
			slog.Duration("duration", elapsed),
			slog.String("error", respond.SanitizeError(err)))
		return 0, fmt.Errorf("purge summaries before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	j.metrics.RecordJobRun("success")
	j.metrics.RecordPurged(removed)
	j.metrics.RecordLastSuccess()
	j.logger.Info("retention run completed",
		slog.Time("cutoff", cutoff),
		slog.Int64("removed", removed),
		slog.Int64("remaining", remaining),
		slog.Duration("duration", elapsed))
	return removed, nil
}

// Scheduler runs a RetentionJob on its cron schedule.
type Scheduler struct {
	cron *cron.Cron
	job  *RetentionJob
}

// NewScheduler registers job on cfg.Schedule in cfg.Timezone. The job is not
// run until Start is called.
func NewScheduler(job *RetentionJob, cfg Config) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(cfg.Schedule, func() {
		_, _ = job.RunOnce(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("add retention schedule %q: %w", cfg.Schedule, err)
	}
	return &Scheduler{cron: c, job: job}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running purge up to ctx's deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next reports the next scheduled run, zero if none.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
