package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── stub ───────── */

type stubPurger struct {
	mu       sync.Mutex
	removed  int64
	err      error
	cutoffs  []time.Time
	block    chan struct{}
	started  chan struct{}
	deadline bool
}

func (s *stubPurger) Purge(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	s.mu.Lock()
	s.cutoffs = append(s.cutoffs, cutoff)
	_, s.deadline = ctx.Deadline()
	s.mu.Unlock()
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	return s.removed, 3, s.err
}

func retentionConfig(days int) Config {
	cfg := DefaultConfig()
	cfg.RetentionDays = days
	return cfg
}

var fixedNow = time.Date(2026, 3, 31, 3, 0, 0, 0, time.UTC)

/* ───────── RunOnce ───────── */

func TestRetentionJob_RunOnce(t *testing.T) {
	p := &stubPurger{removed: 7}
	m := NewMetrics()
	purgedBefore := testutil.ToFloat64(m.PurgedTotal)
	okBefore := testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("success"))

	job := NewRetentionJob(p, retentionConfig(30), m, discardLogger())
	job.now = func() time.Time { return fixedNow }

	removed, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)

	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC), p.cutoffs[0])
	assert.True(t, p.deadline, "purge must run under the job timeout")

	assert.Equal(t, purgedBefore+7, testutil.ToFloat64(m.PurgedTotal))
	assert.Equal(t, okBefore+1, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("success")))
}

func TestRetentionJob_RunOnceFailure(t *testing.T) {
	p := &stubPurger{err: errors.New("connection refused")}
	m := NewMetrics()
	failBefore := testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("failure"))

	job := NewRetentionJob(p, retentionConfig(7), m, discardLogger())
	removed, err := job.RunOnce(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, p.err)
	assert.Zero(t, removed)
	assert.Equal(t, failBefore+1, testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("failure")))
}

func TestRetentionJob_SkipsOverlappingRun(t *testing.T) {
	p := &stubPurger{removed: 1, block: make(chan struct{}), started: make(chan struct{})}
	job := NewRetentionJob(p, retentionConfig(1), nil, discardLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = job.RunOnce(context.Background())
	}()
	<-p.started

	// 実行中の二重起動はスキップされる
	removed, err := job.RunOnce(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, removed)

	close(p.block)
	<-done
	assert.Len(t, p.cutoffs, 1)
}

/* ───────── Scheduler ───────── */

func TestNewScheduler(t *testing.T) {
	cfg := retentionConfig(30)
	cfg.Timezone = "Asia/Tokyo"
	s, err := NewScheduler(NewRetentionJob(&stubPurger{}, cfg, nil, discardLogger()), cfg)
	require.NoError(t, err)

	s.Start()
	defer func() { assert.NoError(t, s.Stop(context.Background())) }()

	next := s.Next()
	require.False(t, next.IsZero())
	tokyo := next.In(time.FixedZone("JST", 9*3600))
	assert.Equal(t, 3, tokyo.Hour())
	assert.Equal(t, 0, tokyo.Minute())
}

func TestNewScheduler_InvalidConfig(t *testing.T) {
	job := NewRetentionJob(&stubPurger{}, retentionConfig(1), nil, discardLogger())

	cfg := retentionConfig(1)
	cfg.Schedule = "61 * * * *"
	_, err := NewScheduler(job, cfg)
	assert.Error(t, err)

	cfg = retentionConfig(1)
	cfg.Timezone = "Not/AZone"
	_, err = NewScheduler(job, cfg)
	assert.Error(t, err)
}
