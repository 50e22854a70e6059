package worker

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the retention job collectors.
type Metrics struct {
	JobRunsTotal       *prometheus.CounterVec
	JobDurationSeconds prometheus.Histogram
	PurgedTotal        prometheus.Counter
	LastSuccess        prometheus.Gauge
	ConfigFallbacks    *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics returns the process-wide retention metrics, registering them
// with the default registry on first use.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "retention_job_runs_total",
				Help: "Retention purge runs by status (success/failure)",
			}, []string{"status"}),
			JobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "retention_job_duration_seconds",
				Help:    "Duration of retention purge runs in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
			}),
			PurgedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "retention_summaries_purged_total",
				Help: "Summaries deleted by the retention job",
			}),
			LastSuccess: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "retention_job_last_success_timestamp",
				Help: "Unix timestamp of the last successful retention run",
			}),
			ConfigFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "retention_config_fallbacks_total",
				Help: "Invalid retention settings replaced by defaults, by field",
			}, []string{"field"}),
		}
	})
	return metrics
}

func (m *Metrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

func (m *Metrics) RecordPurged(n int64) {
	if n > 0 {
		m.PurgedTotal.Add(float64(n))
	}
}

func (m *Metrics) RecordLastSuccess() {
	m.LastSuccess.SetToCurrentTime()
}

func (m *Metrics) RecordConfigFallback(field string) {
	m.ConfigFallbacks.WithLabelValues(field).Inc()
}
