package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder records neural summarizer calls.
type MetricsRecorder interface {
	RecordCall(provider Provider, success bool, duration time.Duration)
	RecordLength(provider Provider, words int)
	RecordLimitExceeded(provider Provider)
	RecordThrottled(provider Provider)
}

// PrometheusMetrics is the MetricsRecorder used in production.
type PrometheusMetrics struct {
	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	length    *prometheus.HistogramVec
	exceeded  *prometheus.CounterVec
	throttled *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

func registerOrExisting[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(C)
		}
	}
	return c
}

// NewPrometheusMetrics returns the process-wide recorder.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			calls: registerOrExisting(prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "neural_summarizer_calls_total",
				Help: "Neural summarizer API calls by provider and result",
			}, []string{"provider", "result"})),
			duration: registerOrExisting(prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "neural_summarizer_duration_seconds",
				Help:    "Latency of neural summarizer API calls",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			}, []string{"provider"})),
			length: registerOrExisting(prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "neural_summary_length_words",
				Help:    "Length of neural summaries in words",
				Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800},
			}, []string{"provider"})),
			exceeded: registerOrExisting(prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "neural_summary_limit_exceeded_total",
				Help: "Neural summaries longer than the requested word limit",
			}, []string{"provider"})),
			throttled: registerOrExisting(prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "neural_summarizer_throttled_total",
				Help: "Calls rejected by the client-side rate limiter",
			}, []string{"provider"})),
		}
	})
	return prometheusMetricsInstance
}

func (p *PrometheusMetrics) RecordCall(provider Provider, success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	p.calls.WithLabelValues(string(provider), result).Inc()
	p.duration.WithLabelValues(string(provider)).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) RecordLength(provider Provider, words int) {
	p.length.WithLabelValues(string(provider)).Observe(float64(words))
}

func (p *PrometheusMetrics) RecordLimitExceeded(provider Provider) {
	p.exceeded.WithLabelValues(string(provider)).Inc()
}

func (p *PrometheusMetrics) RecordThrottled(provider Provider) {
	p.throttled.WithLabelValues(string(provider)).Inc()
}
