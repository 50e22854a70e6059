package metrics

import (
	"errors"
	"time"

	"summary-service/internal/summarize"
)

// RecordSummary records a produced summary and every failed step before it.
// duration is the engine time; pass 0 for cache hits.
func RecordSummary(res summarize.Result, words int, duration time.Duration) {
	SummariesProducedTotal.WithLabelValues(string(res.Method)).Inc()
	for _, a := range res.Attempts {
		if a.Err == nil {
			continue
		}
		SummarizerFallbacksTotal.WithLabelValues(string(a.Method), FallbackReason(a.Err)).Inc()
	}
	if duration > 0 {
		SummarizationDuration.Observe(duration.Seconds())
		DocumentWords.Observe(float64(words))
	}
}

// FallbackReason maps an attempt error to a low-cardinality label.
func FallbackReason(err error) string {
	switch {
	case errors.Is(err, summarize.ErrRankingComputation):
		return "ranking"
	case errors.Is(err, summarize.ErrExternalService):
		return "external"
	case errors.Is(err, summarize.ErrDegenerateOutput):
		return "degenerate"
	default:
		return "other"
	}
}

// RecordCacheLookup records a summary cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		SummaryCacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	SummaryCacheLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordContentFetch records a URL fetch and its duration.
func RecordContentFetch(success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	ContentFetchAttemptsTotal.WithLabelValues(result).Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordPersist records the outcome of a summary write.
func RecordPersist(success bool) {
	if success {
		SummariesPersistedTotal.WithLabelValues("success").Inc()
		return
	}
	SummariesPersistedTotal.WithLabelValues("failure").Inc()
}

// RecordPurge records rows removed by retention and the remaining total.
func RecordPurge(removed, remaining int64) {
	SummariesPurgedTotal.Add(float64(removed))
	SummariesStored.Set(float64(remaining))
}

// RecordDBQuery records the duration of a database operation such as
// "insert_summary" or "list_summaries".
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
