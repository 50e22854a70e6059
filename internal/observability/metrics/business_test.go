package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summary-service/internal/summarize"
)

func TestRecordSummary(t *testing.T) {
	beforeFreq := testutil.ToFloat64(SummariesProducedTotal.WithLabelValues("frequency"))
	beforeFallback := testutil.ToFloat64(SummarizerFallbacksTotal.WithLabelValues("centrality", "ranking"))

	RecordSummary(summarize.Result{
		Method: summarize.MethodFrequency,
		Attempts: []summarize.Attempt{
			{Method: summarize.MethodCentrality, Err: fmt.Errorf("%w: no edges", summarize.ErrRankingComputation)},
			{Method: summarize.MethodFrequency},
		},
	}, 320, 15*time.Millisecond)

	assert.Equal(t, beforeFreq+1, testutil.ToFloat64(SummariesProducedTotal.WithLabelValues("frequency")))
	assert.Equal(t, beforeFallback+1, testutil.ToFloat64(SummarizerFallbacksTotal.WithLabelValues("centrality", "ranking")))
}

func histogram(t *testing.T, h interface{ Write(*dto.Metric) error }) *dto.Histogram {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	require.NotNil(t, m.GetHistogram())
	return m.GetHistogram()
}

func TestRecordSummary_ObservesDurationAndWords(t *testing.T) {
	before := histogram(t, DocumentWords)

	RecordSummary(summarize.Result{Method: summarize.MethodCentrality}, 640, 40*time.Millisecond)
	after := histogram(t, DocumentWords)
	assert.Equal(t, before.GetSampleCount()+1, after.GetSampleCount())
	assert.InDelta(t, before.GetSampleSum()+640, after.GetSampleSum(), 1e-9)

	// キャッシュヒットは duration 0 で記録され、分布には入らない
	RecordSummary(summarize.Result{Method: summarize.MethodCentrality}, 640, 0)
	assert.Equal(t, after.GetSampleCount(), histogram(t, DocumentWords).GetSampleCount())
}

func TestFallbackReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: x", summarize.ErrRankingComputation), "ranking"},
		{fmt.Errorf("%w: x", summarize.ErrExternalService), "external"},
		{fmt.Errorf("%w: x", summarize.ErrDegenerateOutput), "degenerate"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FallbackReason(tt.err))
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(SummaryCacheLookupsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(SummaryCacheLookupsTotal.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(SummaryCacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(SummaryCacheLookupsTotal.WithLabelValues("miss")))
}

func TestRecordPurge(t *testing.T) {
	before := testutil.ToFloat64(SummariesPurgedTotal)
	RecordPurge(7, 93)
	assert.Equal(t, before+7, testutil.ToFloat64(SummariesPurgedTotal))
	assert.Equal(t, 93.0, testutil.ToFloat64(SummariesStored))
}

func TestRecorders_DoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordPersist(true)
		RecordPersist(false)
		RecordContentFetch(true, time.Second)
		RecordContentFetch(false, 0)
		RecordDBQuery("insert_summary", 3*time.Millisecond)
		RecordHTTPRequest("POST", "/api/summarize", "200", 20*time.Millisecond, 512, 128)
	})
}
