package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_Singleton(t *testing.T) {
	assert.Same(t, NewMetrics(), NewMetrics())
}

func TestMetrics_RecordPurgedIgnoresZero(t *testing.T) {
	m := NewMetrics()
	before := testutil.ToFloat64(m.PurgedTotal)
	m.RecordPurged(0)
	m.RecordPurged(-3)
	assert.Equal(t, before, testutil.ToFloat64(m.PurgedTotal))
	m.RecordPurged(2)
	assert.Equal(t, before+2, testutil.ToFloat64(m.PurgedTotal))
}

func TestMetrics_RecordLastSuccess(t *testing.T) {
	m := NewMetrics()
	m.RecordLastSuccess()
	assert.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)
}
