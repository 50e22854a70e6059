package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	rec := Wrap(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, rec.Status())
	assert.Zero(t, rec.Size())
	assert.False(t, rec.WroteHeader())
}

func TestWrap_Idempotent(t *testing.T) {
	first := Wrap(httptest.NewRecorder())
	assert.Same(t, first, Wrap(first))
}

func TestRecorder_WriteHeaderOnce(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := Wrap(inner)

	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusTeapot, rec.Status())
	assert.Equal(t, http.StatusTeapot, inner.Code)
}

func TestRecorder_WriteCountsBytes(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := Wrap(inner)

	n, err := rec.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, _ = rec.Write([]byte("world"))

	assert.Equal(t, 11, rec.Size())
	assert.True(t, rec.WroteHeader())
	assert.Equal(t, "hello world", inner.Body.String())
}

func TestRecorder_Flush(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := Wrap(inner)
	rec.Flush()
	assert.True(t, inner.Flushed)
	assert.True(t, rec.WroteHeader())
}

func TestRecorder_Unwrap(t *testing.T) {
	inner := httptest.NewRecorder()
	assert.Equal(t, http.ResponseWriter(inner), Wrap(inner).Unwrap())
}
