package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "overloaded"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoff_MaxAttemptsExceeded(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(2), func() error {
		calls++
		return syscall.ECONNRESET
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.ECONNRESET)
	assert.Contains(t, err.Error(), "max retry attempts (2) exceeded")
	assert.Equal(t, 2, calls)
}

func TestWithBackoff_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	bad := &HTTPError{StatusCode: http.StatusUnauthorized, Message: "bad key"}
	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		return bad
	})
	assert.Same(t, bad, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Hour

	calls := 0
	err := WithBackoff(ctx, cfg, func() error {
		calls++
		cancel()
		return syscall.ECONNREFUSED
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_PermanentStopsRetryableError(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		calls++
		return Permanent(syscall.ECONNREFUSED)
	})
	assert.Equal(t, syscall.ECONNREFUSED, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, Permanent(nil))
}

func TestWithBackoff_ZeroAttemptsStillCallsOnce(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), Config{}, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConfig_Delay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 3}
	assert.Equal(t, time.Duration(0), cfg.Delay(0))
	assert.Equal(t, 100*time.Millisecond, cfg.Delay(1))
	assert.Equal(t, 300*time.Millisecond, cfg.Delay(2))
	assert.Equal(t, 900*time.Millisecond, cfg.Delay(3))
	assert.Equal(t, time.Second, cfg.Delay(4))

	// 倍率 1 未満は固定間隔として扱う
	flat := Config{InitialDelay: 50 * time.Millisecond, Multiplier: 0}
	assert.Equal(t, 50*time.Millisecond, flat.Delay(5))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"conn refused", syscall.ECONNREFUSED, true},
		{"conn reset wrapped", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"503", &HTTPError{StatusCode: 503}, true},
		{"429", &HTTPError{StatusCode: 429}, true},
		{"408", &HTTPError{StatusCode: 408}, true},
		{"404", &HTTPError{StatusCode: 404}, false},
		{"plain", errors.New("parse failure"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestHTTPError_Error(t *testing.T) {
	assert.Equal(t, "HTTP 502: bad gateway", (&HTTPError{StatusCode: 502, Message: "bad gateway"}).Error())
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 50; i++ {
		d := addJitter(base, 0.5)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
	assert.Equal(t, base, addJitter(base, 0))
	assert.LessOrEqual(t, addJitter(base, 5), 2*base)
}

func TestPresets(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), NeuralAPIConfig(), ContentFetchConfig(), StoreConfig()} {
		assert.NotEmpty(t, cfg.Name)
		assert.Positive(t, cfg.MaxAttempts)
		assert.LessOrEqual(t, cfg.InitialDelay, cfg.MaxDelay)
	}
}
