// Package summarizer provides the neural summarizers that the engine tries
// before its extractive rankers. Each implementation sits behind a rate
// limiter, a circuit breaker and a short retry budget so that a slow or
// failing provider degrades into extractive summaries instead of errors.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"summary-service/internal/observability/logging"
	"summary-service/internal/resilience/circuitbreaker"
	"summary-service/internal/resilience/retry"
	"summary-service/internal/summarize"
)

var (
	// ErrThrottled is returned when the client-side rate limiter has no
	// token available.
	ErrThrottled = errors.New("summarizer rate limit reached")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("summarizer unavailable: circuit breaker open")
	// ErrEmptyResponse is returned when the provider answers without text.
	ErrEmptyResponse = errors.New("summarizer returned empty response")
)

// New returns the summarizer selected by cfg.Provider, or nil when the
// provider is "none" or empty.
func New(cfg Config) (summarize.Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderClaude:
		return NewClaude(cfg), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	default:
		return nil, nil
	}
}

// completeFunc sends one prompt to a provider and returns the raw text.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// caller holds the resilience wrappers shared by every provider.
type caller struct {
	provider Provider
	cfg      Config
	breaker  *circuitbreaker.CircuitBreaker
	retry    retry.Config
	limiter  *rate.Limiter
	metrics  MetricsRecorder
}

func newCaller(provider Provider, cfg Config, cb circuitbreaker.Config) caller {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return caller{
		provider: provider,
		cfg:      cfg,
		breaker:  circuitbreaker.New(cb),
		retry:    retry.NeuralAPIConfig(),
		limiter:  rate.NewLimiter(limit, max(cfg.Burst, 1)),
		metrics:  NewPrometheusMetrics(),
	}
}

// Breaker exposes the provider's circuit breaker for health reporting.
func (c *caller) Breaker() *circuitbreaker.CircuitBreaker { return c.breaker }

func (c *caller) summarize(ctx context.Context, text string, complete completeFunc) (string, error) {
	if !c.limiter.Allow() {
		c.metrics.RecordThrottled(c.provider)
		return "", ErrThrottled
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	logger := logging.FromContext(ctx).With(
		slog.String("provider", string(c.provider)),
		slog.String("call_id", uuid.NewString()))
	prompt := buildPrompt(text, c.cfg.WordLimit)

	start := time.Now()
	var summary string
	err := retry.WithBackoff(ctx, c.retry, func() error {
		out, err := circuitbreaker.Run(c.breaker, func() (string, error) {
			return complete(ctx, prompt)
		})
		if err != nil {
			if circuitbreaker.IsRejected(err) {
				return ErrUnavailable
			}
			return err
		}
		summary = out
		return nil
	})
	duration := time.Since(start)
	c.metrics.RecordCall(c.provider, err == nil, duration)

	if err != nil {
		logger.Warn("neural summarization failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", fmt.Errorf("%s summarize: %w", c.provider, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", ErrEmptyResponse
	}

	words := summarize.WordCount(summary)
	c.metrics.RecordLength(c.provider, words)
	if words > c.cfg.WordLimit {
		c.metrics.RecordLimitExceeded(c.provider)
		logger.Warn("neural summary exceeds word limit",
			slog.Int("words", words),
			slog.Int("limit", c.cfg.WordLimit))
	}

	logger.Debug("neural summarization completed",
		slog.Int("input_runes", len([]rune(text))),
		slog.Int("summary_words", words),
		slog.Duration("duration", duration))
	return summary, nil
}

func buildPrompt(text string, wordLimit int) string {
	return fmt.Sprintf(
		"Summarize the following text in English in at most %d words. "+
			"Reply with the summary only, as plain prose without headings or bullet points.\n\n%s",
		wordLimit, text)
}

// statusError converts a provider HTTP failure into a retry.HTTPError so
// that 429 and 5xx responses are retried.
func statusError(code int, msg string) error {
	return &retry.HTTPError{StatusCode: code, Message: msg}
}
