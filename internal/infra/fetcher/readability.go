// Package fetcher retrieves article text for URL submissions and converts
// pasted HTML into plain text.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"summary-service/internal/observability/logging"
	"summary-service/internal/observability/metrics"
	"summary-service/internal/resilience/circuitbreaker"
	"summary-service/internal/resilience/retry"
	"summary-service/internal/usecase/summary"
)

// ReadabilityFetcher downloads a page and extracts its main content with
// go-readability. It implements summary.ContentFetcher.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewReadabilityFetcher creates a fetcher. config is expected to be validated.
func NewReadabilityFetcher(config Config) *ReadabilityFetcher {
	fetcher := &ReadabilityFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		retryConfig:    retry.ContentFetchConfig(),
		config:         config,
	}

	fetcher.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= fetcher.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", summary.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.Context(), req.URL.String(), fetcher.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return fetcher
}

// Breaker exposes the fetch circuit breaker for health reporting.
func (f *ReadabilityFetcher) Breaker() *circuitbreaker.CircuitBreaker { return f.circuitBreaker }

// FetchArticle implements summary.ContentFetcher.
func (f *ReadabilityFetcher) FetchArticle(ctx context.Context, urlStr string) (summary.Article, error) {
	if err := validateURL(ctx, urlStr, f.config.DenyPrivateIPs); err != nil {
		return summary.Article{}, err
	}

	start := time.Now()
	var article summary.Article
	err := retry.WithBackoff(ctx, f.retryConfig, func() error {
		a, err := circuitbreaker.Run(f.circuitBreaker, func() (summary.Article, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		article = a
		return nil
	})
	metrics.RecordContentFetch(err == nil, time.Since(start))

	if err != nil {
		logging.FromContext(ctx).Warn("article fetch failed",
			slog.String("url", urlStr),
			slog.Any("error", err))
		return summary.Article{}, err
	}
	return article, nil
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (summary.Article, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return summary.Article{}, fmt.Errorf("%w: failed to create request: %v", summary.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return summary.Article{}, fmt.Errorf("%w: request exceeded %v", summary.ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return summary.Article{}, urlErr.Err
		}
		return summary.Article{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return summary.Article{}, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return summary.Article{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return summary.Article{}, fmt.Errorf("%w: response size exceeds limit %d bytes",
			summary.ErrBodyTooLarge, f.config.MaxBodySize)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	parsed, err := readability.FromReader(bytes.NewReader(htmlBytes), finalURL)
	if err != nil {
		return summary.Article{}, fmt.Errorf("%w: %v", summary.ErrReadabilityFailed, err)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		if parsed.Content == "" {
			return summary.Article{}, fmt.Errorf("%w: no readable content found", summary.ErrReadabilityFailed)
		}
		// Content is HTML; strip it the same way pasted HTML is handled.
		text, err = HTMLToText(parsed.Content)
		if err != nil || text == "" {
			return summary.Article{}, fmt.Errorf("%w: no readable content found", summary.ErrReadabilityFailed)
		}
	}

	return summary.Article{
		Title: strings.TrimSpace(parsed.Title),
		Text:  text,
		URL:   finalURL.String(),
	}, nil
}
