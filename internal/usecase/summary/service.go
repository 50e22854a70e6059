// Package summary implements the request-level summarization use cases:
// input validation, URL and HTML resolution, result caching, background
// persistence and the per-user history queries.
package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"summary-service/internal/common/pagination"
	"summary-service/internal/domain/entity"
	"summary-service/internal/observability/logging"
	"summary-service/internal/observability/metrics"
	"summary-service/internal/observability/tracing"
	"summary-service/internal/repository"
	"summary-service/internal/resilience/circuitbreaker"
	"summary-service/internal/resilience/retry"
	"summary-service/internal/summarize"
)

// DefaultTitle is stored when a summary is produced without a title.
const DefaultTitle = "Summarized Article"

// Engine produces summaries. *summarize.Engine implements it.
type Engine interface {
	Summarize(ctx context.Context, text string) summarize.Result
}

// TextExtractor detects and strips HTML markup from pasted content.
type TextExtractor interface {
	IsHTML(s string) bool
	ExtractText(html string) (string, error)
}

// SummarizeInput is one summarize request.
type SummarizeInput struct {
	Content string
	// UserEmail identifies the requester; empty means anonymous.
	UserEmail string
	Title     string
	URL       string
}

// SummarizeOutput is the produced summary and how it was made.
type SummarizeOutput struct {
	Summary         string
	Method          summarize.Method
	TargetSentences int
	SentenceCount   int
	Title           string
	URL             string
	Cached          bool
}

// SaveInput is a client-provided summary to store.
type SaveInput struct {
	UserEmail string
	Title     string
	Summary   string
	URL       string
}

// PaginatedResult is one page of a user's summaries.
type PaginatedResult struct {
	Data       []*entity.Summary
	Pagination pagination.Metadata
}

// Service provides the summarization use cases.
type Service struct {
	Repo    repository.SummaryRepository
	Engine  Engine
	Fetcher ContentFetcher
	HTML    TextExtractor

	maxContentBytes int
	persistTimeout  time.Duration

	cache   *lru.Cache[string, summarize.Result]
	group   singleflight.Group
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	wg      sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithFetcher enables URL submissions.
func WithFetcher(f ContentFetcher) Option {
	return func(s *Service) { s.Fetcher = f }
}

// WithTextExtractor enables HTML submissions.
func WithTextExtractor(x TextExtractor) Option {
	return func(s *Service) { s.HTML = x }
}

// WithCacheSize keeps the last n results in memory. n <= 0 disables caching.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		if n <= 0 {
			s.cache = nil
			return
		}
		// lru.New only fails for a non-positive size
		s.cache, _ = lru.New[string, summarize.Result](n)
	}
}

// WithPersistTimeout bounds each background write.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// WithMaxContentBytes rejects larger documents with ErrContentTooLarge.
func WithMaxContentBytes(n int) Option {
	return func(s *Service) { s.maxContentBytes = n }
}

// NewService creates a Service. repo may be nil, in which case summaries
// are not persisted and the history queries are unavailable.
func NewService(repo repository.SummaryRepository, engine Engine, opts ...Option) *Service {
	s := &Service{
		Repo:           repo,
		Engine:         engine,
		persistTimeout: 10 * time.Second,
		breaker:        circuitbreaker.New(circuitbreaker.StoreConfig()),
		retry:          retry.StoreConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize validates in, resolves URL and HTML content, and returns the
// engine's summary. A successful summary is persisted in the background.
func (s *Service) Summarize(ctx context.Context, in SummarizeInput) (*SummarizeOutput, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "summary.Service.Summarize")
	defer span.End()
	logger := logging.FromContext(ctx)

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if s.maxContentBytes > 0 && len(content) > s.maxContentBytes {
		return nil, ErrContentTooLarge
	}

	email := strings.TrimSpace(in.UserEmail)
	if email == "" {
		email = entity.AnonymousUser
	}
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	if in.URL != "" {
		if err := entity.ValidateURL(in.URL); err != nil {
			return nil, err
		}
	}

	title, url := strings.TrimSpace(in.Title), in.URL

	switch {
	case s.Fetcher != nil && entity.LooksLikeURL(content):
		article, err := s.Fetcher.FetchArticle(ctx, content)
		if err != nil {
			span.SetStatus(codes.Error, "fetch failed")
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		if url == "" {
			url = article.URL
		}
		if title == "" {
			title = article.Title
		}
		content = article.Text
		span.SetAttributes(attribute.Bool("summary.fetched", true))
	case s.HTML != nil && s.HTML.IsHTML(content):
		text, err := s.HTML.ExtractText(content)
		if err != nil {
			logger.Warn("html extraction failed, summarizing raw content", slog.Any("error", err))
		} else {
			content = text
		}
	}

	if summarize.Normalize(content) == "" {
		return nil, ErrEmptyContent
	}
	if title == "" {
		title = DefaultTitle
	}

	res, cached := s.summarize(ctx, content)
	span.SetAttributes(
		attribute.String("summary.method", string(res.Method)),
		attribute.Bool("summary.cached", cached),
	)

	s.persistAsync(ctx, &entity.Summary{
		UserEmail:    email,
		Title:        title,
		URL:          url,
		OriginalText: content,
		SummaryText:  res.Summary,
		Method:       string(res.Method),
	})

	return &SummarizeOutput{
		Summary:         res.Summary,
		Method:          res.Method,
		TargetSentences: res.TargetSentences,
		SentenceCount:   res.SentenceCount,
		Title:           title,
		URL:             url,
		Cached:          cached,
	}, nil
}

// summarize runs the engine once per distinct document. Concurrent
// requests for the same document share one computation, which runs detached
// from the leader's cancellation so one aborted request cannot degrade the
// result handed to the others. The bool reports a cache hit.
func (s *Service) summarize(ctx context.Context, content string) (summarize.Result, bool) {
	key := documentKey(content)
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			metrics.RecordCacheLookup(true)
			metrics.RecordSummary(res, 0, 0)
			return res, true
		}
		metrics.RecordCacheLookup(false)
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		start := time.Now()
		res := s.Engine.Summarize(context.WithoutCancel(ctx), content)
		metrics.RecordSummary(res, summarize.WordCount(content), time.Since(start))
		if s.cache != nil && cacheable(res) {
			s.cache.Add(key, res)
		}
		return res, nil
	})
	return v.(summarize.Result), false
}

// cacheable reports whether res depends only on the document. Results that
// fell back because of a provider outage or a cancelled computation are not
// kept.
func cacheable(res summarize.Result) bool {
	return !res.FailedWith(summarize.ErrExternalService) &&
		!res.FailedWith(context.Canceled) &&
		!res.FailedWith(context.DeadlineExceeded)
}

func documentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// persistAsync stores sm without blocking the caller. Failures are logged
// and counted, never returned.
func (s *Service) persistAsync(ctx context.Context, sm *entity.Summary) {
	if s.Repo == nil {
		return
	}
	logger := logging.FromContext(ctx)
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, s.persistTimeout)
		defer cancel()

		err := retry.WithBackoff(ctx, s.retry, func() error {
			_, err := circuitbreaker.Run(s.breaker, func() (struct{}, error) {
				return struct{}{}, s.Repo.Create(ctx, sm)
			})
			return err
		})
		metrics.RecordPersist(err == nil)
		if err != nil {
			logger.Error("failed to persist summary",
				slog.String("user", sm.UserEmail),
				slog.Any("error", err))
			return
		}
		logger.Debug("summary persisted", slog.Int64("id", sm.ID))
	}()
}

// StoreBreaker exposes the persistence circuit breaker for health reporting.
func (s *Service) StoreBreaker() *circuitbreaker.CircuitBreaker { return s.breaker }

// Shutdown waits for background writes to finish or ctx to end.
func (s *Service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for pending summary writes: %w", ctx.Err())
	}
}

// Save stores a client-provided summary and returns its ID.
func (s *Service) Save(ctx context.Context, in SaveInput) (int64, error) {
	if s.Repo == nil {
		return 0, ErrStoreUnavailable
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultTitle
	}
	sm := &entity.Summary{
		UserEmail:   strings.TrimSpace(in.UserEmail),
		Title:       title,
		URL:         strings.TrimSpace(in.URL),
		SummaryText: strings.TrimSpace(in.Summary),
	}
	if err := sm.Validate(); err != nil {
		return 0, err
	}
	if err := s.Repo.Create(ctx, sm); err != nil {
		return 0, fmt.Errorf("save summary: %w", err)
	}
	return sm.ID, nil
}

// ListByUser returns every summary of email, newest first.
func (s *Service) ListByUser(ctx context.Context, email string) ([]*entity.Summary, error) {
	if s.Repo == nil {
		return nil, ErrStoreUnavailable
	}
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	list, err := s.Repo.ListByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return list, nil
}

// ListByUserPaginated returns one page of the user's summaries.
func (s *Service) ListByUserPaginated(ctx context.Context, email string, params pagination.Params) (*PaginatedResult, error) {
	if s.Repo == nil {
		return nil, ErrStoreUnavailable
	}
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}

	total, err := s.Repo.CountByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("count summaries: %w", err)
	}

	offset := pagination.CalculateOffset(params.Page, params.Limit)
	list, err := s.Repo.ListByUserPaginated(ctx, email, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries paginated: %w", err)
	}

	return &PaginatedResult{
		Data:       list,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// Metrics returns the dashboard aggregates for email.
func (s *Service) Metrics(ctx context.Context, email string) (*entity.UserMetrics, error) {
	if s.Repo == nil {
		return nil, ErrStoreUnavailable
	}
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	m, err := s.Repo.MetricsByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("summary metrics: %w", err)
	}
	return m, nil
}

// Activity returns the per-day summary counts for email.
func (s *Service) Activity(ctx context.Context, email string) ([]entity.ActivityDay, error) {
	if s.Repo == nil {
		return nil, ErrStoreUnavailable
	}
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	days, err := s.Repo.ActivityByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("summary activity: %w", err)
	}
	return days, nil
}

// Purge deletes summaries created before cutoff and returns the number
// removed and the number remaining.
func (s *Service) Purge(ctx context.Context, cutoff time.Time) (removed, remaining int64, err error) {
	if s.Repo == nil {
		return 0, 0, ErrStoreUnavailable
	}
	removed, err = s.Repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("purge summaries: %w", err)
	}
	remaining, err = s.Repo.Count(ctx)
	if err != nil {
		return removed, 0, fmt.Errorf("count summaries: %w", err)
	}
	metrics.RecordPurge(removed, remaining)
	return removed, remaining, nil
}
