package summary

import "errors"

var (
	// ErrEmptyContent indicates a document that is empty after trimming
	// and normalization. The engine is never called for it.
	ErrEmptyContent = errors.New("content is required")

	// ErrContentTooLarge indicates a document above the configured limit.
	ErrContentTooLarge = errors.New("content is too large")

	// ErrFetchFailed wraps failures to retrieve a submitted article URL.
	ErrFetchFailed = errors.New("failed to fetch article content")

	// ErrStoreUnavailable is returned by the history operations when the
	// service runs without a repository.
	ErrStoreUnavailable = errors.New("summary store is not configured")
)
