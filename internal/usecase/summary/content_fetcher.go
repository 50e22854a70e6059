package summary

import (
	"context"
	"errors"
)

// Article is the readable content extracted from a web page.
type Article struct {
	Title string
	Text  string
	// URL is the final URL after redirects.
	URL string
}

// ContentFetcher retrieves the readable content of an article URL.
//
// Implementations must refuse non-http(s) schemes and, when configured,
// hosts that resolve to private addresses.
type ContentFetcher interface {
	FetchArticle(ctx context.Context, url string) (Article, error)
}

var (
	ErrInvalidURL        = errors.New("invalid URL or unsupported scheme")
	ErrPrivateIP         = errors.New("private IP access denied (SSRF prevention)")
	ErrTooManyRedirects  = errors.New("too many redirects")
	ErrBodyTooLarge      = errors.New("response body too large")
	ErrTimeout           = errors.New("request timeout")
	ErrReadabilityFailed = errors.New("content extraction failed")
)
