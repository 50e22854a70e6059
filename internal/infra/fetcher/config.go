package fetcher

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config configures article fetching for URL submissions.
type Config struct {
	// Timeout bounds one fetch including redirects.
	Timeout time.Duration

	// MaxBodySize is the largest response body read, in bytes.
	MaxBodySize int64

	MaxRedirects int

	// DenyPrivateIPs refuses hosts resolving to loopback, link-local or
	// private ranges.
	DenyPrivateIPs bool

	UserAgent string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    5 * 1024 * 1024, // 5MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "SummaryServiceBot/1.0",
	}
}

// Validate checks that every field is within range.
func (c *Config) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", c.Timeout))
	}
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		errs = append(errs, fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize))
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		errs = append(errs, fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects))
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		errs = append(errs, errors.New("user agent cannot be empty"))
	}
	return errors.Join(errs...)
}

const (
	minBodySize = 1 << 10
	maxBodySize = 50 << 20
)

// LoadConfigFromEnv reads CONTENT_FETCH_* variables on top of the defaults.
// Unlike the summarizer settings, a malformed value is an error: fetching
// with a silently different timeout or body limit is worse than not starting.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	parse := func(key string, apply func(string) error) {
		val := os.Getenv(key)
		if val == "" {
			return
		}
		if err := apply(val); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s=%q: %w", key, val, err))
		}
	}

	parse("CONTENT_FETCH_TIMEOUT", func(v string) (err error) {
		cfg.Timeout, err = time.ParseDuration(v)
		return err
	})
	parse("CONTENT_FETCH_MAX_BODY_SIZE", func(v string) (err error) {
		cfg.MaxBodySize, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	parse("CONTENT_FETCH_MAX_REDIRECTS", func(v string) (err error) {
		cfg.MaxRedirects, err = strconv.Atoi(v)
		return err
	})
	parse("CONTENT_FETCH_DENY_PRIVATE_IPS", func(v string) (err error) {
		cfg.DenyPrivateIPs, err = strconv.ParseBool(v)
		return err
	})
	parse("CONTENT_FETCH_USER_AGENT", func(v string) error {
		cfg.UserAgent = v
		return nil
	})

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("content fetch configuration: %w", err)
	}
	return cfg, nil
}
