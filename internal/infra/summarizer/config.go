package summarizer

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider selects the neural summarizer implementation.
type Provider string

const (
	ProviderNone   Provider = "none"
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

const (
	minWordLimit = 20
	maxWordLimit = 1000

	defaultWordLimit = 120
)

// Config configures a neural summarizer.
type Config struct {
	Provider Provider

	// APIKey is read from ANTHROPIC_API_KEY or OPENAI_API_KEY depending on
	// Provider.
	APIKey string

	// BaseURL overrides the provider endpoint. Empty uses the SDK default.
	BaseURL string

	Model     string
	MaxTokens int
	Timeout   time.Duration

	// WordLimit is the summary length requested in the prompt.
	WordLimit int

	// RequestsPerSecond and Burst configure the client-side token bucket.
	// A zero RequestsPerSecond disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// ValidateWordLimit checks that limit is within the accepted range.
func ValidateWordLimit(limit int) error {
	if limit < minWordLimit {
		return fmt.Errorf("word limit %d is below minimum %d", limit, minWordLimit)
	}
	if limit > maxWordLimit {
		return fmt.Errorf("word limit %d exceeds maximum %d", limit, maxWordLimit)
	}
	return nil
}

// Validate checks the configuration of an enabled provider.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderNone, "":
		return nil
	case ProviderClaude, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown summarizer provider %q", c.Provider)
	}

	if c.APIKey == "" {
		return fmt.Errorf("%s summarizer requires an API key", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if err := ValidateWordLimit(c.WordLimit); err != nil {
		return fmt.Errorf("invalid word limit: %w", err)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %v", c.RequestsPerSecond)
	}
	return nil
}

// DefaultConfig returns the defaults for provider.
func DefaultConfig(provider Provider) Config {
	cfg := Config{
		Provider:          provider,
		MaxTokens:         512,
		Timeout:           20 * time.Second,
		WordLimit:         defaultWordLimit,
		RequestsPerSecond: 2,
		Burst:             4,
	}
	switch provider {
	case ProviderClaude:
		cfg.Model = defaultClaudeModel
	case ProviderOpenAI:
		cfg.Model = defaultOpenAIModel
	}
	return cfg
}

// LoadConfigFromEnv builds a Config for provider from the environment.
// Invalid numeric values keep their defaults.
//
// Environment variables:
//   - ANTHROPIC_API_KEY / OPENAI_API_KEY
//   - SUMMARIZER_MODEL, SUMMARIZER_BASE_URL
//   - SUMMARIZER_WORD_LIMIT (20-1000, default 120)
//   - SUMMARIZER_TIMEOUT (duration, default 20s)
//   - SUMMARIZER_RPS (default 2)
func LoadConfigFromEnv(provider Provider) Config {
	cfg := DefaultConfig(Provider(strings.ToLower(string(provider))))

	switch cfg.Provider {
	case ProviderClaude:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if v := os.Getenv("SUMMARIZER_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.BaseURL = os.Getenv("SUMMARIZER_BASE_URL")

	if v := os.Getenv("SUMMARIZER_WORD_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		switch {
		case err != nil:
			slog.Warn("Invalid SUMMARIZER_WORD_LIMIT format, using default",
				slog.String("value", v),
				slog.Int("default", defaultWordLimit))
		case ValidateWordLimit(parsed) != nil:
			slog.Warn("SUMMARIZER_WORD_LIMIT out of range, using default",
				slog.Int("value", parsed),
				slog.Int("min", minWordLimit),
				slog.Int("max", maxWordLimit))
		default:
			cfg.WordLimit = parsed
		}
	}

	if v := os.Getenv("SUMMARIZER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			slog.Warn("Invalid SUMMARIZER_TIMEOUT, using default", slog.String("value", v))
		}
	}

	if v := os.Getenv("SUMMARIZER_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.RequestsPerSecond = f
		} else {
			slog.Warn("Invalid SUMMARIZER_RPS, using default", slog.String("value", v))
		}
	}

	return cfg
}
