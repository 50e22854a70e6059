package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"summary-service/internal/resilience/circuitbreaker"
)

const defaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude summarizes through the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	caller
}

// NewClaude creates a Claude summarizer. cfg is expected to be validated.
func NewClaude(cfg Config) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// retries are driven by the caller so the breaker sees each attempt
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Claude{
		client: anthropic.NewClient(opts...),
		caller: newCaller(ProviderClaude, cfg, circuitbreaker.AnthropicAPIConfig()),
	}
}

// Summarize implements summarize.Summarizer.
func (c *Claude) Summarize(ctx context.Context, text string) (string, error) {
	return c.summarize(ctx, text, c.complete)
}

func (c *Claude) complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", statusError(apiErr.StatusCode, "anthropic api error")
		}
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			return tb.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
