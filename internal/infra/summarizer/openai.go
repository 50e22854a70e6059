package summarizer

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"summary-service/internal/resilience/circuitbreaker"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAI summarizes through the Chat Completions API.
type OpenAI struct {
	client *openai.Client
	caller
}

// NewOpenAI creates an OpenAI summarizer. cfg is expected to be validated.
func NewOpenAI(cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		caller: newCaller(ProviderOpenAI, cfg, circuitbreaker.OpenAIAPIConfig()),
	}
}

// Summarize implements summarize.Summarizer.
func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	return o.summarize(ctx, text, o.complete)
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.cfg.Model,
		MaxTokens: o.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", statusError(apiErr.HTTPStatusCode, "openai api error")
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", statusError(reqErr.HTTPStatusCode, "openai request error")
		}
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
