// ABOUTME: OpenAI client wrapper for answer synthesis and question generation
// ABOUTME: Handles retries with exponential backoff and structured JSON completions
package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/cucobaby/studyengine/internal/config"
	"github.com/cucobaby/studyengine/internal/util"
)

// Completer produces chat completions. Implementations must be safe for
// concurrent use.
type Completer interface {
	// Complete sends a system and user prompt and returns the raw response text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// CompleteJSON is like Complete but constrains the response to a JSON object.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient wraps the OpenAI API for completions.
type OpenAIClient struct {
	client     *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
	verbose    bool
}

// NewOpenAIClient creates a client from configuration. Returns an error if
// no API key is set.
func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	return &OpenAIClient{
		client:     openai.NewClient(cfg.OpenAIAPIKey),
		model:      cfg.OpenAIModel,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    cfg.CallTimeout,
		verbose:    cfg.Verbose,
	}, nil
}

// NewAnalysisClient creates a client that completes against the configured
// analysis model instead of the main one. Content analysis runs on every
// ingest, so it typically points at a cheaper model.
func NewAnalysisClient(cfg *config.Config) (*OpenAIClient, error) {
	client, err := NewOpenAIClient(cfg)
	if err != nil {
		return nil, err
	}
	client.model = cfg.AnalysisModel
	return client, nil
}

// Complete sends the prompts to the chat completions API and returns the
// response text, retrying transient failures with exponential backoff.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.complete(ctx, systemPrompt, userPrompt, nil)
}

// CompleteJSON requests a completion constrained to a single JSON object.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	return c.complete(ctx, systemPrompt, userPrompt, format)
}

func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userPrompt string, format *openai.ChatCompletionResponseFormat) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: format,
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := util.CalculateBackoff(c.retryDelay, attempt)
			if c.verbose {
				log.Printf("[LLM] Retrying completion (attempt %d/%d) after %v", attempt, c.maxRetries, delay)
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, req)
		cancel()

		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no completion choices returned")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
