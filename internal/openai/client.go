// Package openai talks to OpenAI-compatible chat completion endpoints. With
// BaseURL set to Google's OpenAI-compatible endpoint it also serves Gemini
// models.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultModel   = "gemini-3-flash-preview"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the chat client.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string       // Optional (Gemini endpoint, tests)
	HTTPClient *http.Client // Optional (tests)
}

// Client generates text through the official OpenAI SDK.
type Client struct {
	model  string
	client openai.Client
}

// NewClient creates a client. The SDK's own retries are disabled: a
// refinement is attempted at most once.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

// Model is the model parameter sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt as a single user message and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", mapError(err))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("api error %d: %s", apiErr.StatusCode, apiErr.Message)
	}
	return err
}
