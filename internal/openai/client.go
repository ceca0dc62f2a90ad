// Package openai adapts the OpenAI API to the narrow interfaces the pipeline
// consumes: embeddings, moderation and text completion. One Client is
// constructed at process start and shared by all requests.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gopenai "github.com/sashabaranov/go-openai"
)

// Defaults mirror the models the knowledge base was embedded and tuned with.
const (
	DefaultChatModel       = "gpt-4.1-mini"
	DefaultEmbeddingModel  = "text-embedding-3-small"
	DefaultModerationModel = "omni-moderation-latest"
)

// ErrMissingAPIKey indicates OPENAI_API_KEY was not provided.
var ErrMissingAPIKey = errors.New("missing OpenAI API key")

// Config configures the client. Empty model names fall back to the defaults;
// BaseURL is only overridden in tests and proxy setups.
type Config struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	EmbeddingModel  string
	ModerationModel string
}

// Client implements rag.Embedder, rag.Moderator, rag.Completer and
// suggest.ChatCompleter over the OpenAI API.
type Client struct {
	api    *gopenai.Client
	cfg    Config
	logger *slog.Logger
}

// New validates the configuration and builds the client.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.ModerationModel == "" {
		cfg.ModerationModel = DefaultModerationModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	apiCfg := gopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:    gopenai.NewClientWithConfig(apiCfg),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Embed returns a single embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, gopenai.EmbeddingRequest{
		Input: []string{text},
		Model: gopenai.EmbeddingModel(c.cfg.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}
	return resp.Data[0].Embedding, nil
}

// EmbedBatch returns one embedding vector per text, in input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.api.CreateEmbeddings(ctx, gopenai.EmbeddingRequest{
		Input: texts,
		Model: gopenai.EmbeddingModel(c.cfg.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("creating embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding response index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Moderate reports whether the moderation model flags text.
func (c *Client) Moderate(ctx context.Context, text string) (bool, error) {
	resp, err := c.api.Moderations(ctx, gopenai.ModerationRequest{
		Input: text,
		Model: c.cfg.ModerationModel,
	})
	if err != nil {
		return false, fmt.Errorf("moderation check: %w", err)
	}
	if len(resp.Results) == 0 {
		return false, fmt.Errorf("moderation returned no results")
	}
	return resp.Results[0].Flagged, nil
}

// Complete sends prompt as a single user message and returns the raw
// completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: c.cfg.ChatModel,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatComplete sends a system + user message pair with explicit sampling
// parameters. Used by the sentence suggestion service.
func (c *Client) ChatComplete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: c.cfg.ChatModel,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: system},
			{Role: gopenai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
