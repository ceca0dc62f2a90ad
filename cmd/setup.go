package cmd

import (
	"fmt"
	"log/slog"

	"github.com/weconnect/agrisearch/internal/config"
	"github.com/weconnect/agrisearch/internal/log"
	"github.com/weconnect/agrisearch/internal/openai"
	"github.com/weconnect/agrisearch/internal/rag"
	"github.com/weconnect/agrisearch/internal/suggest"
	"github.com/weconnect/agrisearch/internal/vectorstore"
)

// loadConfig loads and validates configuration and builds the process logger.
func loadConfig() (*config.Config, log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{Level: slog.LevelInfo, JSON: cfg.LogJSON})
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// newOpenAIClient builds the shared OpenAI client for the answer pipeline.
func newOpenAIClient(cfg *config.Config, logger log.Logger) (*openai.Client, error) {
	return openai.New(openai.Config{
		APIKey:          cfg.OpenAIAPIKey,
		ChatModel:       cfg.ChatModel,
		EmbeddingModel:  cfg.EmbeddingModel,
		ModerationModel: cfg.ModerationModel,
	}, logger)
}

// newRAGService opens the vector collection and wires the full ask pipeline.
// The returned store is shared for readiness checks.
func newRAGService(cfg *config.Config, logger log.Logger) (*rag.Service, *vectorstore.Store, error) {
	client, err := newOpenAIClient(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	store, err := vectorstore.Open(cfg.StorePath, cfg.Collection, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vector store: %w", err)
	}

	svc := rag.New(client, client, client, store, rag.RetrieverConfig{
		NResults:          cfg.NResults,
		DistanceThreshold: cfg.DistanceThreshold,
		MinDocs:           cfg.MinDocs,
		PDFLimit:          cfg.PDFLimit,
		ContextLimit:      cfg.ContextLimit,
	}, logger)

	return svc, store, nil
}

// newSuggestService wires the sentence suggestion service with its own client
// so the smaller suggestion model never affects the answer pipeline.
func newSuggestService(cfg *config.Config, logger log.Logger) (*suggest.Service, error) {
	client, err := openai.New(openai.Config{
		APIKey:    cfg.OpenAIAPIKey,
		ChatModel: cfg.SuggestModel,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	return suggest.New(client, suggest.Config{
		Temperature: cfg.SuggestTemperature,
		MaxTokens:   cfg.SuggestMaxTokens,
	}, logger), nil
}
