package rag

import (
	"context"
	"log/slog"
)

// Service is the ask orchestrator. It composes the gate, the greeting check,
// the retriever and the responder into one call. Construct it once at process
// start and share it across requests; it holds no mutable state.
type Service struct {
	gate      *Gate
	retriever *Retriever
	responder *Responder
	logger    *slog.Logger
}

// New wires the pipeline from the external service handles. The handles must
// be long-lived and safe for concurrent use. A nil logger falls back to
// slog.Default.
func New(embedder Embedder, moderator Moderator, completer Completer, store VectorStore, cfg RetrieverConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gate:      NewGate(moderator),
		retriever: NewRetriever(embedder, store, cfg, logger),
		responder: NewResponder(completer),
		logger:    logger,
	}
}

// Ask runs the full pipeline for one raw query: validate and moderate, route
// to greet/answer/fallback, generate the answer. The pipeline is a strict
// sequence of blocking sub-calls; nothing inside it retries.
func (s *Service) Ask(ctx context.Context, raw string) (*RAGResult, error) {
	query, err := s.gate.Check(ctx, raw)
	if err != nil {
		return nil, err
	}

	var (
		prompt     string
		promptType PromptType
		pdfLinks   = []ReferenceLink{}
		embedIDs   []string
	)

	if isGreeting(query) {
		prompt = buildGreetPrompt()
		promptType = PromptGreet
	} else {
		retrieval, err := s.retriever.Retrieve(ctx, query)
		if err != nil {
			return nil, err
		}
		if retrieval != nil {
			prompt = buildAnswerPrompt(query, retrieval)
			promptType = PromptAnswer
			pdfLinks = retrieval.PDFLinks
			embedIDs = retrieval.EmbedIDs
		} else {
			prompt = buildFallbackPrompt(query)
			promptType = PromptFallback
		}
	}

	answer, err := s.responder.Respond(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Info("query answered",
		"prompt_type", promptType,
		"links", len(pdfLinks),
		"answer_length", len(answer))

	return &RAGResult{
		Answer:     answer,
		PDFLinks:   pdfLinks,
		PromptType: promptType,
		EmbedIDs:   embedIDs,
	}, nil
}
