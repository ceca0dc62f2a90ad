package rag

import (
	"context"
	"log/slog"
	"strings"
)

// Default retrieval parameters. They mirror the values the knowledge base was
// tuned with; override via RetrieverConfig.
const (
	DefaultNResults          = 15
	DefaultDistanceThreshold = 1.12
	DefaultMinDocs           = 1
	DefaultPDFLimit          = 3
	DefaultContextLimit      = 1800
)

const (
	msgEmbeddingFailed = "임베딩 생성에 실패했습니다"
	msgQueryFailed     = "지식을 조회하는 중 오류가 발생했습니다"
)

// RetrieverConfig carries the retrieval knobs. Zero values fall back to the
// package defaults.
type RetrieverConfig struct {
	// NResults is the number of nearest neighbors requested from the store.
	NResults int

	// DistanceThreshold is the hard relevance cutoff; neighbors farther than
	// this never reach the context.
	DistanceThreshold float64

	// MinDocs is the minimum retained count below which retrieval reports no
	// context (fallback trigger). It also caps the embed ids on the result.
	MinDocs int

	// PDFLimit caps the reference links per answer.
	PDFLimit int

	// ContextLimit caps the assembled context, counted in runes.
	ContextLimit int
}

func (c RetrieverConfig) withDefaults() RetrieverConfig {
	if c.NResults <= 0 {
		c.NResults = DefaultNResults
	}
	if c.DistanceThreshold <= 0 {
		c.DistanceThreshold = DefaultDistanceThreshold
	}
	if c.MinDocs <= 0 {
		c.MinDocs = DefaultMinDocs
	}
	if c.PDFLimit <= 0 {
		c.PDFLimit = DefaultPDFLimit
	}
	if c.ContextLimit <= 0 {
		c.ContextLimit = DefaultContextLimit
	}
	return c
}

// Retriever turns a validated, non-greeting query into a RetrievalContext.
// A nil context with nil error means too few relevant documents — the caller
// switches to the fallback prompt.
type Retriever struct {
	embedder Embedder
	store    VectorStore
	cfg      RetrieverConfig
	logger   *slog.Logger
}

// NewRetriever creates a Retriever. A nil logger falls back to slog.Default.
func NewRetriever(embedder Embedder, store VectorStore, cfg RetrieverConfig, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Retrieve runs one retrieval attempt: embed the query, fetch the nearest
// neighbors, apply the distance cutoff, optionally narrow by crop, and
// assemble the bounded context. Not retried on failure.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*RetrievalContext, error) {
	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, NewError(KindService, msgEmbeddingFailed, err)
	}

	neighbors, err := r.store.Query(ctx, embedding, r.cfg.NResults)
	if err != nil {
		return nil, NewError(KindRetrieval, msgQueryFailed, err)
	}

	kept := neighbors[:0:0]
	for _, n := range neighbors {
		if n.Distance <= r.cfg.DistanceThreshold {
			kept = append(kept, n)
		}
	}
	if len(kept) < r.cfg.MinDocs {
		r.logger.Debug("retrieval below minimum",
			"hits", len(neighbors),
			"relevant", len(kept),
			"threshold", r.cfg.DistanceThreshold)
		return nil, nil
	}

	if crop := detectCrop(query, kept); crop != "" {
		before := len(kept)
		kept = narrowByCrop(kept, crop)
		r.logger.Debug("crop narrowing applied", "crop", crop, "before", before, "after", len(kept))
	}

	docs := make([]string, 0, len(kept))
	for _, n := range kept {
		docs = append(docs, n.Document)
	}
	context := truncateRunes(strings.Join(docs, "\n\n"), r.cfg.ContextLimit)

	embedIDs := make([]string, 0, r.cfg.MinDocs)
	for _, n := range kept {
		embedIDs = append(embedIDs, n.ID)
		if len(embedIDs) >= r.cfg.MinDocs {
			break
		}
	}

	return &RetrievalContext{
		Context:  context,
		PDFLinks: extractLinks(kept, r.cfg.PDFLimit),
		EmbedIDs: embedIDs,
	}, nil
}

// truncateRunes hard-cuts s to at most limit runes, no word boundary
// adjustment. The source documents are Korean, so byte-based cutting would
// both miscount and split characters.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
