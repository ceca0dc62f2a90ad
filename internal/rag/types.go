package rag

import "context"

// PromptType identifies which prompt template produced an answer.
type PromptType string

const (
	// PromptGreet is used for short greeting/thanks queries; no retrieval runs.
	PromptGreet PromptType = "greet"

	// PromptAnswer is used when retrieval produced enough relevant context.
	PromptAnswer PromptType = "answer"

	// PromptFallback is used when retrieval found no relevant documents.
	PromptFallback PromptType = "fallback"
)

// ReferenceLink is a document attachment shown alongside an answer.
// URL is the dedup key; Title falls back to the URL when metadata has none.
type ReferenceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RetrievalContext is the output of one retrieval attempt. It is built once
// and consumed only by the answer prompt builder.
type RetrievalContext struct {
	Context  string
	PDFLinks []ReferenceLink
	EmbedIDs []string
}

// RAGResult is the orchestrator's sole output. It is never mutated after
// construction. EmbedIDs is nil for greet and fallback answers.
type RAGResult struct {
	Answer     string          `json:"answer"`
	PDFLinks   []ReferenceLink `json:"pdf_links"`
	PromptType PromptType      `json:"prompt_type"`
	EmbedIDs   []string        `json:"embed_ids,omitempty"`
}

// Neighbor is one vector store hit: the chunk text, its metadata, the chunk
// id and the store-defined distance (lower = more similar).
type Neighbor struct {
	Document string
	Metadata map[string]string
	ID       string
	Distance float64
}

// Embedder produces a single embedding vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Moderator reports whether a text is flagged as inappropriate.
type Moderator interface {
	Moderate(ctx context.Context, text string) (bool, error)
}

// Completer calls the generative text service with a fully built prompt and
// returns the raw completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VectorStore answers nearest-neighbor queries against the crop knowledge
// collection. Results are ordered by ascending distance.
type VectorStore interface {
	Query(ctx context.Context, embedding []float32, k int) ([]Neighbor, error)
}
