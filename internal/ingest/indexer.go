package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// Batch sizes for the indexing job. Embeddings go out in larger batches than
// store writes; the embedding API bills per token either way, while smaller
// write batches keep persistence progress visible.
const (
	embedBatchSize = 50
	addBatchSize   = 8
)

// DocumentAdder is the write half of the vector store the indexer consumes.
type DocumentAdder interface {
	Add(ctx context.Context, ids []string, embeddings [][]float32, metadatas []map[string]string, contents []string) error
}

// BatchEmbedder embeds many texts at once. Implementations may fall back to
// per-text calls.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Indexer embeds chunks and writes them to the vector collection with the
// metadata the retrieval pipeline reads back (curationNo, title, chunk_no,
// pdf_path).
type Indexer struct {
	embedder BatchEmbedder
	store    DocumentAdder
	logger   *slog.Logger
}

// NewIndexer creates an indexer.
func NewIndexer(embedder BatchEmbedder, store DocumentAdder, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{embedder: embedder, store: store, logger: logger}
}

// Run indexes all chunks, joining attachment URLs by curation number.
// Returns the number of chunks written.
func (ix *Indexer) Run(ctx context.Context, chunks []Chunk, attachments []Attachment) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	pdfByNo := make(map[string]string, len(attachments))
	for _, a := range attachments {
		if a.AttachURL != "" {
			pdfByNo[a.CurationNo] = a.AttachURL
		}
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += embedBatchSize {
		batch := texts[i:min(len(texts), i+embedBatchSize)]
		vecs, err := ix.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return 0, fmt.Errorf("embedding chunks %d..%d: %w", i, i+len(batch), err)
		}
		if len(vecs) != len(batch) {
			return 0, fmt.Errorf("embedding batch returned %d vectors for %d texts", len(vecs), len(batch))
		}
		embeddings = append(embeddings, vecs...)
	}

	written := 0
	for i := 0; i < len(chunks); i += addBatchSize {
		end := min(len(chunks), i+addBatchSize)

		ids := make([]string, 0, end-i)
		metas := make([]map[string]string, 0, end-i)
		contents := make([]string, 0, end-i)
		for _, c := range chunks[i:end] {
			ids = append(ids, c.ChunkID)
			metas = append(metas, map[string]string{
				"curationNo": c.CurationNo,
				"title":      c.Title,
				"chunk_no":   strconv.Itoa(c.ChunkNo),
				"pdf_path":   pdfByNo[c.CurationNo],
			})
			contents = append(contents, c.Text)
		}

		if err := ix.store.Add(ctx, ids, embeddings[i:end], metas, contents); err != nil {
			return written, fmt.Errorf("writing chunks %d..%d: %w", i, end, err)
		}
		written += end - i
	}

	ix.logger.Info("chunks indexed", "chunks", written, "attachments", len(pdfByNo))
	return written, nil
}
