// Package vectorstore wraps the embedded chromem-go database behind the
// pipeline's VectorStore contract.
//
// chromem reports cosine similarity (higher = closer); the pipeline and its
// tuned threshold use Chroma-style cosine distance, so hits are converted as
// distance = 1 - similarity and returned in ascending-distance order.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	chromem "github.com/philippgille/chromem-go"

	"github.com/weconnect/agrisearch/internal/rag"
)

// ErrCollectionNotFound indicates the named collection does not exist in the
// database directory; run the index job first.
var ErrCollectionNotFound = errors.New("collection not found")

// Store is a read/write handle to one persistent collection. It is safe for
// concurrent use.
type Store struct {
	db     *chromem.DB
	col    *chromem.Collection
	logger *slog.Logger
}

// Open opens an existing collection for querying. Fails with
// ErrCollectionNotFound when the collection is absent.
func Open(path, collection string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector database at %q: %w", path, err)
	}

	// nil embedding func: queries always supply a precomputed embedding.
	col := db.GetCollection(collection, nil)
	if col == nil {
		return nil, fmt.Errorf("%w: %q in %q", ErrCollectionNotFound, collection, path)
	}

	logger.Debug("vector collection opened", "collection", collection, "documents", col.Count())
	return &Store{db: db, col: col, logger: logger}, nil
}

// Create opens or creates a collection for indexing.
func Create(path, collection string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector database at %q: %w", path, err)
	}

	col, err := db.GetOrCreateCollection(collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating collection %q: %w", collection, err)
	}

	return &Store{db: db, col: col, logger: logger}, nil
}

// Query returns up to k nearest neighbors for the embedding, ascending by
// distance. k is clamped to the collection size; an empty collection yields
// no neighbors rather than an error.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]rag.Neighbor, error) {
	count := s.col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	neighbors := make([]rag.Neighbor, 0, len(results))
	for _, res := range results {
		neighbors = append(neighbors, rag.Neighbor{
			Document: res.Content,
			Metadata: res.Metadata,
			ID:       res.ID,
			Distance: 1 - float64(res.Similarity),
		})
	}
	return neighbors, nil
}

// Add stores one batch of pre-embedded documents.
func (s *Store) Add(ctx context.Context, ids []string, embeddings [][]float32, metadatas []map[string]string, contents []string) error {
	if len(ids) != len(embeddings) || len(ids) != len(metadatas) || len(ids) != len(contents) {
		return fmt.Errorf("mismatched batch lengths: ids=%d embeddings=%d metadatas=%d contents=%d",
			len(ids), len(embeddings), len(metadatas), len(contents))
	}

	docs := make([]chromem.Document, 0, len(ids))
	for i := range ids {
		docs = append(docs, chromem.Document{
			ID:        ids[i],
			Metadata:  metadatas[i],
			Embedding: embeddings[i],
			Content:   contents[i],
		})
	}

	if err := s.col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("adding %d documents: %w", len(docs), err)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count() int {
	return s.col.Count()
}
