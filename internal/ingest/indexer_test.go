package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weconnect/agrisearch/internal/log"
)

// mockBatchEmbedder implements BatchEmbedder for testing.
type mockBatchEmbedder struct {
	err error

	batchSizes []int
}

func (m *mockBatchEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchSizes = append(m.batchSizes, len(texts))
	if m.err != nil {
		return nil, m.err
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{float32(i)}
	}
	return vectors, nil
}

// mockAdder implements DocumentAdder for testing.
type mockAdder struct {
	err error

	batchSizes []int
	ids        []string
	metadatas  []map[string]string
}

func (m *mockAdder) Add(_ context.Context, ids []string, embeddings [][]float32, metadatas []map[string]string, contents []string) error {
	if m.err != nil {
		return m.err
	}
	m.batchSizes = append(m.batchSizes, len(ids))
	m.ids = append(m.ids, ids...)
	m.metadatas = append(m.metadatas, metadatas...)
	return nil
}

func testChunks(n int) []Chunk {
	chunks := make([]Chunk, 0, n)
	for i := 0; i < n; i++ {
		no := i/3 + 1
		chunks = append(chunks, Chunk{
			CurationNo: fmt.Sprintf("%d", no),
			Title:      fmt.Sprintf("문서 %d", no),
			ChunkNo:    i%3 + 1,
			Text:       fmt.Sprintf("본문 조각 %d", i),
			ChunkID:    fmt.Sprintf("%d_%03d", no, i%3+1),
		})
	}
	return chunks
}

func TestIndexer_Run(t *testing.T) {
	embedder := &mockBatchEmbedder{}
	adder := &mockAdder{}
	indexer := NewIndexer(embedder, adder, log.NewNop())

	chunks := testChunks(20)
	attachments := []Attachment{
		{CurationNo: "1", AttachURL: "http://x/1.pdf"},
		{CurationNo: "2", AttachURL: ""}, // empty URL never joins
	}

	written, err := indexer.Run(context.Background(), chunks, attachments)

	require.NoError(t, err)
	assert.Equal(t, 20, written)

	// One embed batch (20 < 50), write batches of 8.
	assert.Equal(t, []int{20}, embedder.batchSizes)
	assert.Equal(t, []int{8, 8, 4}, adder.batchSizes)
	assert.Len(t, adder.ids, 20)

	// Metadata carries the retrieval fields, attachment joined by curationNo.
	first := adder.metadatas[0]
	assert.Equal(t, "1", first["curationNo"])
	assert.Equal(t, "문서 1", first["title"])
	assert.Equal(t, "1", first["chunk_no"])
	assert.Equal(t, "http://x/1.pdf", first["pdf_path"])

	// Chunks of documents without an attachment get an empty pdf_path.
	last := adder.metadatas[len(adder.metadatas)-1]
	assert.Empty(t, last["pdf_path"])
}

func TestIndexer_Run_EmbedBatching(t *testing.T) {
	embedder := &mockBatchEmbedder{}
	adder := &mockAdder{}
	indexer := NewIndexer(embedder, adder, log.NewNop())

	_, err := indexer.Run(context.Background(), testChunks(120), nil)

	require.NoError(t, err)
	assert.Equal(t, []int{50, 50, 20}, embedder.batchSizes)
}

func TestIndexer_Run_Empty(t *testing.T) {
	embedder := &mockBatchEmbedder{}
	indexer := NewIndexer(embedder, &mockAdder{}, log.NewNop())

	written, err := indexer.Run(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Empty(t, embedder.batchSizes)
}

func TestIndexer_Run_EmbedFailure(t *testing.T) {
	embedder := &mockBatchEmbedder{err: errors.New("quota exceeded")}
	adder := &mockAdder{}
	indexer := NewIndexer(embedder, adder, log.NewNop())

	_, err := indexer.Run(context.Background(), testChunks(5), nil)

	require.Error(t, err)
	assert.Empty(t, adder.ids)
}

func TestIndexer_Run_AddFailure(t *testing.T) {
	adder := &mockAdder{err: errors.New("disk full")}
	indexer := NewIndexer(&mockBatchEmbedder{}, adder, log.NewNop())

	written, err := indexer.Run(context.Background(), testChunks(5), nil)

	require.Error(t, err)
	assert.Zero(t, written)
}
