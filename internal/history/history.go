// Package history keeps a bounded, process-wide log of answered questions.
//
// The store is a fixed-capacity ring buffer guarded by a single mutex; only
// Add and List are exposed so the internal layout never leaks. Retrieval and
// generation never run under the lock — callers record results after the
// pipeline finishes.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weconnect/agrisearch/internal/rag"
)

// DefaultCapacity bounds the history when no explicit capacity is given.
const DefaultCapacity = 100

// Entry is one recorded exchange. Created exactly once per successful ask,
// never mutated, destroyed only by FIFO eviction.
type Entry struct {
	ID         string              `json:"id"`
	Question   string              `json:"question"`
	Answer     string              `json:"answer"`
	PDFLinks   []rag.ReferenceLink `json:"pdf_links"`
	EmbedIDs   []string            `json:"embed_ids"`
	PromptType rag.PromptType      `json:"prompt_type"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Store is a thread-safe, append-only ring buffer of entries.
type Store struct {
	mu       sync.Mutex
	entries  []Entry
	head     int
	size     int
	capacity int
}

// NewStore creates a store holding at most capacity entries. A non-positive
// capacity falls back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

// Add records one exchange and returns the stored entry. When the buffer is
// full the oldest entry is evicted as part of the append.
func (s *Store) Add(question string, result *rag.RAGResult) Entry {
	entry := Entry{
		ID:         uuid.NewString(),
		Question:   question,
		Answer:     result.Answer,
		PDFLinks:   append([]rag.ReferenceLink{}, result.PDFLinks...),
		EmbedIDs:   append([]string{}, result.EmbedIDs...),
		PromptType: result.PromptType,
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[(s.head+s.size)%s.capacity] = entry
	if s.size < s.capacity {
		s.size++
	} else {
		s.head = (s.head + 1) % s.capacity
	}

	return entry
}

// List returns a snapshot copy of the entries, oldest first. Safe to call
// concurrently with Add.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, s.size)
	for i := 0; i < s.size; i++ {
		out = append(out, s.entries[(s.head+i)%s.capacity])
	}
	return out
}
