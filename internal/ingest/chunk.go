package ingest

import (
	"fmt"
	"strings"
)

// Chunker defaults. Sizes are in runes; the source bodies are Korean and
// byte-based windows would split characters.
const (
	DefaultChunkSize    = 200
	DefaultChunkOverlap = 40
	DefaultMinChunk     = 100
)

// ChunkOptions configures the sliding window. Zero values fall back to the
// defaults.
type ChunkOptions struct {
	// Size is the target chunk length.
	Size int

	// Overlap is how much consecutive chunks share.
	Overlap int

	// MinChunk is the minimum tail length; a shorter final piece is absorbed
	// by the preceding window instead of emitted on its own.
	MinChunk int
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.Size <= 0 {
		o.Size = DefaultChunkSize
	}
	if o.Overlap < 0 || o.Overlap >= o.Size {
		o.Overlap = DefaultChunkOverlap
	}
	if o.MinChunk <= 0 {
		o.MinChunk = DefaultMinChunk
	}
	return o
}

// span is one window over the rune slice before trimming.
type span struct {
	start int
	text  string
}

// ChunkText splits text into overlapping windows. A window prefers to end on
// a paragraph boundary ("\n\n") found in its last 40%; a window that would
// leave a tail shorter than MinChunk absorbs the tail instead. Offsets are
// rune positions into the trimmed input.
func ChunkText(text string, opts ChunkOptions) []span {
	opts = opts.withDefaults()

	runes := []rune(strings.TrimSpace(text))
	n := len(runes)
	if n == 0 {
		return nil
	}

	step := opts.Size - opts.Overlap
	if step < 1 {
		step = 1
	}

	var spans []span
	i := 0
	for i < n {
		j := min(n, i+opts.Size)

		// Prefer a paragraph boundary in the last 40% of the window.
		if k := lastParagraphBreak(runes, i+opts.Size*6/10, j); k > i {
			j = k
		}

		// A tail shorter than MinChunk would make a useless final chunk;
		// absorb it into this window.
		if n-j < opts.MinChunk && j != n {
			j = n
		}

		spans = append(spans, span{start: i, text: string(runes[i:j])})
		if j == n {
			break
		}
		i = max(j-opts.Overlap, i+step)
	}

	return spans
}

// lastParagraphBreak returns the rune index of the last "\n\n" occurrence in
// runes[from:to), or -1.
func lastParagraphBreak(runes []rune, from, to int) int {
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	for k := to - 2; k >= from; k-- {
		if runes[k] == '\n' && runes[k+1] == '\n' {
			return k
		}
	}
	return -1
}

// ChunkDetails chunks every detail body and assigns chunk ids.
func ChunkDetails(details []Detail, opts ChunkOptions) []Chunk {
	var chunks []Chunk
	for _, d := range details {
		for idx, sp := range ChunkText(d.Text, opts) {
			chunkNo := idx + 1
			chunks = append(chunks, Chunk{
				CurationNo: d.CurationNo,
				Title:      d.Title,
				ChunkNo:    chunkNo,
				Start:      sp.start,
				End:        sp.start + len([]rune(sp.text)),
				Text:       strings.TrimSpace(sp.text),
				ChunkID:    fmt.Sprintf("%s_%03d", d.CurationNo, chunkNo),
			})
		}
	}
	return chunks
}
