package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metaNeighbor(meta map[string]string) Neighbor {
	return Neighbor{Document: "doc", Metadata: meta}
}

func TestExtractLinks_DedupAndLimit(t *testing.T) {
	neighbors := []Neighbor{
		metaNeighbor(map[string]string{"title": "문서 A", "pdf_path": "http://x/a.pdf"}),
		metaNeighbor(map[string]string{"title": "문서 A 2장", "pdf_path": "http://x/a.pdf"}), // dup URL
		metaNeighbor(map[string]string{"title": "문서 B", "pdf_path": "http://x/b.pdf"}),
		metaNeighbor(map[string]string{"title": "문서 C", "pdf_path": "http://x/c.pdf"}),
		metaNeighbor(map[string]string{"title": "문서 D", "pdf_path": "http://x/d.pdf"}), // over limit
	}

	links := extractLinks(neighbors, 3)

	require.Len(t, links, 3)
	assert.Equal(t, "http://x/a.pdf", links[0].URL)
	assert.Equal(t, "문서 A", links[0].Title) // first occurrence wins
	assert.Equal(t, "http://x/b.pdf", links[1].URL)
	assert.Equal(t, "http://x/c.pdf", links[2].URL)
}

func TestExtractLinks_URLFieldFallback(t *testing.T) {
	neighbors := []Neighbor{
		metaNeighbor(map[string]string{"title": "a", "atchmnflUrl": "http://x/attach.pdf"}),
		metaNeighbor(map[string]string{"title": "b", "linkUrl": "http://x/link"}),
		// pdf_path takes precedence over the others.
		metaNeighbor(map[string]string{"title": "c", "pdf_path": "http://x/pdf", "linkUrl": "http://x/other"}),
	}

	links := extractLinks(neighbors, 3)

	require.Len(t, links, 3)
	assert.Equal(t, "http://x/attach.pdf", links[0].URL)
	assert.Equal(t, "http://x/link", links[1].URL)
	assert.Equal(t, "http://x/pdf", links[2].URL)
}

func TestExtractLinks_TitleFallbacks(t *testing.T) {
	neighbors := []Neighbor{
		metaNeighbor(map[string]string{"curationNm": "큐레이션 제목", "pdf_path": "http://x/a"}),
		metaNeighbor(map[string]string{"document_title": "문서 제목", "pdf_path": "http://x/b"}),
		// No title at all: URL doubles as the title.
		metaNeighbor(map[string]string{"pdf_path": "http://x/c"}),
	}

	links := extractLinks(neighbors, 3)

	require.Len(t, links, 3)
	assert.Equal(t, "큐레이션 제목", links[0].Title)
	assert.Equal(t, "문서 제목", links[1].Title)
	assert.Equal(t, "http://x/c", links[2].Title)
}

func TestExtractLinks_SkipsRecordsWithoutURL(t *testing.T) {
	neighbors := []Neighbor{
		metaNeighbor(map[string]string{"title": "링크 없음"}),
		metaNeighbor(map[string]string{"title": "공백 링크", "pdf_path": "   "}),
		metaNeighbor(nil),
		metaNeighbor(map[string]string{"title": "정상", "pdf_path": "http://x/a"}),
	}

	links := extractLinks(neighbors, 3)

	require.Len(t, links, 1)
	assert.Equal(t, "정상", links[0].Title)
}

func TestExtractLinks_Empty(t *testing.T) {
	assert.Empty(t, extractLinks(nil, 3))
	assert.Empty(t, extractLinks([]Neighbor{}, 3))
}

func TestFirstMeta(t *testing.T) {
	meta := map[string]string{"a": "", "b": "  ", "c": " value "}
	assert.Equal(t, "value", firstMeta(meta, []string{"a", "b", "c"}))
	assert.Equal(t, "", firstMeta(meta, []string{"a", "b"}))
	assert.Equal(t, "", firstMeta(nil, []string{"a"}))
}
