package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCropCandidates(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"crop with particles", "토마토 잎이 마르는데 어떻게 하나요", []string{"토마토", "잎이", "마르는데", "어떻게", "하나요"}},
		{"single syllables dropped", "이 밭 그 논", nil},
		{"mixed script", "tomato 토마토 leaf 잎", []string{"토마토"}},
		{"no hangul", "how to grow tomatoes", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cropCandidates(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectCrop(t *testing.T) {
	neighbors := []Neighbor{
		{Metadata: map[string]string{"title": "토마토 재배 기술"}},
		{Metadata: map[string]string{"curationNm": "감자 저장 요령"}},
	}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"first matching candidate wins", "감자 토마토 둘 다 궁금해요", "감자"},
		{"match in query order not title order", "토마토 심기", "토마토"},
		{"no candidate in titles", "선인장 관리", ""},
		{"no hangul candidates", "hello there", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectCrop(tt.query, neighbors))
		})
	}
}

func TestDetectCrop_NoTitles(t *testing.T) {
	neighbors := []Neighbor{
		{Metadata: map[string]string{}},
		{Metadata: nil},
	}
	assert.Equal(t, "", detectCrop("토마토 심기", neighbors))
}

func TestNarrowByCrop(t *testing.T) {
	neighbors := []Neighbor{
		{ID: "t", Document: "본문", Metadata: map[string]string{"title": "토마토 재배"}},
		{ID: "p", Document: "본문", Metadata: map[string]string{"title": "감자 저장"}},
		{ID: "d", Document: "토마토 얘기가 본문에만 있음", Metadata: map[string]string{"title": "병해충 일반"}},
	}

	narrowed := narrowByCrop(neighbors, "토마토")

	// Title match and document match both count.
	ids := make([]string, 0, len(narrowed))
	for _, n := range narrowed {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"t", "d"}, ids)
}

func TestNarrowByCrop_NeverEmpties(t *testing.T) {
	neighbors := []Neighbor{
		{ID: "a", Document: "감자 본문", Metadata: map[string]string{"title": "감자 저장"}},
	}

	// No neighbor mentions the crop; the original set comes back unchanged.
	narrowed := narrowByCrop(neighbors, "토마토")
	assert.Equal(t, neighbors, narrowed)
}
