package rag

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// hangulRun matches maximal runs of Hangul syllables. Crop names in queries
// ("토마토 잎이 마르는데...") are plain Hangul nouns; single-syllable runs are
// too ambiguous to act on.
var hangulRun = regexp.MustCompile(`[가-힣]+`)

const minCropTokenLen = 2

// cropCandidates extracts Hangul word candidates of at least two syllables
// from the query, in order of appearance.
func cropCandidates(query string) []string {
	runs := hangulRun.FindAllString(query, -1)
	candidates := runs[:0]
	for _, run := range runs {
		if utf8.RuneCountInString(run) >= minCropTokenLen {
			candidates = append(candidates, run)
		}
	}
	return candidates
}

// detectCrop returns the first query candidate that appears verbatim in the
// concatenated titles of the retained neighbors, or "" when no candidate
// matches any title.
func detectCrop(query string, neighbors []Neighbor) string {
	candidates := cropCandidates(query)
	if len(candidates) == 0 {
		return ""
	}

	var titles []string
	for _, n := range neighbors {
		if title := firstMeta(n.Metadata, nameFields); title != "" {
			titles = append(titles, title)
		}
	}
	if len(titles) == 0 {
		return ""
	}

	joined := strings.Join(titles, " ")
	for _, cand := range candidates {
		if strings.Contains(joined, cand) {
			return cand
		}
	}
	return ""
}

// narrowByCrop keeps only neighbors whose title or body mentions the crop.
// If that would empty the set, the original neighbors are returned unchanged:
// the heuristic narrows relevance filtering but never invalidates it.
func narrowByCrop(neighbors []Neighbor, crop string) []Neighbor {
	filtered := make([]Neighbor, 0, len(neighbors))
	for _, n := range neighbors {
		title := firstMeta(n.Metadata, nameFields)
		if strings.Contains(title, crop) || strings.Contains(n.Document, crop) {
			filtered = append(filtered, n)
		}
	}
	if len(filtered) == 0 {
		return neighbors
	}
	return filtered
}
