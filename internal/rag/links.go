package rag

import "strings"

// Ordered metadata fallback policies. Chunks indexed from different pipeline
// versions carry the attachment URL and title under different keys; the first
// non-empty field wins. Partial metadata is never fatal.
var (
	urlFields   = []string{"pdf_path", "atchmnflUrl", "linkUrl"}
	titleFields = []string{"title", "curationNm", "document_title"}

	// nameFields is the narrower set the crop heuristic matches against.
	nameFields = []string{"title", "curationNm"}
)

// firstMeta returns the first non-empty (after trimming) value among keys.
func firstMeta(meta map[string]string, keys []string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(meta[key]); v != "" {
			return v
		}
	}
	return ""
}

// extractLinks collects up to limit reference links from the retained
// neighbors, preserving relevance order and deduplicating by URL. Records
// without a usable URL are skipped; a missing title falls back to the URL.
func extractLinks(neighbors []Neighbor, limit int) []ReferenceLink {
	links := make([]ReferenceLink, 0, limit)
	seen := make(map[string]struct{}, limit)

	for _, n := range neighbors {
		url := firstMeta(n.Metadata, urlFields)
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}

		title := firstMeta(n.Metadata, titleFields)
		if title == "" {
			title = url
		}

		links = append(links, ReferenceLink{Title: title, URL: url})
		seen[url] = struct{}{}
		if len(links) >= limit {
			break
		}
	}

	return links
}
