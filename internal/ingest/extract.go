package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Markup stripped entirely before text extraction: page chrome, media,
// scripts and tabular data (tables in the feed hold layout, not prose).
const noiseSelector = "script, style, header, footer, nav, aside, form, button, " +
	"figure, img, svg, iframe, caption, colgroup, col, table"

var (
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// ExtractBody reduces a feed article's HTML to plain body text: noise
// elements removed, <br>/<hr> turned into line breaks, whitespace runs
// collapsed, at most one blank line between paragraphs.
func ExtractBody(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing article HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("br, hr").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml("\n")
	})

	// Block elements get explicit breaks so their text doesn't run together
	// once tags are dropped.
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	text := doc.Text()
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
