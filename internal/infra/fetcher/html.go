package fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are the elements whose text forms separate paragraphs.
const blockSelectors = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, td, figcaption"

// HTMLToText extracts readable text from an HTML fragment or document.
// Script, style and navigation elements are dropped and each block
// element becomes its own line. Markup without block elements falls back
// to the body text.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, form, iframe, svg").Remove()

	var lines []string
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		// nested blocks (li > p) are visited on their own
		if s.Find(blockSelectors).Length() > 0 {
			return
		}
		if line := strings.Join(strings.Fields(s.Text()), " "); line != "" {
			lines = append(lines, line)
		}
	})

	if len(lines) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " "), nil
	}
	return strings.Join(lines, "\n"), nil
}

// LooksLikeHTML reports whether s appears to be HTML markup rather than
// plain text.
func LooksLikeHTML(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(t, "<") {
		return false
	}
	for _, marker := range []string{"<html", "<!doctype", "<body", "<p", "<div", "<article", "<h1", "<section"} {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}

// HTMLExtractor adapts HTMLToText to summary.TextExtractor.
type HTMLExtractor struct{}

func (HTMLExtractor) IsHTML(s string) bool { return LooksLikeHTML(s) }

func (HTMLExtractor) ExtractText(html string) (string, error) { return HTMLToText(html) }
