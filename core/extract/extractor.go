// Package extract implements the Extractor interface.
// It prepares a fetched page for transformation by removing elements
// that never carry accessory content (scripts, styles, embeds, forms).
// Images, navigation and breadcrumbs are kept: the transform reads them.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before transformation.
var noiseSelectors = []string{
	"script", "style", "noscript", "link",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".cookie-banner", ".modal",
}

// HTMLExtractor strips noise from a page while keeping the full document
// shape the accessories transform depends on.
type HTMLExtractor struct {
	extra []string
}

// New creates an HTMLExtractor. Extra selectors are removed in addition
// to the built-in noise list.
func New(extra ...string) *HTMLExtractor {
	return &HTMLExtractor{extra: extra}
}

// Extract takes raw HTML and returns the cleaned full document.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range e.extra {
		doc.Find(sel).Remove()
	}

	result, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("serializing document: %w", err)
	}
	return result, nil
}
