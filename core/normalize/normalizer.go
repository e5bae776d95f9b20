// Package normalize implements the Normalizer interface.
// It converts the transformed import document into Markdown, which serves
// as the canonical intermediate format for all downstream renderers.
// Block tables are kept as Markdown tables.
package normalize

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	conv   *converter.Converter
	domain string
}

// New creates a MarkdownNormalizer. Relative links are resolved against
// domain when it is non-empty.
func New(domain string) *MarkdownNormalizer {
	return &MarkdownNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		domain: domain,
	}
}

// Normalize converts a transformed HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	var (
		markdown string
		err      error
	)
	if n.domain != "" {
		markdown, err = n.conv.ConvertString(html, converter.WithDomain(n.domain))
	} else {
		markdown, err = n.conv.ConvertString(html)
	}
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
