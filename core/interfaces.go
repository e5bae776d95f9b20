// Package core defines the pipeline interfaces for the accessories importer.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata holds metadata about an imported page.
type PageMetadata struct {
	URL        string `json:"url" yaml:"url"`
	Domain     string `json:"domain" yaml:"domain"`
	Path       string `json:"path" yaml:"path"` // document path from the Transformer
	Title      string `json:"title" yaml:"title"`
	Language   string `json:"language" yaml:"language"`
	ImportedAt string `json:"imported_at" yaml:"imported_at"` // ISO8601
}

// Block is a table of the transformed document, keyed by its header cell.
// Cells hold inner HTML.
type Block struct {
	Name string     `json:"name" yaml:"name"`
	Rows [][]string `json:"rows" yaml:"rows"`
}

// Document is the complete result of importing a single page.
type Document struct {
	Metadata PageMetadata `json:"metadata" yaml:"metadata"`
	HTML     string       `json:"-" yaml:"-"`
	Markdown string       `json:"markdown" yaml:"markdown"`
	Blocks   []Block      `json:"blocks" yaml:"blocks"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor strips noise from raw HTML before it is transformed.
type Extractor interface {
	Extract(html string) (string, error)
}

// Transformer rearranges a parsed page into import blocks and names the
// resulting document.
type Transformer interface {
	Transform(doc *goquery.Document, url string) (*html.Node, error)
	GeneratePath(url string) (string, error)
}

// Normalizer converts transformed HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts an imported document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
