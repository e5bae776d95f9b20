package render

import (
	"fmt"

	"github.com/gaurav-prasanna/accimport/core"
	"golang.org/x/net/html"
)

// HTMLRenderer writes the transformed document as a standalone HTML page,
// the form document converters consume directly.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render wraps the transformed root in a minimal HTML document.
func (r *HTMLRenderer) Render(doc core.Document) ([]byte, error) {
	page := fmt.Sprintf("<!DOCTYPE html>\n<html lang=%q>\n<head><title>%s</title></head>\n<body>%s</body>\n</html>\n",
		doc.Metadata.Language, html.EscapeString(doc.Metadata.Title), doc.HTML)
	return []byte(page), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
