// Package accessories implements the Transformer for product accessories
// pages.
//
// A page is read in two phases. Scan takes an immutable snapshot of the
// parsed document (title, intro, sections of classified rows, the "more
// accessories" links, breadcrumb and metadata) and Build lays that
// snapshot out as import blocks under a new root:
//
//	h1, p                                  title and intro
//	hr, p(img), table...                   once per section
//	hr, table "Accessories Category"
//	table "Metadata" (+ "Nav Title" row)
//
// The page markup is fixed; any missing element fails the whole page with
// a *MissingElementError.
package accessories

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/accimport/core/logger"
	"golang.org/x/net/html"
)

// DefaultDataHost is where product data sheets are published.
const DefaultDataHost = "https://main--airlessco--hlxsites.hlx.page/product-data/accessories/"

// Transformer turns accessories pages into import documents.
type Transformer struct {
	dataHost string
}

// New creates a Transformer linking data tables under dataHost. An empty
// dataHost selects DefaultDataHost.
func New(dataHost string) *Transformer {
	if dataHost == "" {
		dataHost = DefaultDataHost
	}
	if !strings.HasSuffix(dataHost, "/") {
		dataHost += "/"
	}
	return &Transformer{dataHost: dataHost}
}

// Transform reads doc, the page found at pageURL, and returns the root
// element of the import document. doc is not modified.
func (t *Transformer) Transform(doc *goquery.Document, pageURL string) (*html.Node, error) {
	page, err := Scan(doc, pageURL)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", pageURL, err)
	}
	logger.Debug("scanned accessories page",
		"url", pageURL,
		"sections", len(page.Sections),
		"categories", len(page.Category.Hrefs),
	)

	root, err := Build(page, t.dataHost)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", pageURL, err)
	}
	return root, nil
}

// GeneratePath returns the document path for pageURL: its path without a
// trailing ".html" or "/".
func (t *Transformer) GeneratePath(pageURL string) (string, error) {
	p, err := urlPath(pageURL)
	if err != nil {
		return "", err
	}
	p = strings.TrimSuffix(p, ".html")
	return strings.TrimSuffix(p, "/"), nil
}

func urlPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing page URL: %w", err)
	}
	return u.EscapedPath(), nil
}
