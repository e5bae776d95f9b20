package blocks

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Metadata is the standard page metadata carried by every import document.
type Metadata struct {
	Title       string
	Description string
	Image       string // absolute URL
}

// ReadMetadata collects the standard metadata of doc. Relative image
// URLs are resolved against pageURL.
func ReadMetadata(doc *goquery.Document, pageURL string) Metadata {
	var meta Metadata

	meta.Title = strings.TrimSpace(doc.Find("head > title").First().Text())
	if meta.Title == "" {
		meta.Title = metaContent(doc, `meta[property="og:title"]`)
	}
	meta.Description = metaContent(doc, `meta[name="description"]`)
	if meta.Description == "" {
		meta.Description = metaContent(doc, `meta[property="og:description"]`)
	}

	if img := metaContent(doc, `meta[property="og:image"]`); img != "" {
		meta.Image = resolve(pageURL, img)
	}
	return meta
}

// MetadataBlock appends the "Metadata" table for meta to root. Empty
// fields are left out; the header row is always present.
func MetadataBlock(root *html.Node, meta Metadata) error {
	rows := [][]string{{"Metadata"}}
	if meta.Title != "" {
		rows = append(rows, []string{"Title", html.EscapeString(meta.Title)})
	}
	if meta.Description != "" {
		rows = append(rows, []string{"Description", html.EscapeString(meta.Description)})
	}
	if meta.Image != "" {
		rows = append(rows, []string{"Image", `<img src="` + html.EscapeString(meta.Image) + `">`})
	}

	table, err := CreateTable(rows)
	if err != nil {
		return fmt.Errorf("metadata block: %w", err)
	}
	root.AppendChild(table)
	return nil
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
