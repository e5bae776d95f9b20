// The JSON and YAML renderers serialize the imported document: metadata,
// Markdown, the block tables and a structural summary of the Markdown.

package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/accimport/core"
	"gopkg.in/yaml.v3"
)

// Heading represents a single heading found in the Markdown.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Link represents a hyperlink found in the Markdown.
type Link struct {
	Text string `json:"text" yaml:"text"`
	Href string `json:"href" yaml:"href"`
}

// Structure summarizes the Markdown of a document.
type Structure struct {
	Headings []Heading `json:"headings" yaml:"headings"`
	Links    []Link    `json:"links" yaml:"links"`
	Tables   int       `json:"tables" yaml:"tables"`
}

// documentOutput is the serialized shape shared by JSON and YAML.
type documentOutput struct {
	core.Document `yaml:",inline"`
	Structure     Structure `json:"structure" yaml:"structure"`
}

func newDocumentOutput(doc core.Document) documentOutput {
	return documentOutput{
		Document: doc,
		Structure: Structure{
			Headings: extractHeadings(doc.Markdown),
			Links:    extractLinks(doc.Markdown),
			Tables:   len(doc.Blocks),
		},
	}
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the document into indented JSON.
func (r *JSONRenderer) Render(doc core.Document) ([]byte, error) {
	data, err := json.MarshalIndent(newDocumentOutput(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// YAMLRenderer produces structured YAML output.
type YAMLRenderer struct{}

// NewYAMLRenderer creates a YAMLRenderer.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Render converts the document into YAML.
func (r *YAMLRenderer) Render(doc core.Document) ([]byte, error) {
	data, err := yaml.Marshal(newDocumentOutput(doc))
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for YAML output.
func (r *YAMLRenderer) Extension() string {
	return ".yaml"
}

// --- Markdown parsing helpers ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func extractHeadings(md string) []Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

// linkRegex matches Markdown links [text](url), but not images.
var linkRegex = regexp.MustCompile(`(^|[^!])\[([^\]]*)\]\(([^)]+)\)`)

func extractLinks(md string) []Link {
	matches := linkRegex.FindAllStringSubmatch(md, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, Link{
			Text: m[2],
			Href: m[3],
		})
	}
	return links
}
