// Package blocks builds the output nodes of an import: block tables,
// separators and paragraphs appended to the document root.
//
// A block is a table whose first row is a single header cell naming the
// block type ("Metadata", "Accessories Details", ...). The remaining rows
// carry key/value content as inner HTML.
package blocks

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewRoot returns an empty <body> element that blocks are appended to.
func NewRoot() *html.Node {
	return Element(atom.Body)
}

// Element creates a detached element node.
func Element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Separator returns an <hr>, the section break of an import document.
func Separator() *html.Node {
	return Element(atom.Hr)
}

// Paragraph returns a <p> holding s as plain text.
func Paragraph(s string) *html.Node {
	p := Element(atom.P)
	p.AppendChild(Text(s))
	return p
}

// ElementWithHTML creates an element of type a whose children are parsed
// from inner.
func ElementWithHTML(a atom.Atom, inner string) (*html.Node, error) {
	el := Element(a)
	if err := setInnerHTML(el, inner); err != nil {
		return nil, err
	}
	return el, nil
}

// CreateTable converts rows into a block table. The first row is the
// header and is rendered with <th> cells; its single cell spans the widest
// row. Every cell string is parsed as inner HTML.
func CreateTable(rows [][]string) (*html.Node, error) {
	if len(rows) == 0 || len(rows[0]) == 0 || rows[0][0] == "" {
		return nil, fmt.Errorf("block table needs a non-empty header row")
	}

	maxCols := 0
	for _, row := range rows {
		maxCols = max(maxCols, len(row))
	}

	table := Element(atom.Table)
	for i, row := range rows {
		tr := Element(atom.Tr)
		cellAtom := atom.Td
		if i == 0 {
			cellAtom = atom.Th
		}
		for _, cell := range row {
			c := Element(cellAtom)
			if err := setInnerHTML(c, cell); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			tr.AppendChild(c)
		}
		if i == 0 && maxCols > 1 && len(row) == 1 {
			tr.FirstChild.Attr = append(tr.FirstChild.Attr, html.Attribute{
				Key: "colspan",
				Val: strconv.Itoa(maxCols),
			})
		}
		table.AppendChild(tr)
	}
	return table, nil
}

// AppendTextRow appends a row of plain-text cells to table.
func AppendTextRow(table *html.Node, cells ...string) {
	tr := Element(atom.Tr)
	for _, cell := range cells {
		td := Element(atom.Td)
		td.AppendChild(Text(cell))
		tr.AppendChild(td)
	}
	table.AppendChild(tr)
}

// LastTable returns the last <table> child of root, or nil.
func LastTable(root *html.Node) *html.Node {
	for c := root.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Table {
			return c
		}
	}
	return nil
}

// Bold wraps escaped text in <strong>.
func Bold(text string) string {
	return "<strong>" + html.EscapeString(text) + "</strong>"
}

// Link renders href as an anchor whose text is the href itself.
func Link(href string) string {
	esc := html.EscapeString(href)
	return `<a href="` + esc + `">` + esc + `</a>`
}

// Paragraphs wraps each escaped text in <p> and concatenates them.
func Paragraphs(texts ...string) string {
	var b strings.Builder
	for _, t := range texts {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(t))
		b.WriteString("</p>")
	}
	return b.String()
}

// Render serializes the children of root, the equivalent of innerHTML.
func Render(root *html.Node) (string, error) {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("rendering import document: %w", err)
		}
	}
	return b.String(), nil
}

func setInnerHTML(el *html.Node, inner string) error {
	if inner == "" {
		return nil
	}
	// Parse in a <div> context so table cells and headings are both accepted.
	nodes, err := html.ParseFragment(strings.NewReader(inner), Element(atom.Div))
	if err != nil {
		return fmt.Errorf("parsing cell HTML: %w", err)
	}
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return nil
}
