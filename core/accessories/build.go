package accessories

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/accimport/core/blocks"
	"github.com/gaurav-prasanna/accimport/core/logger"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	detailsBlock  = "Accessories Details"
	categoryBlock = "Accessories Category"
	navTitleKey   = "Nav Title"

	// placeholder for nested tables that are not carried into the import
	nestedTablePlaceholder = "table"
)

var (
	localePattern   = regexp.MustCompile(`^/(\w+)/(\w+)/.*`)
	categoryPattern = regexp.MustCompile(`.*/(revtip)?(\w+)/?`)
	navTitlePattern = regexp.MustCompile(`\s*Accessories\s*`)
)

// sectionContext carries the state that spans the rows of one section:
// the open detail block and the product identifier used for data links.
type sectionContext struct {
	block     [][]string // nil until a heading row opens a block
	productID string
}

type builder struct {
	root     *html.Node
	dataHost string
	locale   string
}

// Build writes page into a fresh root: title and intro, one group of
// (separator, image, detail tables) per section, the category block, the
// metadata block and finally the nav title row on the metadata table.
func Build(page *Page, dataHost string) (*html.Node, error) {
	path, err := urlPath(page.URL)
	if err != nil {
		return nil, err
	}
	b := &builder{
		root:     blocks.NewRoot(),
		dataHost: dataHost,
		locale:   Locale(path),
	}

	if err := b.autoBlock(page); err != nil {
		return nil, err
	}
	for i, sec := range page.Sections {
		if err := b.section(sec); err != nil {
			return nil, fmt.Errorf("section %d: %w", i+1, err)
		}
	}
	if err := b.categoryBlock(page.Category); err != nil {
		return nil, err
	}
	if err := blocks.MetadataBlock(b.root, page.Metadata); err != nil {
		return nil, err
	}
	if err := b.navTitle(page.NavTitle); err != nil {
		return nil, err
	}
	return b.root, nil
}

func (b *builder) autoBlock(page *Page) error {
	title, err := blocks.ElementWithHTML(atom.H1, page.TitleHTML)
	if err != nil {
		return fmt.Errorf("page title: %w", err)
	}
	b.root.AppendChild(title)
	b.root.AppendChild(blocks.Paragraph(page.Intro))
	return nil
}

func (b *builder) section(sec Section) error {
	b.root.AppendChild(blocks.Separator())

	img, err := blocks.ElementWithHTML(atom.P, sec.ImageHTML)
	if err != nil {
		return fmt.Errorf("section image: %w", err)
	}
	b.root.AppendChild(img)

	ctx := &sectionContext{}
	for _, r := range sec.Rows {
		if err := b.applyRow(ctx, r); err != nil {
			return err
		}
	}
	return b.flush(ctx)
}

func (b *builder) applyRow(ctx *sectionContext, r Row) error {
	if _, heading := r.(HeadingRow); !heading && ctx.block == nil {
		// Rows ahead of the first heading of a section have no block to land in.
		logger.Debug("dropping accessory row outside a detail block", "type", fmt.Sprintf("%T", r))
		return nil
	}

	switch r := r.(type) {
	case HeadingRow:
		if err := b.flush(ctx); err != nil {
			return err
		}
		ctx.block = [][]string{{detailsBlock}, {r.HTML}}
	case LabelValueRow:
		if ctx.productID == "" && len(r.Values) > 0 {
			ctx.productID = r.Values[0]
		}
		ctx.push(blocks.Bold(r.Label), blocks.Paragraphs(r.Values...))
	case LabelTableRow:
		ctx.push(html.EscapeString(r.Label), nestedTablePlaceholder)
	case LabelOnlyRow:
		ctx.push(html.EscapeString(r.Label))
	case WideTableRow:
		link, err := b.dataLink(ctx.productID)
		if err != nil {
			return err
		}
		ctx.push(blocks.Link(link))
	case ResponsiveTableRow:
		link, err := b.dataLink(ctx.productID)
		if err != nil {
			return err
		}
		ctx.push(blocks.Bold(r.Label), blocks.Link(link))
	case TextRow:
		ctx.push(html.EscapeString(r.Text))
	default:
		logger.Debug("no rule for accessory row", "type", fmt.Sprintf("%T", r))
	}
	return nil
}

func (ctx *sectionContext) push(cells ...string) {
	ctx.block = append(ctx.block, cells)
}

// flush appends the open block, if any, to the root.
func (b *builder) flush(ctx *sectionContext) error {
	if ctx.block == nil {
		return nil
	}
	table, err := blocks.CreateTable(ctx.block)
	if err != nil {
		return err
	}
	b.root.AppendChild(table)
	ctx.block = nil
	return nil
}

func (b *builder) dataLink(productID string) (string, error) {
	if productID == "" {
		return "", missing(valueSelector, "product identifier for data table link")
	}
	return DataLink(b.dataHost, productID, b.locale), nil
}

func (b *builder) categoryBlock(cat Category) error {
	b.root.AppendChild(blocks.Separator())

	var types []string
	for _, href := range cat.Hrefs {
		token, ok := CategoryToken(href)
		if !ok {
			logger.Debug("skipping category link", "href", href)
			continue
		}
		types = append(types, token)
	}

	table, err := blocks.CreateTable([][]string{
		{categoryBlock},
		{"Title", cat.HeadingHTML},
		{"Types", blocks.Paragraphs(types...)},
	})
	if err != nil {
		return fmt.Errorf("category block: %w", err)
	}
	b.root.AppendChild(table)
	return nil
}

func (b *builder) navTitle(active string) error {
	table := blocks.LastTable(b.root)
	if table == nil {
		return missing("table:last-of-type", "metadata table for nav title")
	}
	blocks.AppendTextRow(table, navTitleKey, NavTitle(active))
	return nil
}

// DataLink is the URL of the product data sheet for productID in locale.
func DataLink(dataHost, productID, locale string) string {
	return fmt.Sprintf("%s%s.json?sheet=%s", dataHost, strings.ToLower(strings.TrimSpace(productID)), locale)
}

// Locale derives "{language}_{region}" from the first two segments of a
// URL path. A path with fewer segments is returned unchanged.
func Locale(path string) string {
	return localePattern.ReplaceAllString(path, "${1}_${2}")
}

// CategoryToken extracts the category name from a "more accessories"
// link, ignoring an optional "revtip" prefix.
func CategoryToken(href string) (string, bool) {
	m := categoryPattern.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// NavTitle strips the word "Accessories" and its surrounding whitespace.
func NavTitle(active string) string {
	return navTitlePattern.ReplaceAllString(active, "")
}
