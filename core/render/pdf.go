// PDFRenderer converts the import document into a PDF using gofpdf.
// Headings get variable font sizes; each block table is drawn as a grid
// whose header row names the block.

package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/accimport/core"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth = 180.0 // A4 width minus default margins, in mm
	pdfLineH     = 5.0
)

// PDFRenderer renders the import document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render draws the Markdown body followed by the block tables.
func (r *PDFRenderer) Render(doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Source URL.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, pdfLineH, tr("Source: "+doc.Metadata.URL), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// Body text outside the tables.
	for _, line := range strings.Split(doc.Markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(2)
		case strings.HasPrefix(trimmed, "|"):
			// Tables are drawn from the blocks below.
		case trimmed == "* * *" || trimmed == "---":
			pdf.Ln(2)
			y := pdf.GetY()
			pdf.Line(15, y, 15+pdfPageWidth, y)
			pdf.Ln(2)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))), level)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, pdfLineH, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		}
	}

	for _, block := range doc.Blocks {
		renderBlock(pdf, tr, block)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

// renderBlock draws one block table: a shaded header naming the block and
// one line per row with cells split evenly across the page.
func renderBlock(pdf *gofpdf.Fpdf, tr func(string) string, block core.Block) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(pdfPageWidth, 7, tr(block.Name), "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range block.Rows {
		if len(row) == 0 {
			continue
		}
		w := pdfPageWidth / float64(len(row))
		for i, cell := range row {
			ln := 0
			if i == len(row)-1 {
				ln = 1
			}
			pdf.CellFormat(w, 6, tr(fitText(pdf, stripTags(cell), w-2)), "1", ln, "L", false, 0, "")
		}
	}
}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// stripTags reduces cell HTML to its text, one space per tag boundary.
func stripTags(s string) string {
	return strings.Join(strings.Fields(tagRegex.ReplaceAllString(s, " ")), " ")
}

// fitText truncates s with an ellipsis so it fits in width mm.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	// Images, then links: keep the text.
	text = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`).ReplaceAllString(text, "$1")
	text = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`).ReplaceAllString(text, "$1")
	text = regexp.MustCompile("`([^`]+)`").ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
