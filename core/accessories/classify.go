package accessories

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Row is one classified ".row" region of a section. The concrete types
// below are the only implementations.
type Row interface {
	row()
}

// HeadingRow opens a new detail block.
type HeadingRow struct {
	HTML string // outer HTML of the h3
}

// LabelValueRow is a label column followed by one or more value columns.
type LabelValueRow struct {
	Label  string
	Values []string
}

// LabelTableRow is a label whose content is a nested table that is not
// inlined into the import.
type LabelTableRow struct {
	Label string
}

// LabelOnlyRow is a label column with no value.
type LabelOnlyRow struct {
	Label string
}

// WideTableRow is a full-width data table replaced by a link to the
// product data sheet.
type WideTableRow struct{}

// ResponsiveTableRow is a labelled responsive data table replaced by a
// link to the product data sheet.
type ResponsiveTableRow struct {
	Label string
}

// TextRow is full-width plain text.
type TextRow struct {
	Text string
}

func (HeadingRow) row()         {}
func (LabelValueRow) row()      {}
func (LabelTableRow) row()      {}
func (LabelOnlyRow) row()       {}
func (WideTableRow) row()       {}
func (ResponsiveTableRow) row() {}
func (TextRow) row()            {}

var (
	headingMatcher          = cascadia.MustCompile("h3")
	labelMatcher            = cascadia.MustCompile("div.col-sm-4.col-md-3")
	valueSelector           = "div.col-sm-8.col-md-9"
	valueMatcher            = cascadia.MustCompile(valueSelector)
	nestedTableMatcher      = cascadia.MustCompile("div.col-sm-12 table")
	wideTableMatcher        = cascadia.MustCompile("div.col-xs-12 table")
	responsiveTableMatcher  = cascadia.MustCompile(".table-responsive")
	responsiveLabelSelector = "div.col-sm-12.col-md-3"
	responsiveLabelMatcher  = cascadia.MustCompile(responsiveLabelSelector)
	textMatcher             = cascadia.MustCompile("div.col-xs-12")
)

// Classify decides which shape row has. The first matching rule wins; a
// row that matches none returns a nil Row and no error.
func Classify(row *goquery.Selection) (Row, error) {
	if h := row.FindMatcher(headingMatcher).First(); h.Length() > 0 {
		outer, err := goquery.OuterHtml(h)
		if err != nil {
			return nil, err
		}
		return HeadingRow{HTML: outer}, nil
	}

	label := row.FindMatcher(labelMatcher).First()
	hasLabel := label.Length() > 0

	switch {
	case hasLabel && row.FindMatcher(valueMatcher).Length() > 0:
		r := LabelValueRow{Label: text(label)}
		row.FindMatcher(valueMatcher).Each(func(_ int, v *goquery.Selection) {
			r.Values = append(r.Values, text(v))
		})
		return r, nil
	case hasLabel && row.FindMatcher(nestedTableMatcher).Length() > 0:
		return LabelTableRow{Label: text(label)}, nil
	case hasLabel:
		return LabelOnlyRow{Label: text(label)}, nil
	case row.FindMatcher(wideTableMatcher).Length() > 0:
		return WideTableRow{}, nil
	case row.FindMatcher(responsiveTableMatcher).Length() > 0:
		l := row.FindMatcher(responsiveLabelMatcher).First()
		if l.Length() == 0 {
			return nil, missing(responsiveLabelSelector, "responsive table label")
		}
		return ResponsiveTableRow{Label: text(l)}, nil
	case row.FindMatcher(textMatcher).Length() > 0:
		return TextRow{Text: text(row.FindMatcher(textMatcher).First())}, nil
	}
	return nil, nil
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
