package accessories

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/accimport/core/blocks"
	"github.com/gaurav-prasanna/accimport/core/logger"
	"golang.org/x/net/html"
)

const (
	titleSelector      = "body > div.container.start > h1"
	introSelector      = "body > div.container.start > div.row.rowpadding > div"
	sectionSelector    = "body > div.container.start > div.row, body > div.container.start > h2"
	rowSelector        = "div > .row"
	categorySelector   = "h2"
	breadcrumbSelector = "ol.breadcrumb li.active"
)

// Page is an immutable snapshot of everything the transform reads from an
// accessories page.
type Page struct {
	URL       string
	TitleHTML string // inner HTML of the page h1
	Intro     string // plain text of the intro block
	Sections  []Section
	Category  Category
	NavTitle  string // breadcrumb active entry, verbatim
	Metadata  blocks.Metadata
}

// Section is one accessory group of the page.
type Section struct {
	ImageHTML string // outer HTML of the section image; empty when absent
	Rows      []Row  // classified rows in document order, unmatched rows dropped
}

// Category is the "more accessories" region that follows the sections.
type Category struct {
	HeadingHTML string
	Hrefs       []string
}

// scanner reads a document without mutating it. Regions the transform
// has already taken are recorded in consumed and hidden from later
// lookups.
type scanner struct {
	doc      *goquery.Document
	consumed map[*html.Node]bool
}

// Scan reads doc into a Page. It fails with a *MissingElementError on the
// first required element the page lacks, in the order the transform
// needs them.
func Scan(doc *goquery.Document, pageURL string) (*Page, error) {
	s := &scanner{doc: doc, consumed: make(map[*html.Node]bool)}
	page := &Page{URL: pageURL}

	if err := s.scanIntro(page); err != nil {
		return nil, err
	}
	if err := s.scanSections(page); err != nil {
		return nil, err
	}
	if err := s.scanCategory(page); err != nil {
		return nil, err
	}
	page.Metadata = blocks.ReadMetadata(doc, pageURL)

	active := s.find(doc.Selection, breadcrumbSelector)
	if active.Length() == 0 {
		return nil, missing(breadcrumbSelector, "breadcrumb")
	}
	page.NavTitle = active.Text()

	return page, nil
}

func (s *scanner) scanIntro(page *Page) error {
	h1 := s.find(s.doc.Selection, titleSelector)
	if h1.Length() == 0 {
		return missing(titleSelector, "page title")
	}
	inner, err := h1.Html()
	if err != nil {
		return fmt.Errorf("reading page title: %w", err)
	}
	page.TitleHTML = inner
	s.consume(h1)

	body := s.find(s.doc.Selection, introSelector)
	if body.Length() == 0 {
		return missing(introSelector, "intro text")
	}
	page.Intro = body.Text()
	s.consume(body.Parent())
	return nil
}

func (s *scanner) scanSections(page *Page) error {
	var err error
	s.visible(s.doc.Find(sectionSelector)).EachWithBreak(func(i int, el *goquery.Selection) bool {
		if goquery.NodeName(el) != "div" {
			return false
		}
		var sec Section
		if sec, err = s.scanSection(el); err != nil {
			err = fmt.Errorf("section %d: %w", i+1, err)
			return false
		}
		page.Sections = append(page.Sections, sec)
		return true
	})
	return err
}

func (s *scanner) scanSection(container *goquery.Selection) (Section, error) {
	var sec Section

	if img := s.find(container, "img"); img.Length() > 0 {
		outer, err := goquery.OuterHtml(img)
		if err != nil {
			return sec, fmt.Errorf("reading section image: %w", err)
		}
		sec.ImageHTML = outer
		s.consume(img)
		if parent := img.Parent(); !parent.IsSelection(container) {
			s.consume(parent)
		}
	} else {
		first := s.visible(container.Children()).First()
		if first.Length() == 0 {
			return sec, missing(":first-child", "section without image")
		}
		s.consume(first)
	}

	var err error
	s.visible(container.Find(rowSelector)).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		var r Row
		if r, err = Classify(el); err != nil {
			return false
		}
		if r == nil {
			logger.Debug("skipping unrecognized accessory row", "class", el.AttrOr("class", ""))
			return true
		}
		sec.Rows = append(sec.Rows, r)
		return true
	})
	return sec, err
}

func (s *scanner) scanCategory(page *Page) error {
	heading := s.find(s.doc.Selection, categorySelector)
	if heading.Length() == 0 {
		return missing(categorySelector, "more accessories heading")
	}
	outer, err := goquery.OuterHtml(heading)
	if err != nil {
		return fmt.Errorf("reading category heading: %w", err)
	}
	page.Category.HeadingHTML = outer

	list := heading.Next()
	if list.Length() == 0 {
		return missing(categorySelector+" + *", "more accessories links")
	}
	list.Find("a").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			page.Category.Hrefs = append(page.Category.Hrefs, strings.TrimSpace(href))
		}
	})
	return nil
}

// find returns the first visible match of selector under sel.
func (s *scanner) find(sel *goquery.Selection, selector string) *goquery.Selection {
	return s.visible(sel.Find(selector)).First()
}

// visible drops nodes that lie inside a consumed region.
func (s *scanner) visible(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, el *goquery.Selection) bool {
		for n := el.Get(0); n != nil; n = n.Parent {
			if s.consumed[n] {
				return false
			}
		}
		return true
	})
}

func (s *scanner) consume(sel *goquery.Selection) {
	for _, n := range sel.Nodes {
		s.consumed[n] = true
	}
}
