package blocks

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/accimport/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func render(t *testing.T, root *html.Node) string {
	t.Helper()
	out, err := Render(root)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return out
}

func TestCreateTable(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "header spans widest row",
			rows: [][]string{{"Accessories Details"}, {"<strong>Part</strong>", "<p>1</p>"}},
			want: `<table><tr><th colspan="2">Accessories Details</th></tr><tr><td><strong>Part</strong></td><td><p>1</p></td></tr></table>`,
		},
		{
			name: "header only",
			rows: [][]string{{"Metadata"}},
			want: `<table><tr><th>Metadata</th></tr></table>`,
		},
		{
			name: "single column",
			rows: [][]string{{"Accessories Details"}, {"text"}},
			want: `<table><tr><th>Accessories Details</th></tr><tr><td>text</td></tr></table>`,
		},
		{
			name: "empty cell",
			rows: [][]string{{"Metadata"}, {"Title", ""}},
			want: `<table><tr><th colspan="2">Metadata</th></tr><tr><td>Title</td><td></td></tr></table>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := CreateTable(tt.rows)
			if err != nil {
				t.Fatalf("CreateTable() error = %v", err)
			}
			root := NewRoot()
			root.AppendChild(table)
			if got := render(t, root); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestCreateTable_EmptyHeader(t *testing.T) {
	for _, rows := range [][][]string{nil, {{}}, {{""}, {"x"}}} {
		if _, err := CreateTable(rows); err == nil {
			t.Errorf("CreateTable(%v) should fail", rows)
		}
	}
}

func TestAppendTextRow_LastTable(t *testing.T) {
	root := NewRoot()
	if LastTable(root) != nil {
		t.Fatal("LastTable() of empty root should be nil")
	}

	first, _ := CreateTable([][]string{{"Accessories Category"}})
	second, _ := CreateTable([][]string{{"Metadata"}})
	root.AppendChild(first)
	root.AppendChild(second)
	root.AppendChild(Separator())

	last := LastTable(root)
	if last != second {
		t.Fatal("LastTable() should return the last table, skipping trailing non-tables")
	}
	AppendTextRow(last, "Nav Title", "Hoses & <Fittings>")

	got := render(t, root)
	want := `<tr><td>Nav Title</td><td>Hoses &amp; &lt;Fittings&gt;</td></tr></table><hr/>`
	if !strings.Contains(got, want) {
		t.Errorf("got %s, want containing %s", got, want)
	}
}

func TestInlineHelpers(t *testing.T) {
	if got := Bold("A & B"); got != "<strong>A &amp; B</strong>" {
		t.Errorf("Bold() = %q", got)
	}
	if got := Link("https://x.example/a.json?sheet=en_us"); got != `<a href="https://x.example/a.json?sheet=en_us">https://x.example/a.json?sheet=en_us</a>` {
		t.Errorf("Link() = %q", got)
	}
	if got := Paragraphs("60 <mesh>", "100"); got != "<p>60 &lt;mesh&gt;</p><p>100</p>" {
		t.Errorf("Paragraphs() = %q", got)
	}
}

func TestElementWithHTML(t *testing.T) {
	h1, err := ElementWithHTML(atom.H1, "Spray Gun <em>Accessories</em>")
	if err != nil {
		t.Fatal(err)
	}
	root := NewRoot()
	root.AppendChild(h1)
	root.AppendChild(Paragraph("a < b"))

	want := "<h1>Spray Gun <em>Accessories</em></h1><p>a &lt; b</p>"
	if got := render(t, root); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

const metadataPage = `<html><head>
<title> Hoses | Airlessco </title>
<meta name="description" content="High pressure hoses.">
<meta property="og:title" content="OG Hoses">
<meta property="og:description" content="OG description">
<meta property="og:image" content="/images/hoses.jpg">
</head><body></body></html>`

func TestReadMetadata(t *testing.T) {
	tests := []struct {
		name string
		page string
		want Metadata
	}{
		{
			name: "full",
			page: metadataPage,
			want: Metadata{
				Title:       "Hoses | Airlessco",
				Description: "High pressure hoses.",
				Image:       "https://www.airlessco.com/images/hoses.jpg",
			},
		},
		{
			name: "open graph fallback",
			page: `<html><head><meta property="og:title" content="OG Hoses"><meta property="og:description" content="OG description"></head></html>`,
			want: Metadata{Title: "OG Hoses", Description: "OG description"},
		},
		{
			name: "empty",
			page: `<html><body><p>x</p></body></html>`,
			want: Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.page))
			if err != nil {
				t.Fatal(err)
			}
			got := ReadMetadata(doc, "https://www.airlessco.com/en/us/accessories/hoses.html")
			if got != tt.want {
				t.Errorf("ReadMetadata() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMetadataBlock(t *testing.T) {
	root := NewRoot()
	if err := MetadataBlock(root, Metadata{Title: "Hoses & Fittings", Image: "https://x.example/a.jpg"}); err != nil {
		t.Fatal(err)
	}

	want := []core.Block{{
		Name: "Metadata",
		Rows: [][]string{
			{"Title", "Hoses &amp; Fittings"},
			{"Image", `<img src="https://x.example/a.jpg"/>`},
		},
	}}
	if got := Collect(root); !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %#v, want %#v", got, want)
	}
}

func TestMetadataBlock_HeaderOnly(t *testing.T) {
	root := NewRoot()
	if err := MetadataBlock(root, Metadata{}); err != nil {
		t.Fatal(err)
	}
	got := Collect(root)
	if len(got) != 1 || got[0].Name != "Metadata" || len(got[0].Rows) != 0 {
		t.Errorf("Collect() = %#v", got)
	}
}

func TestCollect_SkipsNestedTables(t *testing.T) {
	root := NewRoot()
	root.AppendChild(Paragraph("intro"))
	outer, err := CreateTable([][]string{{"Accessories Details"}, {"Sizes", "<table><tr><td>1</td></tr></table>"}})
	if err != nil {
		t.Fatal(err)
	}
	root.AppendChild(outer)

	got := Collect(root)
	if len(got) != 1 {
		t.Fatalf("Collect() returned %d blocks, want 1", len(got))
	}
	if got[0].Rows[0][0] != "Sizes" {
		t.Errorf("first cell = %q", got[0].Rows[0][0])
	}
}
