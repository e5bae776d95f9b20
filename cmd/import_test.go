package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/accimport/core"
	"github.com/gaurav-prasanna/accimport/core/accessories"
	"github.com/gaurav-prasanna/accimport/core/extract"
	"github.com/gaurav-prasanna/accimport/core/output"
)

const fixtureURL = "https://www.airlessco.com/en/us/accessories/spray-gun-accessories.html"

// pageFetcher serves fixed HTML per URL.
type pageFetcher map[string]string

func (f pageFetcher) Fetch(_ context.Context, rawURL string) (*core.FetchResult, error) {
	html, ok := f[rawURL]
	if !ok {
		return nil, errors.New("HTTP 404")
	}
	return &core.FetchResult{URL: rawURL, StatusCode: 200, HTML: html}, nil
}

func testPipeline(t *testing.T, format string, fetcher core.Fetcher) (*pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	renderer, err := selectRenderer(format)
	if err != nil {
		t.Fatal(err)
	}
	writer, err := output.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	return &pipeline{
		fetcher:     fetcher,
		extractor:   extract.New(),
		transformer: accessories.New(""),
		renderer:    renderer,
		writer:      writer,
		now:         func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}, dir
}

func TestImportPage_Markdown(t *testing.T) {
	p, dir := testPipeline(t, "markdown", fileFetcher(filepath.Join("testdata", "spray-gun-accessories.html")))

	path, err := p.importPage(context.Background(), fixtureURL)
	if err != nil {
		t.Fatalf("importPage() error = %v", err)
	}

	want := filepath.Join(dir, "en", "us", "accessories", "spray-gun-accessories.md")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)
	for _, want := range []string{"Accessories Details", "Accessories Category", "Metadata", "Nav Title", "abc123"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "<script") {
		t.Error("markdown should not contain scripts")
	}
}

func TestImportPage_JSON(t *testing.T) {
	p, dir := testPipeline(t, "json", fileFetcher(filepath.Join("testdata", "spray-gun-accessories.html")))

	if _, err := p.importPage(context.Background(), fixtureURL); err != nil {
		t.Fatalf("importPage() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "en", "us", "accessories", "spray-gun-accessories.json"))
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Metadata core.PageMetadata `json:"metadata"`
		Blocks   []core.Block      `json:"blocks"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	want := core.PageMetadata{
		URL:        fixtureURL,
		Domain:     "www.airlessco.com",
		Path:       "/en/us/accessories/spray-gun-accessories",
		Title:      "Spray Gun Accessories | Airlessco",
		Language:   "en",
		ImportedAt: "2026-01-02T03:04:05Z",
	}
	if out.Metadata != want {
		t.Errorf("metadata = %+v, want %+v", out.Metadata, want)
	}
	if len(out.Blocks) == 0 {
		t.Fatal("no blocks")
	}
	last := out.Blocks[len(out.Blocks)-1]
	if last.Name != "Metadata" {
		t.Errorf("last block = %q, want Metadata", last.Name)
	}
}

func TestImportPages_ContinuesAfterFailure(t *testing.T) {
	fixture, err := os.ReadFile(filepath.Join("testdata", "spray-gun-accessories.html"))
	if err != nil {
		t.Fatal(err)
	}
	good := fixtureURL
	broken := "https://www.airlessco.com/en/us/accessories/broken.html"
	gone := "https://www.airlessco.com/en/us/accessories/gone.html"

	p, dir := testPipeline(t, "markdown", pageFetcher{
		good:   string(fixture),
		broken: "<html><body><p>not an accessories page</p></body></html>",
	})

	err = p.importPages(context.Background(), []string{broken, good, gone})
	if err == nil {
		t.Fatal("expected error when pages fail")
	}
	if !strings.Contains(err.Error(), "2/3 pages failed") {
		t.Errorf("error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "en", "us", "accessories", "spray-gun-accessories.md")); err != nil {
		t.Errorf("good page not written: %v", err)
	}
}

func TestImportPage_MissingElement(t *testing.T) {
	p, _ := testPipeline(t, "markdown", pageFetcher{
		fixtureURL: "<html><body><p>not an accessories page</p></body></html>",
	})

	_, err := p.importPage(context.Background(), fixtureURL)
	if !errors.Is(err, accessories.ErrMissingElement) {
		t.Fatalf("error = %v, want ErrMissingElement", err)
	}
	var missing *accessories.MissingElementError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingElementError", err)
	}
}

func TestSelectRenderer(t *testing.T) {
	tests := []struct {
		format  string
		ext     string
		wantErr bool
	}{
		{"markdown", ".md", false},
		{"html", ".html", false},
		{"json", ".json", false},
		{"yaml", ".yaml", false},
		{"pdf", ".pdf", false},
		{"docx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r, err := selectRenderer(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("selectRenderer(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err == nil && r.Extension() != tt.ext {
				t.Errorf("Extension() = %q, want %q", r.Extension(), tt.ext)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := validateURL(fixtureURL); err != nil {
		t.Errorf("validateURL(%q) = %v", fixtureURL, err)
	}
	for _, bad := range []string{"www.airlessco.com/en", "/en/us/accessories", "::"} {
		if err := validateURL(bad); err == nil {
			t.Errorf("validateURL(%q) should fail", bad)
		}
	}
}
