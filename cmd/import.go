// The import command orchestrates the pipeline:
// fetch → extract → transform → normalize → render → write.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/accimport/core"
	"github.com/gaurav-prasanna/accimport/core/accessories"
	"github.com/gaurav-prasanna/accimport/core/blocks"
	"github.com/gaurav-prasanna/accimport/core/config"
	"github.com/gaurav-prasanna/accimport/core/extract"
	"github.com/gaurav-prasanna/accimport/core/fetch"
	"github.com/gaurav-prasanna/accimport/core/logger"
	"github.com/gaurav-prasanna/accimport/core/normalize"
	"github.com/gaurav-prasanna/accimport/core/output"
	"github.com/gaurav-prasanna/accimport/core/render"
	"github.com/gaurav-prasanna/accimport/crawl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag variables that are not settings.
var (
	flagAll      bool
	flagFromFile string
	flagNoRobots bool
)

var importCmd = &cobra.Command{
	Use:   "import <url>...",
	Short: "Import accessories pages",
	Long: `Import fetches accessories pages, transforms them into import blocks
and writes one document per page below the output directory, at the
page's path (e.g. /en/us/accessories/hoses.html -> en/us/accessories/hoses.md).

Examples:
  accimport import https://www.airlessco.com/en/us/accessories/hoses.html
  accimport import https://www.airlessco.com/en/us/accessories/ --all --format json
  accimport import https://www.airlessco.com/en/us/accessories/hoses.html --from-file hoses.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	flags := importCmd.Flags()
	flags.BoolVar(&flagAll, "all", false, "Import every accessories page discovered from each URL")
	flags.StringVar(&flagFromFile, "from-file", "", "Read the page HTML from a file instead of fetching the URL")
	flags.BoolVar(&flagNoRobots, "no-robots", false, "Ignore robots.txt during discovery")

	flags.String("format", "markdown", "Output format: markdown, html, json, yaml or pdf")
	flags.String("output_dir", "", "Output directory (default: current directory)")
	flags.String("data-host", "", "Base URL of the product data sheets")
	flags.String("path-filter", "/accessories/", "Path fragment of accessories pages (with --all)")
	flags.String("user-agent", "", "User-Agent header for requests")
	flags.Duration("timeout", 30*time.Second, "HTTP request timeout")
	flags.Duration("interval", time.Second, "Minimum delay between requests to the same host")
	flags.Int("max-pages", 100, "Crawl budget per start URL (with --all)")

	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("output_dir", flags.Lookup("output_dir"))
	_ = viper.BindPFlag("data_host", flags.Lookup("data-host"))
	_ = viper.BindPFlag("path_filter", flags.Lookup("path-filter"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("interval", flags.Lookup("interval"))
	_ = viper.BindPFlag("max_pages", flags.Lookup("max-pages"))
}

func runImport(cmd *cobra.Command, args []string) error {
	if flagNoRobots {
		viper.Set("respect_robots", false)
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	for _, rawURL := range args {
		if err := validateURL(rawURL); err != nil {
			return err
		}
	}
	if flagFromFile != "" && (flagAll || len(args) != 1) {
		return errors.New("--from-file takes exactly one URL and cannot be combined with --all")
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	urls := args
	if flagFromFile != "" {
		p.fetcher = fileFetcher(flagFromFile)
	} else if flagAll {
		urls, err = discover(ctx, cfg, p.fetcher, args)
		if err != nil {
			return err
		}
	}

	return p.importPages(ctx, urls)
}

// discover expands every start URL into the accessories pages found from it.
func discover(ctx context.Context, cfg *config.Config, fetcher core.Fetcher, starts []string) ([]string, error) {
	opts := crawl.Options{
		PathFilter: cfg.PathFilter,
		MaxPages:   cfg.MaxPages,
	}
	if cfg.RespectRobots {
		agent := cfg.UserAgent
		if hf, ok := fetcher.(*fetch.HTTPFetcher); ok {
			agent = hf.UserAgent()
		}
		opts.Robots = crawl.NewRobots(agent)
	}

	seen := make(map[string]bool)
	var urls []string
	for _, start := range starts {
		logger.Info("discovering pages", "url", start)
		found, err := crawl.DiscoverAll(ctx, start, fetcher, opts)
		if err != nil {
			return nil, fmt.Errorf("discovering pages from %s: %w", start, err)
		}
		for _, u := range found {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	logger.Info("discovery finished", "pages", len(urls))
	return urls, nil
}

// pipeline holds the stages every page goes through.
type pipeline struct {
	fetcher     core.Fetcher
	extractor   core.Extractor
	transformer core.Transformer
	renderer    core.Renderer
	writer      *output.Writer
	now         func() time.Time
}

func newPipeline(cfg *config.Config) (*pipeline, error) {
	renderer, err := selectRenderer(cfg.Format)
	if err != nil {
		return nil, err
	}
	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}
	return &pipeline{
		fetcher: fetch.New(fetch.Options{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
			Interval:  cfg.Interval,
		}),
		extractor:   extract.New(),
		transformer: accessories.New(cfg.DataHost),
		renderer:    renderer,
		writer:      writer,
		now:         time.Now,
	}, nil
}

// importPages imports every URL in turn. A failing page is logged and
// skipped; the returned error reports how many pages failed.
func (p *pipeline) importPages(ctx context.Context, urls []string) error {
	var failed int
	for i, pageURL := range urls {
		log := logger.With("url", pageURL, "page", fmt.Sprintf("%d/%d", i+1, len(urls)))

		path, err := p.importPage(ctx, pageURL)
		if err != nil {
			log.Error("import failed", "error", err)
			failed++
			continue
		}
		log.Info("written", "file", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d pages failed", failed, len(urls))
	}
	return nil
}

// importPage runs a single URL through the full pipeline and returns the
// written file path.
func (p *pipeline) importPage(ctx context.Context, pageURL string) (string, error) {
	// 1. Fetch
	result, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}

	// 2. Strip noise
	cleaned, err := p.extractor.Extract(result.HTML)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	// 3. Transform into import blocks
	root, err := p.transformer.Transform(doc, pageURL)
	if err != nil {
		return "", fmt.Errorf("transform: %w", err)
	}
	docPath, err := p.transformer.GeneratePath(pageURL)
	if err != nil {
		return "", fmt.Errorf("generate path: %w", err)
	}
	body, err := blocks.Render(root)
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}

	// 4. Normalize to Markdown
	u, _ := url.Parse(pageURL)
	markdown, err := normalize.New(u.Scheme + "://" + u.Host).Normalize(body)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	meta := blocks.ReadMetadata(doc, pageURL)
	document := core.Document{
		Metadata: core.PageMetadata{
			URL:        pageURL,
			Domain:     u.Host,
			Path:       docPath,
			Title:      meta.Title,
			Language:   pageLanguage(doc),
			ImportedAt: p.now().UTC().Format(time.RFC3339),
		},
		HTML:     body,
		Markdown: markdown,
		Blocks:   blocks.Collect(root),
	}

	// 5. Render and write
	data, err := p.renderer.Render(document)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return p.writer.Write(docPath, data, p.renderer.Extension())
}

// pageLanguage reads the lang attribute of the <html> element.
func pageLanguage(doc *goquery.Document) string {
	if lang, ok := doc.Find("html").First().Attr("lang"); ok && strings.TrimSpace(lang) != "" {
		return strings.TrimSpace(lang)
	}
	return "en"
}

// fileFetcher serves the same local HTML file for any URL.
type fileFetcher string

func (f fileFetcher) Fetch(_ context.Context, rawURL string) (*core.FetchResult, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, err
	}
	return &core.FetchResult{URL: rawURL, StatusCode: 200, HTML: string(data)}, nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}
	return nil
}

// selectRenderer creates the Renderer for format.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case "markdown", "":
		return render.NewMarkdownRenderer(), nil
	case "html":
		return render.NewHTMLRenderer(), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "yaml":
		return render.NewYAMLRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
