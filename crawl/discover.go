// Package crawl provides discovery of accessories pages for batch imports.
// It finds candidate pages via sitemap.xml and falls back to link
// crawling, keeping crawling logic separate from the import pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/accimport/core"
	"github.com/gaurav-prasanna/accimport/core/logger"
)

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// Options tunes discovery.
type Options struct {
	PathFilter string
	MaxPages   int     // crawl budget for link discovery
	Robots     *Robots // nil: robots.txt is not consulted
}

// DiscoverAll finds the accessories pages reachable from baseURL, in
// discovery order. It first tries sitemap.xml, then falls back to link
// crawling.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher, opts Options) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 100
	}
	rules := Rules{Domain: parsed.Host, PathFilter: opts.PathFilter}

	sitemapURLStr := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	urls, err := discoverFromSitemap(ctx, sitemapURLStr, rules)
	if err != nil {
		logger.Debug("sitemap discovery failed", "url", sitemapURLStr, "error", err)
	}
	if len(urls) == 0 {
		urls, err = discoverFromLinks(ctx, baseURL, rules, fetcher, opts)
		if err != nil {
			return nil, err
		}
	}

	return filterAllowed(ctx, urls, opts.Robots), nil
}

// discoverFromSitemap fetches and parses sitemap.xml for importable URLs.
func discoverFromSitemap(ctx context.Context, sitemapURL string, rules Rules) ([]string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var urls []string
	for _, u := range sitemap.URLs {
		loc := NormalizeURL(strings.TrimSpace(u.Loc))
		if rules.Import(loc) && !seen[loc] {
			seen[loc] = true
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

// discoverFromLinks performs BFS crawling and keeps the importable pages.
func discoverFromLinks(ctx context.Context, startURL string, rules Rules, fetcher core.Fetcher, opts Options) ([]string, error) {
	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))

	var pages []string
	for queue.HasNext() && queue.Processed() < opts.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		currentURL := queue.Next()
		if rules.Import(currentURL) {
			pages = append(pages, currentURL)
		}
		if opts.Robots != nil && !opts.Robots.Allowed(ctx, currentURL) {
			continue
		}

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			logger.Debug("crawl fetch failed", "url", currentURL, "error", err)
			continue
		}

		links, err := extractLinks(result.HTML, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if rules.Follow(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return pages, nil
}

func filterAllowed(ctx context.Context, urls []string, robots *Robots) []string {
	if robots == nil {
		return urls
	}
	allowed := urls[:0:0]
	for _, u := range urls {
		if robots.Allowed(ctx, u) {
			allowed = append(allowed, u)
		} else {
			logger.Info("skipping page disallowed by robots.txt", "url", u)
		}
	}
	return allowed
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(href, base)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	// Skip mailto, javascript, etc.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
