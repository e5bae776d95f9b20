// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests against the source site, pacing requests
// per host so a batch import does not hammer it.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gaurav-prasanna/accimport/core"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "accimport/1.0 (+https://github.com/gaurav-prasanna/accimport)"
)

// Options configures an HTTPFetcher. Zero values select defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Interval is the minimum delay between requests to the same host.
	// Zero disables pacing.
	Interval time.Duration
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	interval  time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		interval:  opts.Interval,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// UserAgent returns the User-Agent header sent with every request.
func (f *HTTPFetcher) UserAgent() string {
	return f.userAgent
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	if err := f.wait(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

// wait blocks until the host of rawURL may be requested again.
func (f *HTTPFetcher) wait(ctx context.Context, rawURL string) error {
	if f.interval <= 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing URL: %w", err)
	}

	f.mu.Lock()
	limiter, ok := f.limiters[u.Host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(f.interval), 1)
		f.limiters[u.Host] = limiter
	}
	f.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for %s: %w", u.Host, err)
	}
	return nil
}
