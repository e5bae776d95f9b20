package crawl

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are file extensions to skip during crawling.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true,
	".css": true, ".js": true, ".json": true,
	".woff": true, ".woff2": true, ".ttf": true,
	".mp4": true, ".webm": true,
	".zip": true, ".pdf": true, ".xls": true, ".xlsx": true,
}

// Rules selects the pages a batch import visits and imports.
type Rules struct {
	Domain string
	// PathFilter must occur in the path of an importable page.
	PathFilter string
}

// Follow reports whether rawURL may be crawled for more links.
func (r Rules) Follow(rawURL string) bool {
	return IsSameDomain(rawURL, r.Domain) && !IsStaticAsset(rawURL)
}

// Import reports whether rawURL is an accessories page to import. The
// accessories index itself (a path ending in the filter) is not a page.
func (r Rules) Import(rawURL string) bool {
	if !r.Follow(rawURL) {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(parsed.Path, "/")
	idx := strings.Index(p+"/", r.PathFilter)
	return idx >= 0 && len(p+"/") > idx+len(r.PathFilter)
}

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// NormalizeURL strips queries, fragments and trailing slashes for
// deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	parsed.RawQuery = ""

	// Remove trailing slash (but keep root "/").
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}
