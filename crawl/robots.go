package crawl

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gaurav-prasanna/accimport/core/logger"
	"github.com/temoto/robotstxt"
)

// Robots answers robots.txt questions for one user agent, fetching each
// host's robots.txt once.
type Robots struct {
	agent  string
	client *http.Client

	mu     sync.Mutex
	groups map[string]*robotstxt.Group // nil entry: everything allowed
}

// NewRobots creates a Robots checker for agent.
func NewRobots(agent string) *Robots {
	return &Robots{
		agent:  agent,
		client: &http.Client{Timeout: 15 * time.Second},
		groups: make(map[string]*robotstxt.Group),
	}
}

// Allowed reports whether agent may fetch rawURL. Hosts whose robots.txt
// cannot be read are treated as allowing everything.
func (r *Robots) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	r.mu.Lock()
	group, ok := r.groups[u.Host]
	r.mu.Unlock()
	if !ok {
		group = r.load(ctx, u)
		r.mu.Lock()
		r.groups[u.Host] = group
		r.mu.Unlock()
	}

	if group == nil {
		return true
	}
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	return group.Test(p)
}

func (r *Robots) load(ctx context.Context, u *url.URL) *robotstxt.Group {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.agent)

	resp, err := r.client.Do(req)
	if err != nil {
		logger.Debug("robots.txt unavailable", "url", robotsURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		logger.Debug("robots.txt unreadable", "url", robotsURL, "error", err)
		return nil
	}
	return data.FindGroup(r.agent)
}
