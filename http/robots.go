package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/bizlist"
	"github.com/temoto/robotstxt"
)

var _ bizlist.RobotsPolicy = (*RobotsChecker)(nil)

// RobotsChecker answers robots.txt questions for a user agent, fetching each
// host's robots.txt once. A robots.txt that cannot be retrieved within the
// timeout allows everything.
type RobotsChecker struct {
	client    *http.Client
	userAgent string
	agent     string
	timeout   time.Duration

	mu    sync.Mutex
	hosts map[string]*robotsEntry
}

// robotsEntry is filled in once; done is closed when data is final.
type robotsEntry struct {
	done chan struct{}
	data *robotstxt.RobotsData
}

// NewRobotsChecker creates a RobotsChecker. Rules are matched against the
// product token of userAgent (e.g. "BizBuySellScraper" for
// "BizBuySellScraper/1.0 (+https://bitbash.dev)"). Each robots.txt fetch is
// bounded by the client's timeout, or DefaultFetchTimeout when the client
// has none. A nil client gets a fresh one.
func NewRobotsChecker(client *http.Client, userAgent string) *RobotsChecker {
	if client == nil {
		client = &http.Client{}
	}
	timeout := client.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &RobotsChecker{
		client:    client,
		userAgent: userAgent,
		agent:     productToken(userAgent),
		timeout:   timeout,
		hosts:     make(map[string]*robotsEntry),
	}
}

// Allowed reports whether rawURL may be fetched. It returns ctx's error if
// ctx ends while the host's robots.txt is still loading.
func (c *RobotsChecker) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	data, err := c.rules(ctx, u)
	if err != nil {
		return false, err
	}
	if data == nil {
		return true, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, c.agent), nil
}

// rules returns the parsed robots.txt for u's origin. The first caller for
// an origin starts the fetch on a context detached from its own, so a
// cancelled unit cannot leave the origin cached as unrestricted.
func (c *RobotsChecker) rules(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	origin := u.Scheme + "://" + u.Host

	c.mu.Lock()
	entry, ok := c.hosts[origin]
	if !ok {
		entry = &robotsEntry{done: make(chan struct{})}
		c.hosts[origin] = entry
		fetchCtx := context.WithoutCancel(ctx)
		go func() {
			defer close(entry.done)
			entry.data = c.fetch(fetchCtx, origin+"/robots.txt")
		}()
	}
	c.mu.Unlock()

	select {
	case <-entry.done:
		return entry.data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *RobotsChecker) fetch(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}

// productToken returns the name part of the first user agent token.
func productToken(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return ua
	}
	name, _, _ := strings.Cut(fields[0], "/")
	return name
}
