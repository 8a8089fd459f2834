// Package http provides net/http implementations of the bizlist fetch
// collaborators: a listing page Fetcher, a robots.txt policy, and sitemap
// discovery.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/bizlist"
)

// Defaults for listing page requests.
const (
	DefaultFetchTimeout = 20 * time.Second
	DefaultUserAgent    = "BizBuySellScraper/1.0 (+https://bitbash.dev)"
	DefaultAccept       = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 16 << 20

// Ensure Fetcher implements bizlist.Fetcher at compile time.
var _ bizlist.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves listing pages with plain HTTP GET requests. It does not
// execute JavaScript. Fetcher is safe for concurrent use; all workers share
// its connection pool.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	header  http.Header
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.header.Set("User-Agent", ua)
	}
}

// WithHeader sets a static header sent with every request.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

// WithClient replaces the underlying client. Its timeout is overridden by
// WithTimeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		header: http.Header{
			"User-Agent": {DefaultUserAgent},
			"Accept":     {DefaultAccept},
		},
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		*client = *f.client
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch GETs url, following redirects, and returns the body. Any non-2xx
// final status is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header = f.header.Clone()

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
