// Package rod renders listing pages in headless Chrome for sites that build
// their detail tables client-side.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/bizlist"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 20 * time.Second

// Ensure Fetcher implements bizlist.Fetcher at compile time.
var _ bizlist.Fetcher = (*Fetcher)(nil)

// Fetcher returns the rendered HTML of a page. Fetcher is safe for
// concurrent use; each call opens its own tab.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	userAgent string
	headers   map[string]string
	mgrOpts   []ManagerOption
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each page render.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHeader adds an extra request header to every navigation.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		if f.headers == nil {
			f.headers = make(map[string]string)
		}
		f.headers[key] = value
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.mgrOpts = append(f.mgrOpts, opts...)
	}
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	m, err := NewBrowserManager(f.mgrOpts...)
	if err != nil {
		return nil, bizlist.Errorf(bizlist.EFETCH, "starting browser: %v", err)
	}
	f.manager = m
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the
// serialized document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.manager.Closed() {
		return "", bizlist.Errorf(bizlist.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", err
		}
	}
	if len(f.headers) > 0 {
		kv := make([]string, 0, 2*len(f.headers))
		for k, v := range f.headers {
			kv = append(kv, k, v)
		}
		cleanup, err := page.SetExtraHeaders(kv)
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// LauncherPID returns the browser launcher's process ID.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close terminates the browser. It is safe to call more than once.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
