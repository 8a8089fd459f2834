package mock

import (
	"context"

	"github.com/fwojciec/bizlist"
)

var _ bizlist.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bizlist.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ bizlist.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of bizlist.PageCache.
type PageCache struct {
	GetFn func(ctx context.Context, url string) (string, bool, error)
	PutFn func(ctx context.Context, url, html string) error
}

func (c *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	return c.GetFn(ctx, url)
}

func (c *PageCache) Put(ctx context.Context, url, html string) error {
	return c.PutFn(ctx, url, html)
}

var _ bizlist.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of bizlist.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) (bool, error) {
	return p.AllowedFn(ctx, url)
}

var _ bizlist.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of bizlist.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
