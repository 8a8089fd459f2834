// Package gocache keeps fetched pages in process memory, optionally in front
// of a persistent bizlist.PageCache.
package gocache

import (
	"context"
	"time"

	"github.com/fwojciec/bizlist"
	gocache "github.com/patrickmn/go-cache"
)

// Ensure PageCache implements bizlist.PageCache at compile time.
var _ bizlist.PageCache = (*PageCache)(nil)

const (
	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = time.Minute

	// MaxMemoryTTL caps how long a page stays in memory. Longer-lived
	// copies belong in next.
	MaxMemoryTTL = 5 * time.Minute
)

// PageCache is an in-memory page cache. Misses fall through to next, and
// pages found there are promoted into memory.
type PageCache struct {
	cache *gocache.Cache
	next  bizlist.PageCache
}

// NewPageCache returns a memory cache whose entries live for ttl, capped at
// MaxMemoryTTL. A non-positive ttl means MaxMemoryTTL. next may be nil.
func NewPageCache(ttl time.Duration, next bizlist.PageCache) *PageCache {
	if ttl <= 0 || ttl > MaxMemoryTTL {
		ttl = MaxMemoryTTL
	}
	return &PageCache{
		cache: gocache.New(ttl, DefaultCleanupInterval),
		next:  next,
	}
}

// Get returns the cached page for url.
func (c *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	if v, ok := c.cache.Get(url); ok {
		return v.(string), true, nil
	}
	if c.next == nil {
		return "", false, nil
	}

	html, ok, err := c.next.Get(ctx, url)
	if err != nil || !ok {
		return "", false, err
	}
	c.cache.SetDefault(url, html)
	return html, true, nil
}

// Put stores html in memory and in next.
func (c *PageCache) Put(ctx context.Context, url, html string) error {
	c.cache.SetDefault(url, html)
	if c.next == nil {
		return nil
	}
	return c.next.Put(ctx, url, html)
}

// Len returns the number of pages held in memory.
func (c *PageCache) Len() int {
	return c.cache.ItemCount()
}
