package main

import (
	"context"

	"github.com/fwojciec/bizlist"
)

// Compile-time interface verification.
var _ bizlist.URLSource = (*SitemapSource)(nil)

// SitemapSource implements bizlist.URLSource over a site's sitemaps.
type SitemapSource struct {
	Sitemaps bizlist.SitemapService
	Filter   *bizlist.URLFilter
}

// Discover returns the filtered sitemap URLs of the site at baseURL.
func (s *SitemapSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.Sitemaps.DiscoverURLs(ctx, baseURL, s.Filter)
}
