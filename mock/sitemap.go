package mock

import (
	"context"

	"github.com/fwojciec/bizlist"
)

var _ bizlist.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of bizlist.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *bizlist.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *bizlist.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ bizlist.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of bizlist.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, source string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, source string) ([]string, error) {
	return s.DiscoverFn(ctx, source)
}
