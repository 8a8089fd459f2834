package slog

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/fwojciec/bizlist"
)

// Ensure LoggingSitemapService implements bizlist.SitemapService.
var _ bizlist.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService and reports how the listing
// filter narrowed the discovered URLs. It applies the filter itself so the
// discarded count is known.
type LoggingSitemapService struct {
	next   bizlist.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next bizlist.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs returns the URLs from next that pass filter. A discovery that
// keeps nothing is logged as a warning, since the run will have no work.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *bizlist.URLFilter) ([]string, error) {
	begin := time.Now()

	all, err := s.next.DiscoverURLs(ctx, baseURL, nil)
	if err != nil {
		s.logger.Error("sitemap discovery failed",
			"site", baseURL,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	kept := make([]string, 0, len(all))
	for _, u := range all {
		if filter.Match(u) {
			kept = append(kept, u)
		}
	}

	attrs := []any{
		"site", baseURL,
		"found", len(all),
		"kept", len(kept),
		"discarded", len(all) - len(kept),
		"duration", time.Since(begin),
	}
	if filter != nil {
		attrs = append(attrs, "include", patterns(filter.Include), "exclude", patterns(filter.Exclude))
	}

	level := slog.LevelInfo
	if len(kept) == 0 {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "sitemap discovery", attrs...)
	return kept, nil
}

func patterns(res []*regexp.Regexp) []string {
	out := make([]string, len(res))
	for i, re := range res {
		out[i] = re.String()
	}
	return out
}
