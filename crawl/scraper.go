package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/bizlist"
	"golang.org/x/sync/errgroup"
)

var errDisallowed = errors.New("disallowed by robots.txt")

// Scraper fans fetch-and-extract units out over a bounded pool of workers.
// A failing unit is recorded and never aborts the batch.
type Scraper struct {
	Fetcher   bizlist.Fetcher
	Extractor bizlist.Extractor

	// BaseURL resolves identifiers that are not absolute URLs.
	BaseURL string

	// Delay is slept after every network fetch, on the worker that made it.
	Delay time.Duration

	// RetryDelays are the backoff waits between fetch attempts. Nil means
	// a single attempt.
	RetryDelays []time.Duration
	OnRetry     RetryFunc

	// Optional collaborators.
	RateLimiter bizlist.DomainLimiter
	Robots      bizlist.RobotsPolicy
	Cache       bizlist.PageCache
}

// unitResult is the outcome of one fetch unit.
type unitResult struct {
	identifier string
	record     *bizlist.Record
	incomplete error
	err        error
	skipped    bool
}

// Run processes identifiers with at most concurrency units in flight and
// returns the records in completion order. concurrency is clamped to
// [1, len(identifiers)]. If ctx ends, units that have not started are
// skipped and not counted as attempted.
func (s *Scraper) Run(ctx context.Context, identifiers []string, concurrency int, progress bizlist.ScrapeProgressFunc) *bizlist.ScrapeResult {
	result := &bizlist.ScrapeResult{}
	if len(identifiers) == 0 {
		return result
	}
	concurrency = min(max(concurrency, 1), len(identifiers))

	resultCh := make(chan unitResult, len(identifiers))

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for _, id := range identifiers {
			g.Go(func() error {
				resultCh <- s.process(ctx, id)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	total := len(identifiers)
	for r := range resultCh {
		if r.skipped {
			continue
		}
		result.Attempted++

		if r.err != nil {
			result.Failures = append(result.Failures, bizlist.Failure{Identifier: r.identifier, Err: r.err})
		} else {
			result.Records = append(result.Records, r.record)
		}

		if progress != nil {
			progress(bizlist.ScrapeProgress{
				Identifier: r.identifier,
				Completed:  result.Attempted,
				Total:      total,
				Error:      r.err,
				Incomplete: r.incomplete,
			})
		}
	}

	return result
}

// process runs one fetch unit. Panics are recovered and attributed to the
// step that raised them.
func (s *Scraper) process(ctx context.Context, identifier string) (r unitResult) {
	r.identifier = identifier
	if ctx.Err() != nil {
		r.skipped = true
		return r
	}

	code := bizlist.EFETCH
	defer func() {
		if p := recover(); p != nil {
			r.record = nil
			r.err = bizlist.Errorf(code, "%s: panic: %v", identifier, p)
		}
	}()

	target := bizlist.ResolveURL(s.BaseURL, identifier)
	html, err := s.fetch(ctx, target)
	if err != nil {
		r.err = bizlist.Errorf(bizlist.EFETCH, "%s: %v", identifier, err)
		return r
	}

	code = bizlist.EEXTRACT
	res, err := s.Extractor.Extract(html, identifier)
	switch {
	case err != nil && bizlist.ErrorCode(err) == bizlist.EEXTRACT:
		r.err = err
	case err != nil:
		r.err = bizlist.Errorf(bizlist.EEXTRACT, "%s: %v", identifier, err)
	case res == nil || res.Record == nil:
		r.err = bizlist.Errorf(bizlist.EEXTRACT, "%s: no record produced", identifier)
	default:
		r.record = res.Record
		r.incomplete = res.Incomplete
	}
	return r
}

// fetch returns the markup for target, consulting robots.txt and the page
// cache before going to the network.
func (s *Scraper) fetch(ctx context.Context, target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q", target)
	}

	if s.Robots != nil {
		allowed, err := s.Robots.Allowed(ctx, target)
		if err != nil {
			return "", fmt.Errorf("robots.txt: %w", err)
		}
		if !allowed {
			return "", errDisallowed
		}
	}

	if s.Cache != nil {
		if html, ok, err := s.Cache.Get(ctx, target); err == nil && ok {
			return html, nil
		}
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	html, err := FetchWithRetry(ctx, target, s.Fetcher.Fetch, s.RetryDelays, s.OnRetry)
	if s.Delay > 0 {
		_ = sleep(ctx, s.Delay)
	}
	if err != nil {
		return "", err
	}

	// Cache write failures do not fail the unit.
	if s.Cache != nil {
		_ = s.Cache.Put(ctx, target, html)
	}
	return html, nil
}
