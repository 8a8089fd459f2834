package bizlist

import "context"

// Fetcher retrieves the markup of a listing page.
type Fetcher interface {
	// Fetch returns the raw document for an absolute URL. Network errors,
	// timeouts and non-2xx responses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// PageCache stores fetched markup by URL so repeated runs can skip the
// network.
type PageCache interface {
	// Get returns the cached markup for url and whether it was found.
	Get(ctx context.Context, url string) (html string, ok bool, err error)

	// Put stores markup for url, replacing any earlier entry.
	Put(ctx context.Context, url, html string) error
}

// RobotsPolicy decides whether a URL may be fetched.
type RobotsPolicy interface {
	Allowed(ctx context.Context, url string) (bool, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
