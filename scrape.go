package bizlist

import (
	"context"
	"strings"
)

// URLSource produces the listing identifiers for a run.
type URLSource interface {
	Discover(ctx context.Context, source string) ([]string, error)
}

// ResolveURL turns an identifier into an absolute URL. Identifiers that do
// not start with "http" are treated as paths under base.
func ResolveURL(base, identifier string) string {
	if strings.HasPrefix(strings.ToLower(identifier), "http") {
		return identifier
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(identifier, "/")
}

// Failure attributes a failed fetch unit to its identifier. Err carries
// code EFETCH or EEXTRACT.
type Failure struct {
	Identifier string
	Err        error
}

// ScrapeResult aggregates one orchestration run.
type ScrapeResult struct {
	// Records are in completion order.
	Records   []*Record
	Failures  []Failure
	Attempted int
}

// Succeeded returns the number of extracted records.
func (r *ScrapeResult) Succeeded() int { return len(r.Records) }

// Failed returns the number of failed units.
func (r *ScrapeResult) Failed() int { return len(r.Failures) }

// ScrapeProgress reports one finished fetch unit.
type ScrapeProgress struct {
	Identifier string
	Completed  int
	Total      int

	// Error is set when the unit failed.
	Error error

	// Incomplete is set when the unit succeeded with a partial record.
	Incomplete error
}

// ScrapeProgressFunc is called as units finish. Calls are serialized.
type ScrapeProgressFunc func(ScrapeProgress)
