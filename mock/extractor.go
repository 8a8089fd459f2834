package mock

import "github.com/fwojciec/bizlist"

var _ bizlist.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bizlist.Extractor.
type Extractor struct {
	ExtractFn func(html, sourceURL string) (*bizlist.ExtractResult, error)
}

func (e *Extractor) Extract(html, sourceURL string) (*bizlist.ExtractResult, error) {
	return e.ExtractFn(html, sourceURL)
}
