package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bizlist"
)

// Ensure LoggingExtractor implements bizlist.Extractor.
var _ bizlist.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs each document it processes.
type LoggingExtractor struct {
	next   bizlist.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next bizlist.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor. It logs how many fields were
// found and, at warn level, partial extractions.
func (e *LoggingExtractor) Extract(html, sourceURL string) (res *bizlist.ExtractResult, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		attrs := []any{"url", sourceURL, "duration", time.Since(begin)}
		switch {
		case err != nil:
			level = slog.LevelWarn
			attrs = append(attrs, "err", err)
		case res != nil:
			attrs = append(attrs, "fields", populated(res.Record))
			if res.Incomplete != nil {
				level = slog.LevelWarn
				attrs = append(attrs, "incomplete", res.Incomplete)
			}
		}
		e.logger.Log(context.Background(), level, "extract", attrs...)
	}(time.Now())
	return e.next.Extract(html, sourceURL)
}

// populated counts the non-absent fields of r.
func populated(r *bizlist.Record) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, v := range r.Map() {
		if !v.IsAbsent() {
			n++
		}
	}
	return n
}
