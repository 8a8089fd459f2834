// Package slog provides log/slog decorators for the bizlist collaborator
// interfaces.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/fwojciec/bizlist"
)

// Ensure LoggingFetcher implements bizlist.Fetcher.
var _ bizlist.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher. Successful fetches are logged at debug
// level with the page size; failures at warn level with their
// classification.
type LoggingFetcher struct {
	next   bizlist.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next bizlist.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			level = slog.LevelWarn
			attrs = append(attrs, "code", fetchCode(err), "timeout", isTimeout(err), "err", err)
		} else {
			attrs = append(attrs, "bytes", len(html))
		}
		f.logger.Log(context.WithoutCancel(ctx), level, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// fetchCode classifies a fetch error. Errors without an application code
// are network or status failures, which the orchestrator reports as EFETCH.
func fetchCode(err error) string {
	var e *bizlist.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return bizlist.EFETCH
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
