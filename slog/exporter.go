package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bizlist"
)

// Ensure LoggingExporter implements bizlist.Exporter.
var _ bizlist.Exporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an Exporter, warns when there is nothing to export
// and logs every artifact written.
type LoggingExporter struct {
	next   bizlist.Exporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next bizlist.Exporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// Export delegates to the wrapped exporter.
func (e *LoggingExporter) Export(ctx context.Context, records []*bizlist.Record, basename string, formats []bizlist.Format) (paths []string, err error) {
	if len(records) == 0 {
		e.logger.Warn("no records to export", "basename", basename)
		return e.next.Export(ctx, records, basename, formats)
	}

	defer func(begin time.Time) {
		for _, p := range paths {
			e.logger.Info("exported", "path", p, "records", len(records))
		}
		if err != nil {
			e.logger.Error("export failed", "basename", basename, "duration", time.Since(begin), "err", err)
		}
	}(time.Now())
	return e.next.Export(ctx, records, basename, formats)
}
