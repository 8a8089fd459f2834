package mock

import (
	"context"

	"github.com/fwojciec/bizlist"
)

var _ bizlist.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of bizlist.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, records []*bizlist.Record, basename string, formats []bizlist.Format) ([]string, error)
}

func (e *Exporter) Export(ctx context.Context, records []*bizlist.Record, basename string, formats []bizlist.Format) ([]string, error) {
	return e.ExportFn(ctx, records, basename, formats)
}
