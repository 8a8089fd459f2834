package bizlist

import (
	"context"
	"strings"
)

// Format is an export file format.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatCSV, FormatXLSX}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown output format %q", s)
}

// Exporter persists extracted records.
type Exporter interface {
	// Export writes one artifact per format named basename.<format> and
	// returns the written paths. An empty record list writes nothing.
	// Failures are reported with code EEXPORT after every format has been
	// attempted.
	Export(ctx context.Context, records []*Record, basename string, formats []Format) ([]string, error)
}
