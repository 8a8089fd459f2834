package fs

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/bizlist"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet XLSX exports write to.
const SheetName = "Listings"

// Ensure Exporter implements bizlist.Exporter at compile time.
var _ bizlist.Exporter = (*Exporter)(nil)

// Exporter writes records as JSON, CSV and XLSX files into a directory.
type Exporter struct {
	dir string
}

// NewExporter returns an Exporter writing into dir. The directory is
// created on first export.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes dir/basename.<format> for each requested format. Every
// format is attempted; the paths that were written are returned alongside
// an EEXPORT error describing the ones that were not.
func (e *Exporter) Export(ctx context.Context, records []*bizlist.Record, basename string, formats []bizlist.Format) ([]string, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, bizlist.Errorf(bizlist.EEXPORT, "create output directory: %v", err)
	}

	columns := Columns(records)

	var paths []string
	var errs []error
	for _, format := range compactFormats(formats) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		path := filepath.Join(e.dir, basename+"."+string(format))
		var write func(io.Writer) error
		switch format {
		case bizlist.FormatJSON:
			write = func(w io.Writer) error { return WriteJSON(w, records) }
		case bizlist.FormatCSV:
			write = func(w io.Writer) error { return WriteCSV(w, columns, records) }
		case bizlist.FormatXLSX:
			write = func(w io.Writer) error { return WriteXLSX(w, columns, records) }
		default:
			errs = append(errs, fmt.Errorf("unsupported format %q", format))
			continue
		}

		if err := writeFile(path, write); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		paths = append(paths, path)
	}

	if len(errs) > 0 {
		return paths, bizlist.Errorf(bizlist.EEXPORT, "%v", errors.Join(errs...))
	}
	return paths, nil
}

// Columns returns the sorted union of the records' keys.
func Columns(records []*bizlist.Record) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, r := range records {
		for _, f := range r.Fields() {
			if !seen[f] {
				seen[f] = true
				cols = append(cols, f)
			}
		}
	}
	slices.Sort(cols)
	return cols
}

// WriteJSON writes records as an indented JSON array with keys in schema
// order.
func WriteJSON(w io.Writer, records []*bizlist.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteCSV writes a header row of columns followed by one row per record.
// Absent values are empty cells.
func WriteCSV(w io.Writer, columns []string, records []*bizlist.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			row[i] = r.Get(c).String()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a single sheet laid out like WriteCSV.
// Numbers are stored as numeric cells and absent values are left blank.
func WriteXLSX(w io.Writer, columns []string, records []*bizlist.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for n, r := range records {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = cellValue(r.Get(c))
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	return f.Write(w)
}

func cellValue(v bizlist.Value) any {
	switch v.Kind() {
	case bizlist.KindText:
		s, _ := v.Text()
		return s
	case bizlist.KindNumber:
		f, _ := v.Number()
		return f
	case bizlist.KindInteger:
		n, _ := v.Integer()
		return n
	default:
		return nil
	}
}

// compactFormats drops repeated formats, keeping the first occurrence.
func compactFormats(formats []bizlist.Format) []bizlist.Format {
	var out []bizlist.Format
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// writeFile writes to a temporary file beside path and renames it into
// place, so a failed export never leaves a truncated artifact behind.
func writeFile(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
