package fs_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/fwojciec/bizlist"
	"github.com/fwojciec/bizlist/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testRecords() []*bizlist.Record {
	s := bizlist.DefaultSchema()
	return []*bizlist.Record{
		s.Merge(map[string]bizlist.Value{
			bizlist.FieldTitle:      bizlist.Text("Bakery & Café"),
			bizlist.FieldPrice:      bizlist.Number(250000),
			bizlist.FieldEmployees:  bizlist.Integer(12),
			bizlist.FieldLinkToDeal: bizlist.Text("https://example.com/1"),
		}),
		s.Merge(map[string]bizlist.Value{
			bizlist.FieldTitle:      bizlist.Text("Deli"),
			bizlist.FieldLinkToDeal: bizlist.Text("https://example.com/2"),
		}),
	}
}

func TestColumns(t *testing.T) {
	t.Parallel()

	cols := fs.Columns(testRecords())

	assert.Len(t, cols, 28)
	assert.True(t, slices.IsSorted(cols))
	assert.Equal(t, "BUILDING SF", cols[0])
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes every requested format", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "out")
		e := fs.NewExporter(dir)

		paths, err := e.Export(context.Background(), testRecords(), "listings",
			[]bizlist.Format{bizlist.FormatJSON, bizlist.FormatCSV, bizlist.FormatXLSX, bizlist.FormatJSON})

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "listings.json"),
			filepath.Join(dir, "listings.csv"),
			filepath.Join(dir, "listings.xlsx"),
		}, paths)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 3, "no temporary files are left behind")
	})

	t.Run("empty record list writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		paths, err := fs.NewExporter(dir).Export(context.Background(), nil, "listings", bizlist.Formats)

		require.NoError(t, err)
		assert.Empty(t, paths)
		_, err = os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unwritable directory is an export failure", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))

		_, err := fs.NewExporter(filepath.Join(file, "out")).Export(context.Background(), testRecords(), "listings", bizlist.Formats)

		assert.Equal(t, bizlist.EEXPORT, bizlist.ErrorCode(err))
	})

	t.Run("unknown format fails alone", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths, err := fs.NewExporter(dir).Export(context.Background(), testRecords(), "listings",
			[]bizlist.Format{"parquet", bizlist.FormatCSV})

		assert.Equal(t, bizlist.EEXPORT, bizlist.ErrorCode(err))
		assert.Contains(t, bizlist.ErrorMessage(err), "parquet")
		assert.Equal(t, []string{filepath.Join(dir, "listings.csv")}, paths)
	})
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, fs.WriteJSON(&buf, testRecords()))

	assert.Contains(t, buf.String(), `"TITLE": "Bakery & Café"`)
	assert.Contains(t, buf.String(), `"FF&E": null`)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Len(t, decoded[0], 28)
	assert.InDelta(t, 250000.0, decoded[0][bizlist.FieldPrice], 1e-9)
	assert.InDelta(t, 12.0, decoded[0][bizlist.FieldEmployees], 1e-9)
	assert.Nil(t, decoded[1][bizlist.FieldPrice])
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	records := testRecords()
	cols := fs.Columns(records)

	var buf bytes.Buffer
	require.NoError(t, fs.WriteCSV(&buf, cols, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, cols, rows[0])

	col := func(name string) int { return slices.Index(cols, name) }
	assert.Equal(t, "Bakery & Café", rows[1][col(bizlist.FieldTitle)])
	assert.Equal(t, "250000", rows[1][col(bizlist.FieldPrice)])
	assert.Equal(t, "12", rows[1][col(bizlist.FieldEmployees)])
	assert.Equal(t, "", rows[2][col(bizlist.FieldPrice)])
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	records := testRecords()
	cols := fs.Columns(records)

	var buf bytes.Buffer
	require.NoError(t, fs.WriteXLSX(&buf, cols, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(fs.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, cols, rows[0])

	priceCell, err := excelize.CoordinatesToCellName(slices.Index(cols, bizlist.FieldPrice)+1, 2)
	require.NoError(t, err)
	price, err := f.GetCellValue(fs.SheetName, priceCell)
	require.NoError(t, err)
	assert.Equal(t, "250000", price)

	cellType, err := f.GetCellType(fs.SheetName, priceCell)
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)
}
