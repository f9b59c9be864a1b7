// Package spreadsheet extracts header-mapped rows from uploaded
// inventory files. It is deliberately dumb: no validation beyond
// "the file is readable", every cell comes back as a string keyed by
// its column header.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by header name. Cells missing from
// a short row are simply absent from the map.
type Row map[string]string

// Get returns the trimmed cell value for a header, empty when absent.
func (r Row) Get(header string) string {
	return strings.TrimSpace(r[header])
}

// ErrNoHeader is returned when the file has no header row to map by.
var ErrNoHeader = errors.New("spreadsheet: missing header row")

// Parse reads rows from an uploaded file, dispatching on the file
// extension: .xlsx via excelize, .csv via encoding/csv.
func Parse(r io.Reader, filename string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(r)
	default:
		return parseXLSX(r)
	}
}

func parseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, ErrNoHeader
	}
	return mapRows(cells[0], cells[1:]), nil
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, validation happens later

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	return mapRows(records[0], records[1:]), nil
}

func mapRows(header []string, records [][]string) []Row {
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}
	return rows
}
