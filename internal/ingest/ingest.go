// Package ingest loads uploaded survey spreadsheets into a raw header+rows
// table and computes upload preview statistics.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a raw tabular record set: first spreadsheet row as header, every
// following row as cells. Cells are kept as strings; typed coercion happens
// downstream in the cleaner.
type Table struct {
	Columns []string
	Rows    [][]any
}

// ErrUnsupportedFormat is returned for file extensions the loader does not
// handle.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Load reads a spreadsheet by extension: .xlsx/.xlsm via excelize, .csv via
// the standard csv reader.
func Load(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx":
		return loadExcel(path)
	case ".csv":
		return loadCSV(path)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func loadExcel(path string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromStringRows(rows), nil
}

func loadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	return fromStringRows(rows), nil
}

// fromStringRows takes the first non-empty row as header and keeps the rest,
// skipping rows that are entirely empty.
func fromStringRows(rows [][]string) Table {
	var table Table
	for _, row := range rows {
		if emptyRow(row) {
			continue
		}
		if table.Columns == nil {
			table.Columns = append([]string(nil), row...)
			continue
		}
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.Rows = append(table.Rows, cells)
	}
	if table.Columns == nil {
		table.Columns = []string{}
	}
	if table.Rows == nil {
		table.Rows = [][]any{}
	}
	return table
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Preview is the upload summary returned right after ingestion.
type Preview struct {
	TotalRows     int              `json:"total_rows"`
	Columns       []string         `json:"columns"`
	MissingValues map[string]int   `json:"missing_values"`
	Head          []map[string]any `json:"preview"`
}

const previewHeadRows = 5

// Summarize computes row counts, per-column missing-cell counts, and a short
// head sample of the table.
func Summarize(t Table) Preview {
	missing := make(map[string]int, len(t.Columns))
	for _, col := range t.Columns {
		missing[col] = 0
	}
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			if i >= len(row) || isBlank(row[i]) {
				missing[col]++
			}
		}
	}

	head := make([]map[string]any, 0, previewHeadRows)
	for _, row := range t.Rows {
		if len(head) == previewHeadRows {
			break
		}
		entry := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) && !isBlank(row[i]) {
				entry[col] = row[i]
			}
		}
		head = append(head, entry)
	}

	return Preview{
		TotalRows:     len(t.Rows),
		Columns:       t.Columns,
		MissingValues: missing,
		Head:          head,
	}
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return v == nil || (ok && strings.TrimSpace(s) == "")
}
