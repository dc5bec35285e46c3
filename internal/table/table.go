// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table loads tabular input files into memory and writes result
// tables back out. CSV and xlsx workbooks are supported; the format is
// chosen by file extension.
package table

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMissingColumn is wrapped by errors for a column the table lacks.
var ErrMissingColumn = errors.New("missing column")

// ErrNoHeader is wrapped by errors for an input without a header row.
var ErrNoHeader = errors.New("no header row")

// ErrExtraFields is wrapped by errors for a data row wider than the header.
// Short rows are padded instead.
var ErrExtraFields = errors.New("more fields than header")

// LoadError reports an input file that could not be loaded. It is fatal:
// callers abort before any lookup runs.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Table is an ordered in-memory table. Every row has exactly len(Header)
// cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New returns a table with the given header and no rows.
func New(header ...string) *Table {
	return &Table{Header: append([]string(nil), header...)}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// AddRow appends a row, padding or truncating it to the header width.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, fit(cells, len(t.Header)))
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrMissingColumn, name)
}

// Column returns the named column's values in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// AppendColumn adds a column on the right. values is aligned by row index
// and must have exactly one entry per row.
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// SetColumn replaces the named column's values, or appends the column when
// the table does not have it yet.
func (t *Table) SetColumn(name string, values []string) error {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return t.AppendColumn(name, values)
	}
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	for i := range t.Rows {
		t.Rows[i][idx] = values[i]
	}
	return nil
}

// UniqueInOrder returns values with duplicates and blank entries removed,
// keeping the order of first occurrence. Surrounding whitespace is trimmed.
func UniqueInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// IsSheet reports whether path names a spreadsheet workbook.
func IsSheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	default:
		return false
	}
}

// Load reads path as a workbook or CSV depending on its extension and
// checks that every required column is present. sheet is ignored for CSV.
func Load(path, sheet string, required ...string) (*Table, error) {
	if IsSheet(path) {
		return LoadSheet(path, sheet, required...)
	}
	return LoadCSV(path, required...)
}

// Write saves t to path as a workbook or CSV depending on its extension.
func Write(path, sheet string, t *Table) error {
	if IsSheet(path) {
		return WriteSheet(path, sheet, t)
	}
	return WriteCSV(path, t)
}

// build turns raw records (header first) into a Table and validates the
// required columns.
func build(path string, records [][]string, required []string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoHeader}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	t := New(header...)
	for i, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("row %d has %d fields, header has %d: %w",
				i+1, len(rec), len(header), ErrExtraFields)}
		}
		t.AddRow(rec...)
	}

	for _, col := range required {
		if _, err := t.ColumnIndex(col); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	}
	return t, nil
}

func fit(cells []string, width int) []string {
	row := make([]string, width)
	copy(row, cells)
	return row
}
