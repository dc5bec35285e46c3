// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWorkbook(t *testing.T, dir, name, sheet string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// --- Loader ---

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.csv", "UniProt_ID,Mutation\nP69905,A12V\nBADID,\nP69905,K8E\n")

	tbl, err := LoadCSV(path, "UniProt_ID")
	require.NoError(t, err)

	assert.Equal(t, []string{"UniProt_ID", "Mutation"}, tbl.Header)
	assert.Equal(t, 3, tbl.Len())

	ids, err := tbl.Column("UniProt_ID")
	require.NoError(t, err)
	// Duplicates and order are preserved.
	assert.Equal(t, []string{"P69905", "BADID", "P69905"}, ids)
}

func TestLoadCSV_ShortRowsArePadded(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.csv", "\ufeffUniProt_ID,Score,Note\nP69905\nQ9Y6K9,0.5,ok\n")

	tbl, err := LoadCSV(path, "UniProt_ID")
	require.NoError(t, err)

	want := [][]string{
		{"P69905", "", ""},
		{"Q9Y6K9", "0.5", "ok"},
	}
	if diff := cmp.Diff(want, tbl.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "UniProt_ID", tbl.Header[0], "byte order mark should be stripped")
}

func TestLoadCSV_WideRowIsLoadError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.csv", "UniProt_ID,Score\nP69905,1\nQ9Y6K9,2,keepme\n")

	tbl, err := LoadCSV(path, "UniProt_ID")
	assert.Nil(t, tbl)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.Path)
	assert.ErrorIs(t, err, ErrExtraFields)
	assert.Contains(t, err.Error(), "row 2 has 3 fields, header has 2")
}

func TestLoadCSV_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(dir, "nope.csv"), os.ErrNotExist},
		{"missing column", writeFile(t, dir, "cols.csv", "Gene,Other\nBRCA1,x\n"), ErrMissingColumn},
		{"empty file", writeFile(t, dir, "empty.csv", ""), ErrNoHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := LoadCSV(tt.path, "UniProt_ID")
			require.Error(t, err)
			assert.Nil(t, tbl)
			assert.ErrorIs(t, err, tt.wantErr)

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.path, le.Path)
		})
	}
}

func TestLoadSheet(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "genes.xlsx", "Cterminus", [][]string{
		{"Gene", "Site"},
		{"BRCA1", "S988"},
		{"BRCA1", "S1524"},
		{"TP53"},
	})

	tbl, err := LoadSheet(path, "", "Gene")
	require.NoError(t, err)

	genes, err := tbl.Column("Gene")
	require.NoError(t, err)
	assert.Equal(t, []string{"BRCA1", "BRCA1", "TP53"}, genes)
	assert.Equal(t, []string{"TP53", ""}, tbl.Rows[2])

	_, err = LoadSheet(path, "Missing", "Gene")
	var le *LoadError
	assert.ErrorAs(t, err, &le)

	_, err = LoadSheet(path, "Cterminus", "Protein")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadSheet_CellsPastHeaderAreKept(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "genes.xlsx", "Sheet1", [][]string{
		{"Gene"},
		{"BRCA1", "see notes"},
	})

	tbl, err := LoadSheet(path, "", "Gene")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gene", ""}, tbl.Header)
	assert.Equal(t, [][]string{{"BRCA1", "see notes"}}, tbl.Rows)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "a.csv", "Gene\nTP53\n")
	xlsxPath := writeWorkbook(t, dir, "a.xlsx", "Sheet1", [][]string{{"Gene"}, {"TP53"}})

	for _, path := range []string{csvPath, xlsxPath} {
		tbl, err := Load(path, "", "Gene")
		require.NoError(t, err, path)
		assert.Equal(t, [][]string{{"TP53"}}, tbl.Rows, path)
	}
	assert.True(t, IsSheet("X.XLSX"))
	assert.False(t, IsSheet("x.csv"))
}

// --- Table operations ---

func TestAppendColumn(t *testing.T) {
	tbl := New("UniProt_ID")
	tbl.AddRow("P69905")
	tbl.AddRow("BADID")

	require.NoError(t, tbl.AppendColumn("Entry_Number", []string{"P69905", "No match found"}))
	assert.Equal(t, []string{"UniProt_ID", "Entry_Number"}, tbl.Header)
	assert.Equal(t, [][]string{{"P69905", "P69905"}, {"BADID", "No match found"}}, tbl.Rows)

	err := tbl.AppendColumn("Short", []string{"only-one"})
	assert.Error(t, err)
	assert.Len(t, tbl.Header, 2, "header unchanged on length mismatch")
}

func TestSetColumn(t *testing.T) {
	tbl := New("UniProt_ID", "Entry_Number")
	tbl.AddRow("P69905", "stale")

	require.NoError(t, tbl.SetColumn("Entry_Number", []string{"P69905"}))
	assert.Equal(t, []string{"UniProt_ID", "Entry_Number"}, tbl.Header)
	assert.Equal(t, [][]string{{"P69905", "P69905"}}, tbl.Rows)

	require.NoError(t, tbl.SetColumn("Note", []string{"x"}))
	assert.Equal(t, []string{"UniProt_ID", "Entry_Number", "Note"}, tbl.Header)

	assert.Error(t, tbl.SetColumn("Entry_Number", nil))
}

func TestUniqueInOrder(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"duplicates keep first position", []string{"BRCA1", "BRCA1", "TP53", "BRCA1"}, []string{"BRCA1", "TP53"}},
		{"blanks skipped", []string{"", "TP53", "  ", "EGFR"}, []string{"TP53", "EGFR"}},
		{"whitespace trimmed", []string{" TP53", "TP53 "}, []string{"TP53"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueInOrder(tt.in))
		})
	}
}

// --- Writer ---

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "updated_file.csv")

	tbl := New("UniProt_ID", "Entry_Number")
	tbl.AddRow("P69905", "P69905")
	tbl.AddRow("BADID", "No match found")
	tbl.AddRow("Q,1", "API Error")

	require.NoError(t, WriteCSV(out, tbl))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "UniProt_ID,Entry_Number\nP69905,P69905\nBADID,No match found\n\"Q,1\",API Error\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestWriteSheet_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pubmed.xlsx")

	tbl := New("Gene", "PubMed IDs")
	tbl.AddRow("BRCA1", `["123","456"]`)
	tbl.AddRow("TP53", `["789"]`)

	require.NoError(t, WriteSheet(out, "", tbl))

	got, err := LoadSheet(out, "", "Gene", "PubMed IDs")
	require.NoError(t, err)
	if diff := cmp.Diff(tbl, got); diff != "" {
		t.Errorf("workbook mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSheet_NamedSheet(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "named.xlsx")

	tbl := New("Gene")
	tbl.AddRow("EGFR")
	require.NoError(t, Write(out, "Results", tbl))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Results"}, f.GetSheetList())
}
