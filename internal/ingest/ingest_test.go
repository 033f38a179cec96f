package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test.csv", "id,name,value\n1,Alice,10\n2,Bob,20\n")

	ds, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "value"}, ds.Columns())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []dataset.Value{int64(1), "Alice", int64(10)}, ds.Row(0))
	assert.Equal(t, []dataset.Value{int64(2), "Bob", int64(20)}, ds.Row(1))
}

func TestLoadCSV_MissingCells(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gaps.csv", "id,name\n1,\n2,Bob\n")

	ds, err := LoadCSV(path)
	require.NoError(t, err)

	v, ok := ds.Cell(0, "name")
	require.True(t, ok)
	assert.Nil(t, v, "empty cell should be missing, not empty string")
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv", "")

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyInput))
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "header.csv", "id,name\n")

	ds, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, []string{"id", "name"}, ds.Columns())
}

func TestLoadCSV_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.csv", "id,name\n1,\"unterminated\n")

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestLoadJSON_ObjectWithRecordList(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "events.json",
		`{"events": [{"id": 1, "name": "Alice"}, {"id": 2, "name": "Bob"}]}`)

	ds, err := LoadJSON(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, ds.Columns())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []dataset.Value{int64(1), "Alice"}, ds.Row(0))
}

func TestLoadJSON_BareList(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "list.json", `[{"id": 1}, {"id": 2}]`)

	ds, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestLoadJSON_ColumnsAreKeyUnion(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "union.json",
		`[{"id": 1, "name": "Storytime"}, {"id": 2, "venue": "Central"}]`)

	ds, err := LoadJSON(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "venue"}, ds.Columns())

	v, ok := ds.Cell(0, "venue")
	require.True(t, ok)
	assert.Nil(t, v, "absent key should be a missing cell")

	v, ok = ds.Cell(1, "name")
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestLoadJSON_FileNotFound(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestLoadJSON_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", "{invalid: json}")

	_, err := LoadJSON(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestLoadJSON_NoRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "none.json", `{"events": []}`)

	_, err := LoadJSON(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyInput))
}

func writeWorkbook(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}
	path := filepath.Join(dir, "catalogue.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoadExcel_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, [][]any{
		{"ISBN", "title"},
		{"978-3-16-148410-0", "Go Basics"},
		{"0306406152", "Data Cleaning"},
	})

	ds, err := LoadExcel(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ISBN", "title"}, ds.Columns())
	assert.Equal(t, 2, ds.Len())

	v, ok := ds.Cell(0, "title")
	require.True(t, ok)
	assert.Equal(t, "Go Basics", v)
}

func TestLoadExcel_FileNotFound(t *testing.T) {
	_, err := LoadExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestLoadExcel_NotAWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fake.xlsx", "this is not a zip archive")

	_, err := LoadExcel(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestLoadExcel_EmptySheet(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	path := filepath.Join(dir, "empty.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadExcel(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyInput))
}
