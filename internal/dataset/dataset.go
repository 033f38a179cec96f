// Package dataset defines the in-memory tabular structure every transform
// consumes and produces.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value is a single cell. A nil Value marks a missing cell, which is
// distinct from an empty string or a zero number. Concrete cell types are
// string, int64, float64, bool and time.Time.
type Value = any

// Dataset is an ordered collection of named columns with equal-length rows.
// Transforms never mutate a Dataset in place; each produces a new one.
type Dataset struct {
	columns []string
	rows    [][]Value
}

// New creates an empty dataset with the given column set.
func New(columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{columns: cols}
}

// Columns returns a copy of the column names in order.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// AppendRow adds a row. The row length must match the column count.
func (d *Dataset) AppendRow(row []Value) error {
	if len(row) != len(d.columns) {
		return fmt.Errorf("row has %d cells, dataset has %d columns", len(row), len(d.columns))
	}
	r := make([]Value, len(row))
	copy(r, row)
	d.rows = append(d.rows, r)
	return nil
}

// Row returns a copy of the row at index i.
func (d *Dataset) Row(i int) []Value {
	row := make([]Value, len(d.rows[i]))
	copy(row, d.rows[i])
	return row
}

// Cell returns the value at row i in the named column. The second result is
// false when the column does not exist.
func (d *Dataset) Cell(i int, column string) (Value, bool) {
	idx := d.ColumnIndex(column)
	if idx < 0 {
		return nil, false
	}
	return d.rows[i][idx], true
}

// Column returns a copy of all values in the named column.
func (d *Dataset) Column(name string) ([]Value, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	values := make([]Value, len(d.rows))
	for i, row := range d.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// AddColumn returns a new dataset with an extra column appended. The values
// slice must cover every row.
func (d *Dataset) AddColumn(name string, values []Value) (*Dataset, error) {
	if d.HasColumn(name) {
		return nil, fmt.Errorf("column already exists: %s", name)
	}
	if len(values) != len(d.rows) {
		return nil, fmt.Errorf("column %s has %d values, dataset has %d rows", name, len(values), len(d.rows))
	}
	out := New(append(d.Columns(), name))
	for i, row := range d.rows {
		nr := make([]Value, 0, len(row)+1)
		nr = append(nr, row...)
		nr = append(nr, values[i])
		out.rows = append(out.rows, nr)
	}
	return out, nil
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := New(d.columns)
	for _, row := range d.rows {
		r := make([]Value, len(row))
		copy(r, row)
		out.rows = append(out.rows, r)
	}
	return out
}

// Summary holds shape and quality statistics, computed fresh on demand.
type Summary struct {
	Rows          int
	Columns       int
	MissingCells  int
	DuplicateRows int
}

// Summarize computes row, column, missing-cell and duplicate-row counts.
func (d *Dataset) Summarize() Summary {
	s := Summary{Rows: len(d.rows), Columns: len(d.columns)}
	seen := make(map[string]bool, len(d.rows))
	for _, row := range d.rows {
		for _, v := range row {
			if v == nil {
				s.MissingCells++
			}
		}
		key := RowKey(row, nil)
		if seen[key] {
			s.DuplicateRows++
		} else {
			seen[key] = true
		}
	}
	return s
}

// RowKey builds a comparison key over the given column indexes. A nil
// indexes slice means all cells. Type information is part of the key so that
// int64(1) and "1" stay distinct. Each cell is length-prefixed so a string
// cell containing the separator cannot collide with its neighbors.
func RowKey(row []Value, indexes []int) string {
	var b strings.Builder
	write := func(v Value) {
		if v == nil {
			b.WriteString("\x00|")
			return
		}
		cell := fmt.Sprintf("%T=%v", v, v)
		fmt.Fprintf(&b, "%d:%s|", len(cell), cell)
	}
	if indexes == nil {
		for _, v := range row {
			write(v)
		}
		return b.String()
	}
	for _, idx := range indexes {
		write(row[idx])
	}
	return b.String()
}

// FormatValue renders a cell for delimited-text output. Missing cells render
// as the empty string, dates as ISO YYYY-MM-DD.
func FormatValue(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Records renders every row as strings, ready for CSV export.
func (d *Dataset) Records() [][]string {
	records := make([][]string, len(d.rows))
	for i, row := range d.rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = FormatValue(v)
		}
		records[i] = rec
	}
	return records
}

// InferValue converts raw text into a typed cell. Empty text is missing.
// Numeric text becomes int64 or float64, boolean text becomes bool,
// everything else stays a string.
func InferValue(raw string) Value {
	if raw == "" {
		return nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	return raw
}
