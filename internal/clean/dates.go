package clean

import (
	"fmt"
	"time"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// dateLayouts are tried in order. Slash dates are read month-first.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// StandardizeDates parses heterogeneous date text in the named columns into
// a uniform date type. Parsing is best-effort per cell: unparseable values
// become missing, never an error. Cells that already hold a date pass
// through unchanged. Naming an unknown column is a validation error.
func StandardizeDates(ds *dataset.Dataset, columns []string) (*dataset.Dataset, error) {
	indexes := make([]int, 0, len(columns))
	for _, name := range columns {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("unknown date column: %s", name))
		}
		indexes = append(indexes, idx)
	}

	out := dataset.New(ds.Columns())
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		for _, idx := range indexes {
			row[idx] = parseDate(row[idx])
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseDate converts a cell to time.Time or missing.
func parseDate(v dataset.Value) dataset.Value {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
		return nil
	default:
		// Numbers, booleans and missing cells are not dates.
		return nil
	}
}
