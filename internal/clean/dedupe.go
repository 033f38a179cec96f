package clean

import (
	"fmt"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// RemoveDuplicates drops rows whose key tuple has been seen before, keeping
// the first occurrence in original order. The subset names the key columns;
// nil or empty means all columns. The result is a new dataset with the same
// column set.
func RemoveDuplicates(ds *dataset.Dataset, subset []string) (*dataset.Dataset, error) {
	var indexes []int
	if len(subset) > 0 {
		indexes = make([]int, 0, len(subset))
		for _, name := range subset {
			idx := ds.ColumnIndex(name)
			if idx < 0 {
				return nil, errors.NewValidationError(fmt.Sprintf("unknown subset column: %s", name))
			}
			indexes = append(indexes, idx)
		}
	}

	out := dataset.New(ds.Columns())
	seen := make(map[string]bool, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		key := dataset.RowKey(row, indexes)
		if seen[key] {
			continue
		}
		seen[key] = true
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}
