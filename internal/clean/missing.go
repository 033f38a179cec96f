package clean

import (
	"fmt"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// Strategy selects how missing cells are handled.
type Strategy string

const (
	// StrategyDrop removes every row containing at least one missing cell.
	StrategyDrop Strategy = "drop"
	// StrategyFill replaces every missing cell with the fill value.
	StrategyFill Strategy = "fill"
)

// HandleMissingValues applies the given strategy to a dataset. Drop may
// reduce the row count; fill preserves it and guarantees zero missing cells
// afterwards. An unknown strategy is a validation error naming the strategy.
func HandleMissingValues(ds *dataset.Dataset, strategy Strategy, fillValue dataset.Value) (*dataset.Dataset, error) {
	switch strategy {
	case StrategyDrop:
		out := dataset.New(ds.Columns())
		for i := 0; i < ds.Len(); i++ {
			row := ds.Row(i)
			if hasMissing(row) {
				continue
			}
			if err := out.AppendRow(row); err != nil {
				return nil, err
			}
		}
		return out, nil
	case StrategyFill:
		out := dataset.New(ds.Columns())
		for i := 0; i < ds.Len(); i++ {
			row := ds.Row(i)
			for j, v := range row {
				if v == nil {
					row[j] = fillValue
				}
			}
			if err := out.AppendRow(row); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unknown missing-value strategy: %s", strategy))
	}
}

func hasMissing(row []dataset.Value) bool {
	for _, v := range row {
		if v == nil {
			return true
		}
	}
	return false
}
