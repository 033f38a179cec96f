package ingest

import (
	"os"

	"github.com/xuri/excelize/v2"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// LoadExcel reads the first sheet of a spreadsheet file into a dataset. The
// first row is the header; cell types are inferred as for LoadCSV. Like the
// other adapters it fails loudly: missing files and undecodable workbooks
// are errors, not empty results.
func LoadExcel(path string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewNotFoundError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewEmptyInputError(path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewEmptyInputError(path)
	}

	header := rows[0]
	ds := dataset.New(header)
	for _, raw := range rows[1:] {
		row := make([]dataset.Value, len(header))
		for i := range header {
			// Trailing empty cells are trimmed by excelize; pad them
			// back as missing.
			if i < len(raw) {
				row[i] = dataset.InferValue(raw[i])
			}
		}
		if err := ds.AppendRow(row); err != nil {
			return nil, errors.NewParsingError("inconsistent sheet row", err)
		}
	}

	return ds, nil
}
