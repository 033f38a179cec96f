package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// LoadCSV reads a delimited-text file into a dataset. The first record is
// the header. Cell types are inferred per cell; empty cells are missing.
func LoadCSV(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(path, err)
		}
		return nil, errors.NewParsingError("failed to open file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewEmptyInputError(path)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read header", err)
	}

	ds := dataset.New(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("malformed delimited content", err)
		}
		row := make([]dataset.Value, len(record))
		for i, raw := range record {
			row[i] = dataset.InferValue(raw)
		}
		if err := ds.AppendRow(row); err != nil {
			return nil, errors.NewParsingError("inconsistent record length", err)
		}
	}

	return ds, nil
}
