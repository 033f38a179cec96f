package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// CSVWriter writes cleaned datasets to the silver directory. The directory
// is an explicit value handed in at construction, not process-global state.
type CSVWriter struct {
	silverDir string
}

// NewCSVWriter creates a writer bound to the given silver directory.
func NewCSVWriter(silverDir string) *CSVWriter {
	return &CSVWriter{silverDir: silverDir}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM for spreadsheet-tool compatibility
}

// WriteCSV writes records to a file under the silver directory, creating the
// directory on demand. It returns the full path written.
func (w *CSVWriter) WriteCSV(filename string, options WriteOptions) (string, error) {
	fullPath := filepath.Join(w.silverDir, filename)

	slog.Info("Writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.NewStorageError("failed to create output directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", errors.NewStorageError("failed to create file", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", errors.NewStorageError("failed to write headers", err)
		}
	}
	for _, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", errors.NewStorageError("failed to write record", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.NewStorageError("failed to flush records", err)
	}
	return fullPath, nil
}

// WriteDataset writes a dataset as a headed CSV file.
func (w *CSVWriter) WriteDataset(filename string, ds *dataset.Dataset) (string, error) {
	return w.WriteCSV(filename, WriteOptions{
		Headers: ds.Columns(),
		Records: ds.Records(),
	})
}
