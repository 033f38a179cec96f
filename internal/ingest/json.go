package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// LoadJSON reads a semi-structured record file into a dataset, one row per
// record. The file may hold a bare list of records or an object containing
// one; in the object form the lexicographically first key holding a list is
// used. Columns are the union of record keys in first-appearance order.
func LoadJSON(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(path, err)
		}
		return nil, errors.NewParsingError("failed to read file", err)
	}

	records, err := recordList(path, data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewEmptyInputError(path)
	}

	var columns []string
	seen := make(map[string]bool)
	rows := make([]map[string]dataset.Value, 0, len(records))

	for i, raw := range records {
		keys, values, err := decodeRecord(raw)
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("failed to decode record %d", i), err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
		rows = append(rows, values)
	}

	ds := dataset.New(columns)
	for _, values := range rows {
		row := make([]dataset.Value, len(columns))
		for j, col := range columns {
			row[j] = values[col] // absent keys stay nil (missing)
		}
		if err := ds.AppendRow(row); err != nil {
			return nil, errors.NewParsingError("inconsistent record shape", err)
		}
	}

	return ds, nil
}

// recordList extracts the list of raw records from the top-level document.
func recordList(path string, data []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.NewParsingError("failed to decode record list", err)
		}
		return records, nil
	case strings.HasPrefix(trimmed, "{"):
		var object map[string]json.RawMessage
		if err := json.Unmarshal(data, &object); err != nil {
			return nil, errors.NewParsingError("failed to decode document", err)
		}
		var listKeys []string
		for key, value := range object {
			if strings.HasPrefix(strings.TrimSpace(string(value)), "[") {
				listKeys = append(listKeys, key)
			}
		}
		if len(listKeys) == 0 {
			return nil, errors.NewEmptyInputError(path)
		}
		sort.Strings(listKeys)
		var records []json.RawMessage
		if err := json.Unmarshal(object[listKeys[0]], &records); err != nil {
			return nil, errors.NewParsingError("failed to decode record list", err)
		}
		return records, nil
	default:
		return nil, errors.NewParsingError("document is neither an object nor a list", nil)
	}
}

// decodeRecord decodes one record object, preserving source key order.
func decodeRecord(raw json.RawMessage) ([]string, map[string]dataset.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("record is not an object")
	}

	var keys []string
	values := make(map[string]dataset.Value)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := keyTok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values[key] = convertJSONValue(v)
	}
	return keys, values, nil
}

// convertJSONValue maps a decoded JSON value to a dataset cell.
func convertJSONValue(v any) dataset.Value {
	switch t := v.(type) {
	case nil:
		return nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case string:
		return t
	case bool:
		return t
	default:
		// Nested structures flatten to their text form.
		return fmt.Sprintf("%v", t)
	}
}
