// Package validation checks catalogue record identifiers. Validity is a
// per-row boolean result, never an error.
package validation

import (
	"strings"

	"ldpcli/internal/dataset"
)

// ValidateISBN reports whether a cell holds a valid ISBN-10 or ISBN-13.
// Hyphens and spaces are stripped before checking. It never fails:
// missing cells and non-string values are simply invalid.
func ValidateISBN(v dataset.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.NewReplacer("-", "", " ", "").Replace(s)
	switch len(s) {
	case 10:
		return validISBN10(s)
	case 13:
		return validISBN13(s)
	default:
		return false
	}
}

// validISBN10 checks the mod-11 weighted sum. The check digit may be X.
func validISBN10(s string) bool {
	sum := 0
	for i, r := range s {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case (r == 'X' || r == 'x') && i == 9:
			d = 10
		default:
			return false
		}
		sum += (10 - i) * d
	}
	return sum%11 == 0
}

// validISBN13 checks the alternating 1/3 weighted sum mod 10.
func validISBN13(s string) bool {
	sum := 0
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return sum%10 == 0
}

// AttachValidity returns a new dataset with a boolean column recording each
// row's ISBN validity. Missing ISBN cells validate false.
func AttachValidity(ds *dataset.Dataset, isbnColumn, resultColumn string) (*dataset.Dataset, error) {
	values, err := ds.Column(isbnColumn)
	if err != nil {
		return nil, err
	}
	results := make([]dataset.Value, len(values))
	for i, v := range values {
		results[i] = ValidateISBN(v)
	}
	return ds.AddColumn(resultColumn, results)
}
