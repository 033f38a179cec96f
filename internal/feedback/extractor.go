// Package feedback extracts (branch, rating) pairs from the semi-structured
// feedback log and aggregates them into per-branch rating counts.
package feedback

import (
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

// entryMarker introduces each feedback block in the raw log.
const entryMarker = "Feedback #"

// ratingPattern matches the rating line inside a block, capturing the branch
// name and the single-digit star rating.
var ratingPattern = regexp.MustCompile(`- ([A-Za-z\s]+ Branch) ~ (\d)⭐`)

// Result holds both views of the extraction. EntryCount comes from marker
// occurrences and may exceed the pair count: a block without a parseable
// rating line is counted but contributes no pair. The divergence is
// reported, never reconciled.
type Result struct {
	EntryCount int
	Pairs      *dataset.Dataset
	Summary    *dataset.Dataset
}

// Extract scans raw log content for feedback entries and rating lines.
// The pairs dataset has columns (branch, rating); the summary dataset groups
// by (branch, rating) with a count column, sorted by branch then rating.
func Extract(content string) *Result {
	result := &Result{
		EntryCount: strings.Count(content, entryMarker),
	}

	matches := ratingPattern.FindAllStringSubmatch(content, -1)

	pairs := dataset.New([]string{"branch", "rating"})
	type key struct {
		branch string
		rating int64
	}
	counts := make(map[key]int64)
	var order []key

	for _, m := range matches {
		branch := m[1]
		rating, _ := strconv.ParseInt(m[2], 10, 64)
		// AppendRow cannot fail here, the shape is fixed.
		_ = pairs.AppendRow([]dataset.Value{branch, rating})

		k := key{branch: branch, rating: rating}
		if _, exists := counts[k]; !exists {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].branch != order[j].branch {
			return order[i].branch < order[j].branch
		}
		return order[i].rating < order[j].rating
	})

	summary := dataset.New([]string{"branch", "rating", "count"})
	for _, k := range order {
		_ = summary.AppendRow([]dataset.Value{k.branch, k.rating, counts[k]})
	}

	result.Pairs = pairs
	result.Summary = summary
	return result
}

// ExtractFile reads the feedback log at path and extracts it.
func ExtractFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(path, err)
		}
		return nil, errors.NewParsingError("failed to read feedback log", err)
	}
	return Extract(string(data)), nil
}
