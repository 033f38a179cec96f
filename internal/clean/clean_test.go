package clean

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldpcli/internal/dataset"
	"ldpcli/internal/errors"
)

func datasetWithDuplicates(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New([]string{"id", "name", "value"})
	rows := [][]dataset.Value{
		{int64(1), "Alice", int64(10)},
		{int64(2), "Bob", int64(20)},
		{int64(2), "Bob", int64(20)},
		{int64(3), "Charlie", int64(30)},
		{int64(3), "Charlie", int64(30)},
		{int64(3), "Charlie", int64(30)},
	}
	for _, row := range rows {
		require.NoError(t, ds.AppendRow(row))
	}
	return ds
}

func datasetWithMissing(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New([]string{"id", "name", "value"})
	rows := [][]dataset.Value{
		{int64(1), "Alice", int64(10)},
		{int64(2), nil, int64(20)},
		{int64(3), "Charlie", nil},
		{int64(4), "David", int64(40)},
	}
	for _, row := range rows {
		require.NoError(t, ds.AppendRow(row))
	}
	return ds
}

func TestRemoveDuplicates_Subset(t *testing.T) {
	ds := datasetWithDuplicates(t)

	result, err := RemoveDuplicates(ds, []string{"id"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Len())
	assert.Equal(t, []dataset.Value{int64(1), "Alice", int64(10)}, result.Row(0))
	assert.Equal(t, []dataset.Value{int64(2), "Bob", int64(20)}, result.Row(1))
	assert.Equal(t, []dataset.Value{int64(3), "Charlie", int64(30)}, result.Row(2))

	// Input untouched.
	assert.Equal(t, 6, ds.Len())
}

func TestRemoveDuplicates_AllColumns(t *testing.T) {
	ds := dataset.New([]string{"id", "name"})
	require.NoError(t, ds.AppendRow([]dataset.Value{int64(1), "Alice"}))
	require.NoError(t, ds.AppendRow([]dataset.Value{int64(1), "Other"}))
	require.NoError(t, ds.AppendRow([]dataset.Value{int64(1), "Alice"}))

	result, err := RemoveDuplicates(ds, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Len(), "rows differing in any column are distinct")
}

func TestRemoveDuplicates_PreservesFirstOccurrenceOrder(t *testing.T) {
	ds := dataset.New([]string{"id"})
	for _, id := range []int64{3, 1, 3, 2, 1} {
		require.NoError(t, ds.AppendRow([]dataset.Value{id}))
	}

	result, err := RemoveDuplicates(ds, nil)
	require.NoError(t, err)

	ids, err := result.Column("id")
	require.NoError(t, err)
	assert.Equal(t, []dataset.Value{int64(3), int64(1), int64(2)}, ids)
}

func TestRemoveDuplicates_Idempotent(t *testing.T) {
	ds := datasetWithDuplicates(t)

	once, err := RemoveDuplicates(ds, []string{"id"})
	require.NoError(t, err)
	twice, err := RemoveDuplicates(once, []string{"id"})
	require.NoError(t, err)

	assert.Equal(t, once.Len(), twice.Len())
	for i := 0; i < once.Len(); i++ {
		assert.Equal(t, once.Row(i), twice.Row(i))
	}
}

func TestRemoveDuplicates_SeparatorInCells(t *testing.T) {
	// Two distinct rows whose cells concatenate to the same text must both
	// survive; the key encoding keeps cell boundaries intact.
	ds := dataset.New([]string{"a", "b"})
	require.NoError(t, ds.AppendRow([]dataset.Value{"a|string=b", "c"}))
	require.NoError(t, ds.AppendRow([]dataset.Value{"a", "b|string=c"}))

	result, err := RemoveDuplicates(ds, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Len())
}

func TestRemoveDuplicates_EmptyDataset(t *testing.T) {
	ds := dataset.New([]string{"id", "name"})

	result, err := RemoveDuplicates(ds, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Len())
	assert.Equal(t, []string{"id", "name"}, result.Columns())
}

func TestRemoveDuplicates_UnknownSubsetColumn(t *testing.T) {
	ds := dataset.New([]string{"id"})

	_, err := RemoveDuplicates(ds, []string{"nope"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	assert.Contains(t, err.Error(), "nope")
}

func TestHandleMissingValues_Drop(t *testing.T) {
	ds := datasetWithMissing(t)

	result, err := HandleMissingValues(ds, StrategyDrop, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Len())
	assert.Equal(t, 0, result.Summarize().MissingCells)
	assert.Equal(t, []dataset.Value{int64(1), "Alice", int64(10)}, result.Row(0))
	assert.Equal(t, []dataset.Value{int64(4), "David", int64(40)}, result.Row(1))
}

func TestHandleMissingValues_Fill(t *testing.T) {
	ds := datasetWithMissing(t)

	result, err := HandleMissingValues(ds, StrategyFill, int64(0))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Len())
	assert.Equal(t, 0, result.Summarize().MissingCells)

	v, ok := result.Cell(1, "name")
	require.True(t, ok)
	assert.Equal(t, int64(0), v)

	v, ok = result.Cell(2, "value")
	require.True(t, ok)
	assert.Equal(t, int64(0), v)
}

func TestHandleMissingValues_UnknownStrategy(t *testing.T) {
	ds := datasetWithMissing(t)

	_, err := HandleMissingValues(ds, Strategy("bogus"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	assert.Contains(t, err.Error(), "bogus")
}

func TestStandardizeDates(t *testing.T) {
	ds := dataset.New([]string{"id", "date"})
	dates := []string{"2021-03-25", "03/26/2021", "2021-04-01"}
	for i, d := range dates {
		require.NoError(t, ds.AppendRow([]dataset.Value{int64(i + 1), d}))
	}

	result, err := StandardizeDates(ds, []string{"date"})
	require.NoError(t, err)

	expected := []time.Time{
		time.Date(2021, 3, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 3, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, want := range expected {
		v, ok := result.Cell(i, "date")
		require.True(t, ok)
		got, isTime := v.(time.Time)
		require.True(t, isTime, "row %d should parse to a date", i)
		assert.True(t, want.Equal(got), "row %d: want %v, got %v", i, want, got)
	}
}

func TestStandardizeDates_NaturalLanguage(t *testing.T) {
	ds := dataset.New([]string{"date"})
	require.NoError(t, ds.AppendRow([]dataset.Value{"Nov 1, 2025"}))
	require.NoError(t, ds.AppendRow([]dataset.Value{"November 1, 2025"}))

	result, err := StandardizeDates(ds, []string{"date"})
	require.NoError(t, err)

	want := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < result.Len(); i++ {
		v, ok := result.Cell(i, "date")
		require.True(t, ok)
		assert.True(t, want.Equal(v.(time.Time)))
	}
}

func TestStandardizeDates_UnparseableBecomesMissing(t *testing.T) {
	ds := dataset.New([]string{"date"})
	require.NoError(t, ds.AppendRow([]dataset.Value{"not a date"}))
	require.NoError(t, ds.AppendRow([]dataset.Value{int64(20210325)}))
	require.NoError(t, ds.AppendRow([]dataset.Value{nil}))

	result, err := StandardizeDates(ds, []string{"date"})
	require.NoError(t, err)

	for i := 0; i < result.Len(); i++ {
		v, ok := result.Cell(i, "date")
		require.True(t, ok)
		assert.Nil(t, v, "row %d", i)
	}
}

func TestStandardizeDates_MultipleColumns(t *testing.T) {
	ds := dataset.New([]string{"checkout_date", "return_date"})
	require.NoError(t, ds.AppendRow([]dataset.Value{"2021-03-25", "04/02/2021"}))

	result, err := StandardizeDates(ds, []string{"checkout_date", "return_date"})
	require.NoError(t, err)

	v, _ := result.Cell(0, "checkout_date")
	assert.IsType(t, time.Time{}, v)
	v, _ = result.Cell(0, "return_date")
	assert.IsType(t, time.Time{}, v)
}

func TestStandardizeDates_UnknownColumn(t *testing.T) {
	ds := dataset.New([]string{"id"})

	_, err := StandardizeDates(ds, []string{"date"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}
