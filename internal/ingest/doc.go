// Package ingest loads raw bronze-layer extracts into datasets.
//
// Three adapters share one contract: a missing input is a NOT_FOUND error,
// an input with no parseable data is EMPTY_INPUT, and malformed content for
// the format is PARSING. Each adapter reads its file in full and releases it
// before returning; callers receive a fully materialized dataset.
package ingest
