// Package exporter persists cleaned datasets as delimited-text files in the
// silver layer.
package exporter
