// Package pipeline sequences the per-dataset processing stages.
//
// Each stage follows the same shape: load via the matching ingestion
// adapter, apply the dataset's cleaning sequence, persist to the silver
// directory and report summary statistics. The runner executes enabled
// stages strictly sequentially and stops at the first failure; there is no
// retry and no partial-state recovery.
package pipeline
