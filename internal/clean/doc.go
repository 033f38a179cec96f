// Package clean holds the cleaning transformations applied to bronze-layer
// datasets: duplicate removal, missing-value handling and date
// standardization. Every transform is a pure function producing a new
// dataset from its input.
package clean
