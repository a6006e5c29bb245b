// SPDX-License-Identifier: MIT

// Package matrix provides the dense storage shared by the network packages.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 buffer (offset = i*cols + j) with
//     bounds-checked At/Set and a shared Data() view for kernels.
//   - NA, the missing-value sentinel (NaN) of expression matrices.
//   - Validators (shape, square, symmetry) returning sentinel errors.
//   - Column reducers: ColumnMinArgmin, ColumnMeans; row reducer RowAbsSums.
//
// Matrices are dense: a gene-by-gene matrix of n genes costs 8·n² bytes.
// Expression matrices are samples × genes.
package matrix
