// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Public facades over the private kernels in impl_statistics.go and
//     ops_elementwise.go. Every facade validates its input and returns
//     tagged sentinel errors; none of them mutates its argument.

package matrix

// ColumnMinArgmin returns, for every column of X, the minimum value and the
// zero-based row of its first occurrence (scanning top to bottom).
//
// Known limitation: NA is not handled. A NaN in row 0 is reported as the
// minimum of its column; a NaN further down is ignored. Filter NA first.
// Time: O(r*c). Space: O(c).
func ColumnMinArgmin(X Matrix) ([]float64, []int, error) { return columnMinArgmin(X) }

// ColumnMeans returns the mean of the non-NA entries of every column of X.
// A column without any non-NA entry yields NA (not zero, not an error).
// Time: O(r*c). Space: O(c).
func ColumnMeans(X Matrix) ([]float64, error) { return columnMeans(X) }

// RowAbsSums returns s[i] = Σ_j |X[i,j]|, diagonal included.
// On an adjacency matrix this is the weighted degree (connectivity).
// Time: O(r*c). Space: O(r).
func RowAbsSums(X Matrix) ([]float64, error) { return rowAbsSums(X) }

// Dissimilarity returns a new matrix holding 1 - X[i,j]; for a TOM this is
// the distance handed to hierarchical clustering. X is not modified.
// Time: O(r*c). Space: O(r*c).
func Dissimilarity(X Matrix) (*Dense, error) { return ewOneMinus(X) }

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
