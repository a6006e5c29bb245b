// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column/row reducers used around network construction:
//     column minimum with its first row index, NA-aware column means, and
//     absolute row sums (weighted degree / connectivity).
//
// Exposed API (see api.go):
//   - ColumnMinArgmin(X) -> (mins, rows)   // first occurrence on ties; NA is NOT handled
//   - ColumnMeans(X)     -> means           // NA entries skipped; all-NA column -> NA
//   - RowAbsSums(X)      -> sums            // Σ_j |X[i,j]| including the diagonal
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At and operate on row-major flat buffers; column
//     reducers accumulate per column while walking rows so memory is read sequentially.

package matrix

import "math"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opColumnMinArgmin = "ColumnMinArgmin"
	opColumnMeans     = "ColumnMeans"
	opRowAbsSums      = "RowAbsSums"
)

// columnMinArgmin returns, per column, the minimum value and the row of its
// first occurrence scanning top to bottom.
// Implementation:
//   - Stage 1: Validate X (non-nil). Seed mins with row 0, rows with 0.
//   - Stage 2: For rows 1..r-1 replace the running minimum only on a strict '<'.
//
// Behavior highlights:
//   - Ties keep the earliest row (strict comparison).
//   - NA is not special-cased: a NaN seed in row 0 never compares lower and
//     sticks as the result; a NaN in a later row never compares lower and is
//     skipped. Callers must pre-filter NA when that matters.
//
// Returns:
//   - []float64: column minima (len=c).
//   - []int: zero-based row index of each minimum (len=c).
//
// Errors:
//   - ErrNilMatrix from validation; wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func columnMinArgmin(X Matrix) ([]float64, []int, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opColumnMinArgmin, err)
	}
	r, c := X.Rows(), X.Cols()
	mins := make([]float64, c)
	rows := make([]int, c)
	if r == 0 || c == 0 {
		return mins, rows, nil
	}

	var i, j int
	var v float64
	if d, ok := X.(*Dense); ok {
		copy(mins, d.data[:c]) // seed with row 0
		for i = 1; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				if v = d.data[base+j]; v < mins[j] {
					mins[j] = v
					rows[j] = i
				}
			}
		}
		return mins, rows, nil
	}

	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opColumnMinArgmin, err)
			}
			if i == 0 || v < mins[j] {
				mins[j] = v
				rows[j] = i
			}
		}
	}

	return mins, rows, nil
}

// columnMeans returns the arithmetic mean of the non-NA entries of every column.
// Implementation:
//   - Stage 1: Validate X.
//   - Stage 2: Accumulate sums and counts of non-NA entries per column (all rows).
//   - Stage 3: Divide; a column with zero counted entries yields NA.
//
// Errors:
//   - ErrNilMatrix; wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func columnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	sums := make([]float64, c)
	counts := make([]int, c)

	var i, j int
	var v float64
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				if v = d.data[base+j]; !IsNA(v) {
					sums[j] += v
					counts[j]++
				}
			}
		}
	} else {
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(opColumnMeans, err)
				}
				if !IsNA(v) {
					sums[j] += v
					counts[j]++
				}
			}
		}
	}

	for j = 0; j < c; j++ {
		if counts[j] == 0 {
			sums[j] = NA
			continue
		}
		sums[j] /= float64(counts[j])
	}

	return sums, nil
}

// rowAbsSums returns s[i] = Σ_j |X[i,j]| over every column, diagonal included.
// NA entries propagate (the sum of a row containing NA is NA).
// Complexity: Time O(r*c), Space O(r).
func rowAbsSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowAbsSums, err)
	}
	r, c := X.Rows(), X.Cols()
	sums := make([]float64, r)

	var i, j int
	var acc float64
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			acc = 0
			for _, v := range d.data[i*c : (i+1)*c] {
				acc += math.Abs(v)
			}
			sums[i] = acc
		}
		return sums, nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		acc = 0
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opRowAbsSums, err)
			}
			acc += math.Abs(v)
		}
		sums[i] = acc
	}

	return sums, nil
}
