// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by dense storage and reducers.
// This file intentionally contains ONLY the public Matrix interface and the
// NA sentinel. Errors and options live in dedicated files (errors.go, options.go).
package matrix

import "math"

// NA is the missing-value sentinel used by expression matrices and reducers.
// It is a quiet NaN; compare with IsNA, never with ==.
var NA = math.NaN()

// IsNA reports whether v is the missing-value sentinel (any NaN).
// Complexity: O(1).
func IsNA(v float64) bool { return math.IsNaN(v) }

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Layout contract: every implementation is addressed as (row, col); *Dense
// stores elements row-major (offset = row*Cols() + col). Expression matrices
// are samples × genes, every gene-by-gene matrix is n × n.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}
