// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Expose the flat buffer (Data, Row) to kernels that walk rows and columns
//     by index instead of pointer arithmetic.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot loops: operate on the flat data slice directly.
//   - NA (NaN) is always storable; ±Inf is rejected by Set unless WithAllowInf was given.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Row: O(1).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"       // method tag used in error wrappers
	ctxSet     = "Set"      // method tag used in error wrappers
	ctxRow     = "Row"      // method tag used in error wrappers
	ctxNewFrom = "NewDenseFrom"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateInf enables ±Inf rejection in Set (policy default from options.go).
type Dense struct {
	r, c        int       // row and column counts (> 0)
	data        []float64 // contiguous row-major storage (len == r*c)
	validateInf bool      // numeric guard: reject ±Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil) // *Dense implements our public Matrix interface
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation and numeric policy.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//   - Stage 3: resolve numeric policy from opts.
//
// Inputs:
//   - rows, cols: positive dimensions.
//   - opts: numeric policy (WithAllowInf / WithValidateInf).
//
// Returns:
//   - *Dense: newly allocated matrix.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:           rows,
		c:           cols,
		data:        make([]float64, rows*cols),
		validateInf: o.validateInf,
	}, nil
}

// NewSquare creates an n×n zero matrix; shorthand for NewDense(n, n, opts...).
func NewSquare(n int, opts ...Option) (*Dense, error) { return NewDense(n, n, opts...) }

// NewDenseFrom creates an r×c matrix holding a copy of data (row-major).
// MAIN DESCRIPTION:
//   - Ingest an externally produced buffer (e.g. expression values with NA).
//
// Implementation:
//   - Stage 1: validate shape and len(data) == rows*cols.
//   - Stage 2: copy into a fresh buffer; apply the ±Inf policy to every value.
//
// Errors:
//   - ErrInvalidDimensions, ErrDataLength, ErrNaNInf (±Inf under the default policy).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - The caller keeps ownership of data; later edits to it do not leak into the matrix.
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: %w", ctxNewFrom, ErrDataLength)
	}
	if m.validateInf {
		for k, v := range data {
			if math.IsInf(v, 0) {
				return nil, denseErrorf(ctxNewFrom, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Implementation:
//   - Stage 1: validate 0 ≤ row < m.r and 0 ≤ col < m.c.
//   - Stage 2: compute row*m.c + col.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns a wrapped sentinel.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// MAIN DESCRIPTION:
//   - Safe element write; NA (NaN) always accepted, ±Inf rejected under the default policy.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for ±Inf when the guard is on.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateInf && math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Data returns the row-major backing slice (shared, not copied).
// Element (i, j) lives at Data()[i*Cols()+j].
//
// AI-Hints:
//   - Writes through the slice bypass the numeric policy; use it in kernels only.
func (m *Dense) Data() []float64 { return m.data }

// Row returns a no-copy slice of row i (len == Cols()).
// Errors: ErrOutOfRange for an invalid row.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	base := i * m.c

	return m.data[base : base+m.c : base+m.c], nil
}

// SharesStorage reports whether m and o are backed by the same buffer.
// Kernels that read one operand while writing the other use it to refuse aliasing.
func (m *Dense) SharesStorage(o *Dense) bool {
	if m == nil || o == nil || len(m.data) == 0 || len(o.data) == 0 {
		return false
	}

	return &m.data[0] == &o.data[0]
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:           m.r,
		c:           m.c,
		data:        cp,
		validateInf: m.validateInf, // preserve guard policy
	}
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Not for hot paths; intended for logs and debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// asDense returns m as *Dense, copying through At when m is another implementation.
// The returned flag reports whether a copy was made.
// Complexity: O(1) fast-path, O(r*c) fallback.
func asDense(m Matrix) (*Dense, bool, error) {
	if d, ok := m.(*Dense); ok {
		return d, false, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c, WithAllowInf())
	if err != nil {
		return nil, false, err
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, false, err
			}
			out.data[i*c+j] = v
		}
	}

	return out, true, nil
}

// AsDense exposes asDense for sibling packages: kernels accept the Matrix
// interface and run on the flat buffer of the result.
// Errors: ErrNilMatrix, ErrInvalidDimensions, At errors from the fallback copy.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("AsDense", err)
	}
	d, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf("AsDense", err)
	}

	return d, nil
}
