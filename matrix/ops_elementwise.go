// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise kernels (ew*) to avoid
//     duplicating tight loops across higher-level ops.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels).
//   - Public API uses these via thin wrappers in api.go.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).

package matrix

import "math"

// ewOneMinus computes out[i,j] = 1 - X[i,j] into a fresh Dense.
// NA stays NA. Time: O(r*c). Space: O(r*c).
func ewOneMinus(X Matrix) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("Dissimilarity", err)
	}
	src, copied, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf("Dissimilarity", err)
	}
	out := src
	if !copied {
		out = src.Clone().(*Dense)
	}
	out.validateInf = false // 1 - (±Inf) is a legal transform of an anomalous TOM entry
	for k, v := range out.data {
		out.data[k] = 1 - v
	}

	return out, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN != anything (including NaN); +Inf equals +Inf; -Inf equals -Inf.
// Time: O(r*c). Space: O(1). Early exit on first violation.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	da, _, err := asDense(a)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	db, _, err := asDense(b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	for k, av := range da.data {
		bv := db.data[k]
		if av == bv { // exact match, covers equal infinities
			continue
		}
		if math.IsNaN(av) || math.IsNaN(bv) || math.IsInf(av, 0) || math.IsInf(bv, 0) {
			return false, nil
		}
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
