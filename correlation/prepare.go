// SPDX-License-Identifier: MIT

package correlation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gyanmishra/WGCNA/matrix"
)

// bicorOutlierScale is the number of MADs beyond which a sample gets zero weight.
const bicorOutlierScale = 9.0

// minObserved is the smallest number of samples a gene or pair needs.
const minObserved = 2

type prepStatus int

const (
	prepOK         prepStatus = iota
	prepZeroMAD               // robust scale is zero; caller applies the fallback
	prepDegenerate            // no spread at all, or fewer than minObserved samples
)

// observed collects x[k] for every sample k selected by use (nil: every non-NA sample).
func observed(x []float64, use []bool, buf []float64) []float64 {
	buf = buf[:0]
	for k, v := range x {
		if matrix.IsNA(v) || (use != nil && !use[k]) {
			continue
		}
		buf = append(buf, v)
	}
	return buf
}

// unitize scales out to unit Euclidean norm; false when the norm is zero.
func unitize(out []float64) bool {
	norm := floats.Norm(out, 2)
	if norm == 0 || math.IsNaN(norm) {
		return false
	}
	floats.Scale(1/norm, out)
	return true
}

// prepPearson writes the centred, unit-norm version of x into out. Samples
// that are NA or not selected by use are written as 0 so they drop out of
// any dot product.
func prepPearson(x []float64, use []bool, cosine bool, out, buf []float64) prepStatus {
	obs := observed(x, use, buf)
	if len(obs) < minObserved {
		return prepDegenerate
	}
	center := 0.0
	if !cosine {
		center = stat.Mean(obs, nil)
	}
	for k, v := range x {
		if matrix.IsNA(v) || (use != nil && !use[k]) {
			out[k] = 0
			continue
		}
		out[k] = v - center
	}
	if !unitize(out) {
		return prepDegenerate
	}
	return prepOK
}

// prepBicor writes the biweight-weighted, unit-norm version of x into out:
//
//	u_k = (x_k - med) / scale,  w_k = (1 - u_k²)² for |u_k| < 1, else 0
//	out_k = (x_k - med) · w_k, normalized
//
// scale is 9·MAD, widened per side to the maxPOutliers quantiles when fewer
// than that fraction of samples would otherwise be kept as outliers.
func prepBicor(x []float64, use []bool, opts Options, out, buf []float64) prepStatus {
	obs := observed(x, use, buf)
	if len(obs) < minObserved {
		return prepDegenerate
	}
	sort.Float64s(obs)
	med := quantileSorted(obs, 0.5)
	lowQ, highQ := obs[0], obs[len(obs)-1]
	if opts.MaxPOutliers < 1 {
		lowQ = quantileSorted(obs, opts.MaxPOutliers)
		highQ = quantileSorted(obs, 1-opts.MaxPOutliers)
	}

	for i, v := range obs {
		obs[i] = math.Abs(v - med)
	}
	sort.Float64s(obs)
	mad := quantileSorted(obs, 0.5)
	if mad == 0 {
		return prepZeroMAD
	}

	leftScale, rightScale := bicorOutlierScale*mad, bicorOutlierScale*mad
	if opts.MaxPOutliers < 1 {
		leftScale = math.Max(leftScale, med-lowQ)
		rightScale = math.Max(rightScale, highQ-med)
	}

	center := med
	if opts.Cosine {
		center = 0
	}
	for k, v := range x {
		if matrix.IsNA(v) || (use != nil && !use[k]) {
			out[k] = 0
			continue
		}
		scale := rightScale
		if v < med {
			scale = leftScale
		}
		u := (v - med) / scale
		if math.Abs(u) >= 1 {
			out[k] = 0
			continue
		}
		w := (1 - u*u) * (1 - u*u)
		out[k] = (v - center) * w
	}
	if !unitize(out) {
		return prepDegenerate
	}
	return prepOK
}

// quantileSorted is the type-7 (linear between order statistics) quantile of
// an ascending, non-empty slice. p=0.5 averages the two middle values for even n.
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// clampUnit trims floating-point overshoot of a dot product of unit vectors.
func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
