// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gyanmishra/WGCNA/correlation"
	"github.com/gyanmishra/WGCNA/matrix"
)

const (
	opAdjacency     = "Adjacency"
	opAdjacencyInto = "AdjacencyInto"
	opFromCorr      = "AdjacencyFromCorrelation"
)

// AdjacencyFromCorrelation writes the adjacency of corr under typ and power
// into dst. dst may be corr itself (the transform is elementwise).
// NA correlations stay NA, except under AdjHybrid where they map to 0.
//
// Errors: matrix shape errors, ErrUnrecognizedAdjacency, ErrInvalidPower.
func AdjacencyFromCorrelation(dst *matrix.Dense, corr matrix.Matrix, typ AdjacencyType, power float64) error {
	if err := matrix.ValidateSquare(corr); err != nil {
		return fmt.Errorf("%s: %w", opFromCorr, err)
	}
	if err := matrix.ValidateSameShape(dst, corr); err != nil {
		return fmt.Errorf("%s: %w", opFromCorr, err)
	}
	if !typ.Valid() {
		return fmt.Errorf("%s: %d: %w", opFromCorr, int(typ), ErrUnrecognizedAdjacency)
	}
	if math.IsNaN(power) || math.IsInf(power, 0) || power <= 0 {
		return fmt.Errorf("%s: %g: %w", opFromCorr, power, ErrInvalidPower)
	}
	src, err := matrix.AsDense(corr)
	if err != nil {
		return fmt.Errorf("%s: %w", opFromCorr, err)
	}
	transform(dst.Data(), src.Data(), typ, power)
	return nil
}

// transform applies the policy elementwise; dst and src may be the same slice.
func transform(dst, src []float64, typ AdjacencyType, power float64) {
	switch typ {
	case AdjUnsigned:
		for i, c := range src {
			dst[i] = math.Pow(math.Abs(c), power)
		}
	case AdjUnsignedKeepSign:
		for i, c := range src {
			v := math.Pow(math.Abs(c), power)
			if math.Signbit(c) {
				v = -v
			}
			dst[i] = v
		}
	case AdjSigned:
		for i, c := range src {
			dst[i] = math.Pow((1+c)/2, power)
		}
	case AdjHybrid:
		for i, c := range src {
			if c > 0 {
				dst[i] = math.Pow(c, power)
			} else {
				dst[i] = 0 // NA included
			}
		}
	}
}

// Adjacency correlates the genes (columns) of expr and transforms the
// result into a new n×n adjacency matrix.
//
// Errors, first detected wins: ErrUnrecognizedCorrelation, ErrZeroVariance,
// ErrRobustEstimatorFailure, ErrUnrecognizedAdjacency. Shape and budget
// errors come before all of them.
func Adjacency(expr matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	res, err := adjacencyCall(nil, expr, o, opAdjacency)
	o.metrics.recordError(err)
	return res, err
}

// AdjacencyInto is Adjacency writing into a caller-owned n×n dst.
func AdjacencyInto(dst *matrix.Dense, expr matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateNotNil(dst); err != nil {
		err = fmt.Errorf("%s: dst: %w", opAdjacencyInto, err)
		o.metrics.recordError(err)
		return nil, err
	}
	res, err := adjacencyCall(dst, expr, o, opAdjacencyInto)
	o.metrics.recordError(err)
	return res, err
}

func adjacencyCall(dst *matrix.Dense, expr matrix.Matrix, o Options, op string) (*Result, error) {
	n, err := checkExpression(dst, expr, op)
	if err != nil {
		return nil, err
	}
	if err = checkBudget(o, op, n, 1, false); err != nil {
		return nil, err
	}
	if dst == nil {
		if dst, err = matrix.NewSquare(n, matrix.WithAllowInf()); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	p := newProgress(o)
	p.begin(stageAdjacency, "adjacency..")
	stats, err := computeAdjacency(dst, expr, o, o.adj, op)
	if err != nil {
		return nil, err
	}
	p.done()
	return &Result{Matrix: dst, Adjacency: o.adj, Correlation: stats}, nil
}

// checkExpression validates expr and, when given, the shape of dst; it
// returns the number of genes.
func checkExpression(dst *matrix.Dense, expr matrix.Matrix, op string) (int, error) {
	if err := matrix.ValidateNotNil(expr); err != nil {
		return 0, fmt.Errorf("%s: expression: %w", op, err)
	}
	n := expr.Cols()
	if dst != nil && (dst.Rows() != n || dst.Cols() != n) {
		return 0, fmt.Errorf("%s: dst %dx%d for %d genes: %w",
			op, dst.Rows(), dst.Cols(), n, matrix.ErrDimensionMismatch)
	}
	return n, nil
}

// computeAdjacency runs the provider into dst and transforms dst in place.
// On error dst holds unspecified values.
func computeAdjacency(dst *matrix.Dense, expr matrix.Matrix, o Options, typ AdjacencyType, op string) (correlation.Stats, error) {
	if !o.corr.Valid() {
		return correlation.Stats{}, fmt.Errorf("%s: %s: %w", op, o.corr, ErrUnrecognizedCorrelation)
	}
	stats, err := o.provider.Correlate(dst, expr, o.correlationOptions())
	switch {
	case errors.Is(err, correlation.ErrZeroVariance):
		return stats, fmt.Errorf("%s: %w: %w", op, ErrZeroVariance, err)
	case errors.Is(err, correlation.ErrUnknownKind):
		return stats, fmt.Errorf("%s: %w: %w", op, ErrUnrecognizedCorrelation, err)
	case err != nil:
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	if o.corr == correlation.Bicor && (stats.NA > 0 || stats.Failures > 0) {
		return stats, fmt.Errorf("%s: %d NA, %d failed pairs: %w",
			op, stats.NA, stats.Failures, ErrRobustEstimatorFailure)
	}
	if stats.NA > 0 || stats.Failures > 0 {
		o.logger.Warn("correlation left undefined entries",
			slog.Int("na", stats.NA),
			slog.Int("failures", stats.Failures))
	}

	if !typ.Valid() {
		return stats, fmt.Errorf("%s: %d: %w", op, int(typ), ErrUnrecognizedAdjacency)
	}
	if math.IsNaN(o.power) || math.IsInf(o.power, 0) || o.power <= 0 {
		return stats, fmt.Errorf("%s: %g: %w", op, o.power, ErrInvalidPower)
	}
	data := dst.Data()
	transform(data, data, typ, o.power)
	return stats, nil
}
