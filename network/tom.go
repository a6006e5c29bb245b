// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/gyanmishra/WGCNA/matrix"
)

const (
	opTOM              = "TOM"
	opTOMInto          = "TOMInto"
	opTOMFromAdj       = "TOMFromAdjacency"
	opTOMFromAdjInto   = "TOMFromAdjacencyInto"
	msgAboveOne        = "TOM entries larger than 1"
	msgAboveOneEntry   = "TOM greater than 1"
	msgTOMStart        = "TOM calculation: adjacency.."
	msgTOMConnectivity = "..connectivity.."
	msgTOMMultiply     = "..matrix multiply.."
	msgTOMNormalize    = "..normalize.."
)

// TOM computes the topological overlap of the genes (columns) of expr.
//
// With TOMNone the result is the adjacency, bit-identical to Adjacency with
// the same options. Otherwise the adjacency policy is first reconciled with
// the TOM type (ReconcileAdjacency), then for every pair i≠j
//
//	unsigned: TOM[i,j] = (N[i,j] - A[i,j]) / (den - A[i,j])
//	signed:   TOM[i,j] = |N[i,j] - A[i,j]| / (den - |A[i,j]|)
//
// where N = A·Aᵀ and den is the min or the mean of the two connectivities.
// The diagonal holds the raw N[i,i]. Entries above 1 are kept and counted
// in Result.AboveOne.
//
// Peak memory is two n×n buffers plus the connectivity vector.
func TOM(expr matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	res, err := tomCall(nil, expr, o, opTOM)
	o.metrics.recordError(err)
	return res, err
}

// TOMInto is TOM writing into a caller-owned n×n dst. On error dst holds
// unspecified values.
func TOMInto(dst *matrix.Dense, expr matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateNotNil(dst); err != nil {
		err = fmt.Errorf("%s: dst: %w", opTOMInto, err)
		o.metrics.recordError(err)
		return nil, err
	}
	res, err := tomCall(dst, expr, o, opTOMInto)
	o.metrics.recordError(err)
	return res, err
}

func checkPolicies(o Options, op string, allowNone bool) error {
	if !o.tom.Valid() || (!allowNone && o.tom == TOMNone) {
		return fmt.Errorf("%s: %s: %w", op, o.tom, ErrUnrecognizedTOM)
	}
	if o.tom != TOMNone && !o.denom.Valid() {
		return fmt.Errorf("%s: %s: %w", op, o.denom, ErrUnrecognizedDenominator)
	}
	return nil
}

func tomCall(dst *matrix.Dense, expr matrix.Matrix, o Options, op string) (*Result, error) {
	if err := checkPolicies(o, op, true); err != nil {
		return nil, err
	}
	if o.tom == TOMNone {
		return adjacencyCall(dst, expr, o, op)
	}

	n, err := checkExpression(dst, expr, op)
	if err != nil {
		return nil, err
	}
	if err = checkBudget(o, op, n, 2, true); err != nil {
		return nil, err
	}
	if dst == nil {
		if dst, err = matrix.NewSquare(n, matrix.WithAllowInf()); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	adj, err := matrix.NewSquare(n, matrix.WithAllowInf())
	if err != nil {
		return nil, fmt.Errorf("%s: adjacency: %w", op, err)
	}

	typ := ReconcileAdjacency(o.tom, o.adj)
	p := newProgress(o)
	p.begin(stageAdjacency, msgTOMStart)
	stats, err := computeAdjacency(adj, expr, o, typ, op)
	if err != nil {
		p.log.Debug("TOM: adjacency failed", slog.String("error", err.Error()))
		return nil, err
	}

	above, err := overlap(dst, adj, o, p, op)
	if err != nil {
		return nil, err
	}
	return &Result{Matrix: dst, AboveOne: above, Adjacency: typ, Correlation: stats}, nil
}

// TOMFromAdjacency computes the TOM of a supplied adjacency matrix, which
// must be square and symmetric within the configured epsilon. No policy
// reconciliation happens: adj must already suit the TOM type. TOMNone is
// rejected with ErrUnrecognizedTOM.
func TOMFromAdjacency(adj matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	res, err := fromAdjacencyCall(nil, adj, o, opTOMFromAdj)
	o.metrics.recordError(err)
	return res, err
}

// TOMFromAdjacencyInto is TOMFromAdjacency writing into dst, which must
// not share storage with adj.
func TOMFromAdjacencyInto(dst *matrix.Dense, adj matrix.Matrix, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateNotNil(dst); err != nil {
		err = fmt.Errorf("%s: dst: %w", opTOMFromAdjInto, err)
		o.metrics.recordError(err)
		return nil, err
	}
	res, err := fromAdjacencyCall(dst, adj, o, opTOMFromAdjInto)
	o.metrics.recordError(err)
	return res, err
}

func fromAdjacencyCall(dst *matrix.Dense, adj matrix.Matrix, o Options, op string) (*Result, error) {
	if err := checkPolicies(o, op, false); err != nil {
		return nil, err
	}
	if err := matrix.ValidateSymmetric(adj, o.eps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	n := adj.Rows()
	if dst != nil {
		if err := matrix.ValidateSameShape(dst, adj); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	src, err := matrix.AsDense(adj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if dst.SharesStorage(src) {
		return nil, fmt.Errorf("%s: %w", op, ErrAliasedBuffers)
	}
	if err = checkBudget(o, op, n, 1, true); err != nil {
		return nil, err
	}
	if dst == nil {
		if dst, err = matrix.NewSquare(n, matrix.WithAllowInf()); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	above, err := overlap(dst, src, o, newProgress(o), op)
	if err != nil {
		return nil, err
	}
	return &Result{Matrix: dst, AboveOne: above}, nil
}

// overlap runs connectivity, product and normalization of adj into dst and
// returns the number of entries above 1. dst and adj must not alias.
func overlap(dst, adj *matrix.Dense, o Options, p *progress, op string) (int, error) {
	p.begin(stageConnectivity, msgTOMConnectivity)
	conn, err := Connectivity(adj)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	p.begin(stageMultiply, msgTOMMultiply)
	lowerProduct(dst, adj)

	p.begin(stageNormalize, msgTOMNormalize)
	above := normalize(dst, adj, conn, o.tom, o.denom, p)
	if above > 0 {
		o.logger.Warn(msgAboveOne, slog.Int("count", above), slog.String("tom", o.tom.String()))
		o.metrics.addAboveOne(above)
	}
	p.done()
	return above, nil
}

// lowerProduct writes the lower triangle (diagonal included) of adj·adjᵀ
// into dst. The strict upper triangle of dst is not touched.
func lowerProduct(dst, adj *matrix.Dense) {
	n := adj.Rows()
	a := blas64.General{Rows: n, Cols: n, Stride: n, Data: adj.Data()}
	c := blas64.Symmetric{Uplo: blas.Lower, N: n, Stride: n, Data: dst.Data()}
	blas64.Syrk(blas.NoTrans, 1, a, 0, c)
}

// normalize turns the raw product in the lower triangle of dst into TOM
// and mirrors every entry to the upper triangle. The diagonal is left as is.
func normalize(dst, adj *matrix.Dense, conn []float64, tom TOMType, denom DenomType, p *progress) int {
	n := adj.Rows()
	t, a := dst.Data(), adj.Data()
	above := 0
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			var den float64
			if denom == DenomMin {
				den = math.Min(conn[i], conn[j])
			} else {
				den = (conn[i] + conn[j]) / 2
			}

			aij := a[i*n+j]
			var v float64
			if tom == TOMSigned {
				v = math.Abs(t[i*n+j]-aij) / (den - math.Abs(aij))
			} else {
				v = (t[i*n+j] - aij) / (den - aij)
			}
			t[i*n+j] = v
			t[j*n+i] = v

			if v > 1 {
				above++
				if tom == TOMSigned {
					p.log.Debug(msgAboveOneEntry,
						slog.Float64("value", v), slog.Int("i", i), slog.Int("j", j))
				}
			}
		}
	}
	return above
}
