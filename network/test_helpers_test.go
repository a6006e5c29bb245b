// SPDX-License-Identifier: MIT

package network_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gyanmishra/WGCNA/correlation"
	"github.com/gyanmishra/WGCNA/matrix"
	"github.com/gyanmishra/WGCNA/network"
)

const tol = 1e-9

// fixedProvider publishes a canned correlation matrix regardless of the expression.
type fixedProvider struct {
	corr  []float64
	stats correlation.Stats
	err   error
	calls *int
}

func (p fixedProvider) Correlate(dst *matrix.Dense, _ matrix.Matrix, _ correlation.Options) (correlation.Stats, error) {
	if p.calls != nil {
		*p.calls++
	}
	if p.err != nil {
		return p.stats, p.err
	}
	copy(dst.Data(), p.corr)
	return p.stats, nil
}

// uniformCorr is an n×n correlation with unit diagonal and c elsewhere.
func uniformCorr(n int, c float64) []float64 {
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				out[i*n+j] = 1
			} else {
				out[i*n+j] = c
			}
		}
	}
	return out
}

// mixedCorr is a 4-gene correlation with both signs.
var mixedCorr = []float64{
	1, 0.8, -0.6, 0.1,
	0.8, 1, -0.3, 0.4,
	-0.6, -0.3, 1, -0.7,
	0.1, 0.4, -0.7, 1,
}

// placeholder gives the stub provider the right number of genes.
func placeholder(t *testing.T, genes int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(2, genes)
	require.NoError(t, err)
	return m
}

func MustDense(t *testing.T, rows, cols int, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows, cols, data, matrix.WithAllowInf())
	require.NoError(t, err)
	return m
}

// sampleExpression is 8 samples × 5 genes with distinct, non-constant columns.
func sampleExpression(t *testing.T) *matrix.Dense {
	t.Helper()
	const samples, genes = 8, 5
	data := make([]float64, samples*genes)
	for s := 0; s < samples; s++ {
		x := float64(s)
		row := []float64{
			x,
			x*0.5 + math.Sin(x),
			-x + math.Cos(2*x),
			math.Mod(x*3, 5),
			x*x - 4*x,
		}
		copy(data[s*genes:], row)
	}
	return MustDense(t, samples, genes, data)
}

// referenceTOM recomputes the overlap with a full gonum product and plain loops.
func referenceTOM(t *testing.T, adj *matrix.Dense, signed, mean bool) []float64 {
	t.Helper()
	n := adj.Rows()
	a := mat.NewDense(n, n, append([]float64(nil), adj.Data()...))
	var prod mat.Dense
	prod.Mul(a, a.T())

	k := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k[i] += math.Abs(a.At(i, j))
		}
	}
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				out[i*n+j] = prod.At(i, i)
				continue
			}
			den := math.Min(k[i], k[j])
			if mean {
				den = (k[i] + k[j]) / 2
			}
			aij := a.At(i, j)
			if signed {
				out[i*n+j] = math.Abs(prod.At(i, j)-aij) / (den - math.Abs(aij))
			} else {
				out[i*n+j] = (prod.At(i, j) - aij) / (den - aij)
			}
		}
	}
	return out
}

func requireSymmetric(t *testing.T, m *matrix.Dense) {
	t.Helper()
	n := m.Rows()
	d := m.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			require.Equal(t, d[i*n+j], d[j*n+i], "(%d,%d)", i, j)
		}
	}
}

func requireClose(t *testing.T, want, got []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], eps, "index %d", i)
	}
}

// captureLogger records every record at Debug and above as JSON lines.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

func stub(corr []float64) network.Option {
	return network.WithProvider(fixedProvider{corr: corr})
}
