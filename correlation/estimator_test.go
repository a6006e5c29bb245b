// SPDX-License-Identifier: MIT

package correlation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/gyanmishra/WGCNA/correlation"
	"github.com/gyanmishra/WGCNA/matrix"
)

const tol = 1e-12

var NA = matrix.NA

// expression builds a samples × genes Dense from per-gene columns.
func expression(t *testing.T, genes ...[]float64) *matrix.Dense {
	t.Helper()
	nSamples := len(genes[0])
	data := make([]float64, nSamples*len(genes))
	for g, col := range genes {
		require.Len(t, col, nSamples)
		for k, v := range col {
			data[k*len(genes)+g] = v
		}
	}
	m, err := matrix.NewDenseFrom(nSamples, len(genes), data)
	require.NoError(t, err)
	return m
}

func correlate(t *testing.T, expr *matrix.Dense, opts correlation.Options) (*matrix.Dense, correlation.Stats) {
	t.Helper()
	dst, err := matrix.NewSquare(expr.Cols())
	require.NoError(t, err)
	st, err := correlation.Estimator{}.Correlate(dst, expr, opts)
	require.NoError(t, err)
	return dst, st
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

var (
	geneA = []float64{1, 2, 3, 4, 5, 6}
	geneB = []float64{2, 1, 4, 3, 6, 5}
	geneC = []float64{6, 5, 4, 3, 2, 1.5}
	geneD = []float64{0.3, -1, 2.2, 0.1, 0.4, -0.5}
)

// TestPearsonMatchesGonum compares every pair against gonum's stat.Correlation.
func TestPearsonMatchesGonum(t *testing.T) {
	t.Parallel()

	genes := [][]float64{geneA, geneB, geneC, geneD}
	expr := expression(t, genes...)
	opts := correlation.DefaultOptions()
	got, st := correlate(t, expr, opts)
	assert.Equal(t, correlation.Stats{}, st)

	for i := range genes {
		assert.Equal(t, 1.0, at(t, got, i, i))
		for j := range genes {
			if i == j {
				continue
			}
			want := stat.Correlation(genes[i], genes[j], nil)
			assert.InDelta(t, want, at(t, got, i, j), tol, "pair (%d,%d)", i, j)
			assert.Equal(t, at(t, got, i, j), at(t, got, j, i), "symmetry (%d,%d)", i, j)
		}
	}
}

// TestThreadCountDoesNotChangeResult runs the same call single- and multi-threaded.
func TestThreadCountDoesNotChangeResult(t *testing.T) {
	t.Parallel()

	expr := expression(t, geneA, geneB, geneC, geneD)
	for _, kind := range []correlation.Kind{correlation.Pearson, correlation.Bicor} {
		opts := correlation.DefaultOptions()
		opts.Kind = kind
		opts.Threads = 1
		one, _ := correlate(t, expr, opts)
		opts.Threads = 3
		many, _ := correlate(t, expr, opts)
		assert.Equal(t, one.Data(), many.Data(), kind.String())
	}
}

// TestCosine leaves the data uncentred.
func TestCosine(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3}
	y := []float64{2, 2, 2.5}
	opts := correlation.DefaultOptions()
	opts.Cosine = true
	got, _ := correlate(t, expression(t, x, y), opts)

	want := (1*2 + 2*2 + 3*2.5) / (math.Sqrt(14) * math.Sqrt(4+4+6.25))
	assert.InDelta(t, want, at(t, got, 1, 0), tol)
}

// TestBicorResistsOutlier checks that one wild sample barely moves bicor
// while it drags Pearson down.
func TestBicorResistsOutlier(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{1.1, 2.0, 2.9, 4.2, 5.1, 5.8, 7.2, 8.1, 8.9, -40}
	expr := expression(t, x, y)

	opts := correlation.DefaultOptions()
	pearson, _ := correlate(t, expr, opts)
	opts.Kind = correlation.Bicor
	bicor, st := correlate(t, expr, opts)

	assert.Equal(t, correlation.Stats{}, st)
	assert.Less(t, at(t, pearson, 1, 0), 0.0)
	assert.Greater(t, at(t, bicor, 1, 0), 0.7)
}

// TestBicorOfLinearGenes is exactly ±1 for perfectly (anti-)linear genes.
func TestBicorOfLinearGenes(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, 4, 5, 6, 7}
	y := []float64{3, 5, 7, 9, 11, 13, 15}
	z := []float64{7, 6, 5, 4, 3, 2, 1}
	opts := correlation.DefaultOptions()
	opts.Kind = correlation.Bicor
	got, _ := correlate(t, expression(t, x, y, z), opts)

	assert.InDelta(t, 1, at(t, got, 1, 0), tol)
	assert.InDelta(t, -1, at(t, got, 2, 0), tol)
}

// TestBicorZeroMADFallbacks covers the three fallback policies on a gene
// whose median absolute deviation is zero.
func TestBicorZeroMADFallbacks(t *testing.T) {
	t.Parallel()

	flat := []float64{1, 1, 1, 1, 1, 5}
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 1, 4, 3, 6, 5}
	expr := expression(t, flat, x, y)

	opts := correlation.DefaultOptions()
	opts.Kind = correlation.Bicor

	t.Run("none", func(t *testing.T) {
		o := opts
		o.Fallback = correlation.FallbackNone
		got, st := correlate(t, expr, o)
		assert.Equal(t, 1, st.ZeroMAD)
		assert.Equal(t, 2, st.NA)
		assert.True(t, matrix.IsNA(at(t, got, 1, 0)))
		assert.False(t, matrix.IsNA(at(t, got, 2, 1)))
	})

	t.Run("individual", func(t *testing.T) {
		o := opts
		o.Fallback = correlation.FallbackIndividual
		got, st := correlate(t, expr, o)
		assert.Equal(t, 1, st.ZeroMAD)
		assert.Zero(t, st.NA)
		assert.False(t, matrix.IsNA(at(t, got, 1, 0)))
	})

	t.Run("all", func(t *testing.T) {
		o := opts
		o.Fallback = correlation.FallbackAll
		got, st := correlate(t, expr, o)
		assert.Equal(t, 1, st.ZeroMAD)
		pearson, _ := correlate(t, expr, correlation.DefaultOptions())
		assert.Equal(t, pearson.Data(), got.Data())
	})
}

// TestMaxPOutliersWidensScale keeps tail samples weighted when the cap is tight.
func TestMaxPOutliersWidensScale(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	expr := expression(t, x, y)

	opts := correlation.DefaultOptions()
	opts.Kind = correlation.Bicor
	free, _ := correlate(t, expr, opts)
	opts.MaxPOutliers = 0.05
	capped, _ := correlate(t, expr, opts)

	assert.NotEqual(t, at(t, free, 1, 0), at(t, capped, 1, 0))
}

// TestMissingValuesExactPath recomputes pairs over commonly observed samples.
func TestMissingValuesExactPath(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, NA, 4, 5, 6}
	y := []float64{2, 1, 4, 3, NA, 5}
	expr := expression(t, x, y)

	got, st := correlate(t, expr, correlation.DefaultOptions())
	assert.Equal(t, correlation.Stats{}, st)

	want := stat.Correlation([]float64{1, 2, 4, 6}, []float64{2, 1, 3, 5}, nil)
	assert.InDelta(t, want, at(t, got, 1, 0), tol)
}

// TestMissingValuesQuickPath treats missing samples as contributing nothing.
func TestMissingValuesQuickPath(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, NA, 4, 5, 6}
	y := []float64{2, 1, 4, 3, 6, 5}
	opts := correlation.DefaultOptions()
	opts.Quick = 0.5
	got, _ := correlate(t, expression(t, x, y), opts)

	// Mean-impute x and correlate the full columns.
	mean := (1 + 2 + 4 + 5 + 6) / 5.0
	want := stat.Correlation([]float64{1, 2, mean, 4, 5, 6}, y, nil)
	assert.InDelta(t, want, at(t, got, 1, 0), 1e-2)

	exact, _ := correlate(t, expression(t, x, y), correlation.DefaultOptions())
	assert.NotEqual(t, at(t, exact, 1, 0), at(t, got, 1, 0))
}

// TestTooFewCommonSamples counts the pair as a failure and publishes NA.
func TestTooFewCommonSamples(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, NA, NA}
	y := []float64{NA, NA, 3, 4, 5}
	got, st := correlate(t, expression(t, x, y), correlation.DefaultOptions())
	assert.Equal(t, 1, st.Failures)
	assert.True(t, matrix.IsNA(at(t, got, 0, 1)))
}

func TestCorrelateErrors(t *testing.T) {
	t.Parallel()

	good := expression(t, geneA, geneB)
	square := func(n int) *matrix.Dense {
		d, err := matrix.NewSquare(n)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name string
		dst  *matrix.Dense
		expr matrix.Matrix
		opts func(*correlation.Options)
		want error
	}{
		{"nil expression", square(2), nil, nil, matrix.ErrNilMatrix},
		{"one sample", square(2), expression(t, []float64{1}, []float64{2}), nil, correlation.ErrTooFewSamples},
		{"dst shape", square(3), good, nil, matrix.ErrDimensionMismatch},
		{"unknown kind", square(2), good, func(o *correlation.Options) { o.Kind = 7 }, correlation.ErrUnknownKind},
		{"bad maxPOutliers", square(2), good, func(o *correlation.Options) { o.MaxPOutliers = 0 }, correlation.ErrInvalidOptions},
		{"bad quick", square(2), good, func(o *correlation.Options) { o.Quick = 1.5 }, correlation.ErrInvalidOptions},
		{"bad threads", square(2), good, func(o *correlation.Options) { o.Threads = -1 }, correlation.ErrInvalidOptions},
		{"constant gene", square(2), expression(t, geneA, []float64{3, 3, 3, 3, 3, 3}), nil, correlation.ErrZeroVariance},
		{"constant observed", square(2), expression(t, geneA, []float64{3, NA, 3, 3, NA, 3}), nil, correlation.ErrZeroVariance},
		{"single observation", square(2), expression(t, geneA, []float64{NA, NA, 3, NA, NA, NA}), nil, correlation.ErrZeroVariance},
		{"bicor constant gene", square(2), expression(t, geneA, []float64{3, 3, 3, 3, 3, 3}), func(o *correlation.Options) { o.Kind = correlation.Bicor }, correlation.ErrZeroVariance},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			opts := correlation.DefaultOptions()
			if tc.opts != nil {
				tc.opts(&opts)
			}
			_, err := correlation.Estimator{}.Correlate(tc.dst, tc.expr, opts)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestCosineConstantGene is legal as long as the gene is not all zero.
func TestCosineConstantGene(t *testing.T) {
	t.Parallel()

	opts := correlation.DefaultOptions()
	opts.Cosine = true
	_, _ = correlate(t, expression(t, geneA, []float64{3, 3, 3, 3, 3, 3}), opts)

	dst, err := matrix.NewSquare(2)
	require.NoError(t, err)
	_, err = correlation.Estimator{}.Correlate(dst, expression(t, geneA, make([]float64, 6)), opts)
	require.ErrorIs(t, err, correlation.ErrZeroVariance)
}

func TestKindText(t *testing.T) {
	t.Parallel()

	var k correlation.Kind
	require.NoError(t, k.UnmarshalText([]byte(" BiCor ")))
	assert.Equal(t, correlation.Bicor, k)
	text, err := correlation.Pearson.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "pearson", string(text))
	assert.ErrorIs(t, k.UnmarshalText([]byte("spearman")), correlation.ErrUnknownKind)
	assert.Equal(t, "Kind(9)", correlation.Kind(9).String())

	var f correlation.Fallback
	require.NoError(t, f.UnmarshalText([]byte("all")))
	assert.Equal(t, correlation.FallbackAll, f)
	assert.ErrorIs(t, f.UnmarshalText([]byte("some")), correlation.ErrInvalidOptions)
}
