// SPDX-License-Identifier: MIT

package network_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyanmishra/WGCNA/correlation"
	"github.com/gyanmishra/WGCNA/matrix"
	"github.com/gyanmishra/WGCNA/network"
)

// columns builds a samples × genes expression matrix from gene columns.
func columns(t *testing.T, genes ...[]float64) *matrix.Dense {
	t.Helper()
	samples := len(genes[0])
	data := make([]float64, samples*len(genes))
	for g, col := range genes {
		for s, v := range col {
			data[s*len(genes)+g] = v
		}
	}
	return MustDense(t, samples, len(genes), data)
}

func TestPipelineErrorTaxonomy(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 1, 4, 3, 6, 5}
	flat := []float64{1, 1, 1, 1, 1, 5}
	constant := []float64{3, 3, 3, 3, 3, 3}

	good := columns(t, x, y, flat)
	zeroVar := columns(t, x, y, constant)
	badAdj := network.WithAdjacency(network.AdjacencyType(9))
	bicorNone := []network.Option{
		network.WithCorrelation(correlation.Bicor),
		network.WithFallback(correlation.FallbackNone),
	}

	tests := []struct {
		name string
		expr *matrix.Dense
		opts []network.Option
		want error
		code network.ErrorCode
	}{
		{"zero variance", zeroVar, nil, network.ErrZeroVariance, network.CodeZeroVariance},
		{"unknown correlation", good, []network.Option{network.WithCorrelation(correlation.Kind(3))},
			network.ErrUnrecognizedCorrelation, network.CodeUnrecognizedCorrelation},
		{"unknown correlation wins over adjacency", zeroVar,
			[]network.Option{network.WithCorrelation(correlation.Kind(3)), badAdj},
			network.ErrUnrecognizedCorrelation, network.CodeUnrecognizedCorrelation},
		{"bicor NA", good, bicorNone, network.ErrRobustEstimatorFailure, network.CodeRobustEstimatorFailure},
		{"bicor NA wins over adjacency", good, append(append([]network.Option{}, bicorNone...), badAdj),
			network.ErrRobustEstimatorFailure, network.CodeRobustEstimatorFailure},
		{"unknown adjacency", good, []network.Option{badAdj}, network.ErrUnrecognizedAdjacency, network.CodeUnrecognizedAdjacency},
		{"zero variance wins over adjacency", zeroVar, []network.Option{badAdj}, network.ErrZeroVariance, network.CodeZeroVariance},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, tomType := range []network.TOMType{network.TOMNone, network.TOMUnsigned, network.TOMSigned} {
				res, err := network.TOM(tc.expr, append(tc.opts, network.WithTOM(tomType))...)
				require.ErrorIs(t, err, tc.want, tomType.String())
				assert.Nil(t, res)
				assert.Equal(t, tc.code, network.CodeOf(err))
			}
			_, err := network.Adjacency(tc.expr, tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestZeroVarianceKeepsCause(t *testing.T) {
	t.Parallel()

	_, err := network.Adjacency(columns(t, []float64{1, 2, 3}, []float64{4, 4, 4}))
	require.ErrorIs(t, err, network.ErrZeroVariance)
	require.ErrorIs(t, err, correlation.ErrZeroVariance)
}

func TestBicorFailureFromProvider(t *testing.T) {
	t.Parallel()

	p := network.WithProvider(fixedProvider{
		corr:  uniformCorr(2, 0.5),
		stats: correlation.Stats{Failures: 2},
	})
	_, err := network.Adjacency(placeholder(t, 2), p, network.WithCorrelation(correlation.Bicor))
	require.ErrorIs(t, err, network.ErrRobustEstimatorFailure)

	// The same counters under Pearson are tolerated.
	_, err = network.Adjacency(placeholder(t, 2), p)
	require.NoError(t, err)
}

func TestProviderErrorPassesThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := network.TOM(placeholder(t, 2), network.WithProvider(fixedProvider{err: boom}))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, network.CodeNone, network.CodeOf(err))

	_, err = network.TOM(placeholder(t, 2),
		network.WithProvider(fixedProvider{err: correlation.ErrUnknownKind}))
	require.ErrorIs(t, err, network.ErrUnrecognizedCorrelation)
}

func TestErrorCodeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, network.CodeNone, network.CodeOf(nil))
	assert.Equal(t, "Standard deviation of some genes is zero.", network.CodeZeroVariance.Message())
	assert.Equal(t, "Unrecognized correlation type.", network.CodeUnrecognizedCorrelation.Message())
	assert.Equal(t, "Unrecognized adjacency type.", network.CodeUnrecognizedAdjacency.Message())
	assert.Equal(t, "robust_estimator_failure", network.CodeRobustEstimatorFailure.String())
	assert.Equal(t, "unknown", network.ErrorCode(42).String())
	assert.Equal(t, "Unknown error.", network.ErrorCode(-1).Message())
}
