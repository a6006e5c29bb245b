// SPDX-License-Identifier: MIT

package correlation

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/gyanmishra/WGCNA/matrix"
)

// Estimator is the default Provider. The zero value is ready to use.
type Estimator struct{}

var _ Provider = Estimator{}

// Correlate fills dst (genes × genes) with the correlation of every pair of
// expression columns.
//
// Order of checks: shape, options, zero variance. The first failure is
// returned and nothing is computed. NA results do not fail the call; they
// are counted in Stats and left for the caller to judge.
func (Estimator) Correlate(dst *matrix.Dense, expr matrix.Matrix, opts Options) (Stats, error) {
	if err := matrix.ValidateNotNil(expr); err != nil {
		return Stats{}, fmt.Errorf("Correlate: %w", err)
	}
	nSamples, nGenes := expr.Rows(), expr.Cols()
	if nSamples < minObserved {
		return Stats{}, fmt.Errorf("Correlate: %d samples: %w", nSamples, ErrTooFewSamples)
	}
	if err := matrix.ValidateNotNil(dst); err != nil {
		return Stats{}, fmt.Errorf("Correlate: dst: %w", err)
	}
	if dst.Rows() != nGenes || dst.Cols() != nGenes {
		return Stats{}, fmt.Errorf("Correlate: dst %dx%d for %d genes: %w",
			dst.Rows(), dst.Cols(), nGenes, matrix.ErrDimensionMismatch)
	}
	if err := opts.validate(); err != nil {
		return Stats{}, fmt.Errorf("Correlate: %w", err)
	}

	src, err := matrix.AsDense(expr)
	if err != nil {
		return Stats{}, fmt.Errorf("Correlate: %w", err)
	}
	e := newEngine(src, opts)
	if g, ok := e.zeroVarianceGene(); ok {
		return Stats{}, fmt.Errorf("Correlate: gene %d: %w", g, ErrZeroVariance)
	}
	e.prepare()

	e.log.Debug("correlation: pairs",
		slog.String("kind", e.kind.String()),
		slog.Int("genes", nGenes),
		slog.Int("samples", nSamples),
		slog.Int("threads", e.threads),
		slog.Int("exact_genes", e.nExact))

	if err := e.run(dst.Data()); err != nil {
		return Stats{}, fmt.Errorf("Correlate: %w", err)
	}
	return e.stats, nil
}

// engine holds the per-call state: gene columns, their prepared vectors and
// the per-gene flags that route a pair to the fast or the exact path.
type engine struct {
	opts    Options
	kind    Kind // may degrade to Pearson under FallbackAll
	threads int
	log     *slog.Logger

	nSamples, nGenes int
	cols             [][]float64 // cols[g][k] = expr[k, g]
	vec              [][]float64 // prepared unit vectors (fast path)
	exact            []bool      // gene needs pairwise-complete recomputation
	undefined        []bool      // zero MAD under FallbackNone: every pair is NA
	nExact           int

	stats Stats
}

func newEngine(src *matrix.Dense, opts Options) *engine {
	nSamples, nGenes := src.Rows(), src.Cols()
	data := src.Data()
	cols := make([][]float64, nGenes)
	for g := range cols {
		col := make([]float64, nSamples)
		for k := 0; k < nSamples; k++ {
			col[k] = data[k*nGenes+g]
		}
		cols[g] = col
	}

	threads := opts.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &engine{
		opts:      opts,
		kind:      opts.Kind,
		threads:   threads,
		log:       logger,
		nSamples:  nSamples,
		nGenes:    nGenes,
		cols:      cols,
		vec:       make([][]float64, nGenes),
		exact:     make([]bool, nGenes),
		undefined: make([]bool, nGenes),
	}
}

// zeroVarianceGene returns the first gene whose observed samples carry no
// spread: fewer than two of them, all equal, or (cosine) all zero.
func (e *engine) zeroVarianceGene() (int, bool) {
	for g, col := range e.cols {
		n := 0
		first, spread := math.NaN(), false
		for _, v := range col {
			if matrix.IsNA(v) {
				continue
			}
			n++
			if n == 1 {
				first = v
				continue
			}
			if v != first {
				spread = true
			}
		}
		if n < minObserved {
			return g, true
		}
		if e.opts.Cosine {
			if !spread && first == 0 {
				return g, true
			}
			continue
		}
		if !spread {
			return g, true
		}
	}
	return 0, false
}

// prepare builds the fast-path vector of every gene and decides the
// per-gene route. Under FallbackAll a single zero-MAD gene switches the
// whole call to Pearson before any vector is kept.
func (e *engine) prepare() {
	buf := make([]float64, e.nSamples)
	for g, col := range e.cols {
		missing := 0
		for _, v := range col {
			if matrix.IsNA(v) {
				missing++
			}
		}
		if missing > 0 && float64(missing)/float64(e.nSamples) > e.opts.Quick {
			e.exact[g] = true
			e.nExact++
		}
	}

	if e.kind == Bicor {
		zero := make([]bool, e.nGenes)
		for g, col := range e.cols {
			out := make([]float64, e.nSamples)
			if prepBicor(col, nil, e.opts, out, buf) == prepZeroMAD {
				zero[g] = true
				e.stats.ZeroMAD++
				continue
			}
			e.vec[g] = out
		}
		if e.stats.ZeroMAD > 0 {
			e.log.Debug("correlation: genes with zero MAD",
				slog.Int("count", e.stats.ZeroMAD),
				slog.String("fallback", e.opts.Fallback.String()))
		}
		switch {
		case e.stats.ZeroMAD > 0 && e.opts.Fallback == FallbackAll:
			e.kind = Pearson
		default:
			for g, z := range zero {
				if !z {
					continue
				}
				if e.opts.Fallback == FallbackNone {
					e.undefined[g] = true
					continue
				}
				out := make([]float64, e.nSamples)
				prepPearson(e.cols[g], nil, e.opts.Cosine, out, buf)
				e.vec[g] = out
			}
			return
		}
	}

	for g, col := range e.cols {
		out := make([]float64, e.nSamples)
		prepPearson(col, nil, e.opts.Cosine, out, buf)
		e.vec[g] = out
	}
}

// pairScratch is the per-goroutine workspace of the exact path.
type pairScratch struct {
	use    []bool
	vi, vj []float64
	buf    []float64
}

func (e *engine) newScratch() *pairScratch {
	return &pairScratch{
		use: make([]bool, e.nSamples),
		vi:  make([]float64, e.nSamples),
		vj:  make([]float64, e.nSamples),
		buf: make([]float64, e.nSamples),
	}
}

// run computes the strict lower triangle row by row, mirrors it, and sets
// the diagonal to 1. Rows are independent, so each goroutine owns its row
// and its counters; counters are summed after Wait.
func (e *engine) run(out []float64) error {
	n := e.nGenes
	rowStats := make([]Stats, n)

	g := new(errgroup.Group)
	g.SetLimit(e.threads)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			s := e.newScratch()
			st := &rowStats[i]
			for j := 0; j < i; j++ {
				v := e.pair(i, j, s, st)
				out[i*n+j] = v
				out[j*n+i] = v
			}
			out[i*n+i] = 1
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, st := range rowStats {
		e.stats.NA += st.NA
		e.stats.Failures += st.Failures
	}
	return nil
}

// pair returns cor(gene i, gene j), or NA with the reason counted in st.
func (e *engine) pair(i, j int, s *pairScratch, st *Stats) float64 {
	if e.undefined[i] || e.undefined[j] {
		st.NA++
		return matrix.NA
	}
	if !e.exact[i] && !e.exact[j] {
		return clampUnit(floats.Dot(e.vec[i], e.vec[j]))
	}

	xi, xj := e.cols[i], e.cols[j]
	common := 0
	for k := range s.use {
		s.use[k] = !matrix.IsNA(xi[k]) && !matrix.IsNA(xj[k])
		if s.use[k] {
			common++
		}
	}
	if common < minObserved {
		st.Failures++
		return matrix.NA
	}
	if !e.prepSubset(xi, s.use, s.vi, s.buf) || !e.prepSubset(xj, s.use, s.vj, s.buf) {
		st.NA++
		return matrix.NA
	}
	return clampUnit(floats.Dot(s.vi, s.vj))
}

// prepSubset prepares x over the selected samples with the call's estimator.
// A zero MAD on the subset falls back to Pearson unless the policy is FallbackNone.
func (e *engine) prepSubset(x []float64, use []bool, out, buf []float64) bool {
	if e.kind == Bicor {
		switch prepBicor(x, use, e.opts, out, buf) {
		case prepOK:
			return true
		case prepDegenerate:
			return false
		}
		if e.opts.Fallback == FallbackNone {
			return false
		}
	}
	return prepPearson(x, use, e.opts.Cosine, out, buf) == prepOK
}
