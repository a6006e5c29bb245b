// SPDX-License-Identifier: MIT

// Package network: functional options shared by the three entry points
// (Adjacency, TOM, TOMFromAdjacency).
//
// Policy values (correlation kind, adjacency, TOM, denominator) are NOT
// validated by their WithX constructors: an unsupported value is a runtime
// ErrorCode returned by the pipeline in a fixed order. Numeric knobs are
// validated up front and panic on nonsensical values (programmer error);
// Config.Validate is the error-returning path for untrusted input.
package network

import (
	"io"
	"log/slog"
	"math"

	"github.com/gyanmishra/WGCNA/correlation"
	"github.com/gyanmishra/WGCNA/matrix"
)

// ---------- Defaults ----------

const (
	// DefaultPower is the soft-threshold exponent.
	DefaultPower = 6.0

	DefaultMaxPOutliers = correlation.DefaultMaxPOutliers
	DefaultQuick        = correlation.DefaultQuick

	// DefaultEpsilon is the symmetry tolerance applied to supplied adjacencies.
	DefaultEpsilon = matrix.DefaultEpsilon
)

const (
	panicPowerInvalid        = "network: WithPower: power must be finite and > 0"
	panicMaxPOutliersInvalid = "network: WithMaxPOutliers: value must lie in (0,1]"
	panicQuickInvalid        = "network: WithQuick: value must lie in [0,1]"
	panicThreadsInvalid      = "network: WithThreads: threads must be >= 0"
	panicVerboseInvalid      = "network: WithVerbose: level must be >= 0"
	panicIndentInvalid       = "network: WithIndent: indent must be >= 0"
	panicProviderNil         = "network: WithProvider: provider is nil"
	panicEpsilonInvalid      = "network: WithEpsilon: eps must be finite, non-negative"
)

// Option mutates Options. Last setter wins.
type Option func(*Options)

// Options is the resolved configuration of one call.
type Options struct {
	corr  correlation.Kind
	adj   AdjacencyType
	power float64
	tom   TOMType
	denom DenomType

	maxPOutliers float64
	quick        float64
	fallback     correlation.Fallback
	cosine       bool
	threads      int // 0: runtime.NumCPU()

	verbose int
	indent  int
	logger  *slog.Logger

	provider correlation.Provider
	metrics  *Metrics
	budget   uint64 // bytes; 0 disables the check
	eps      float64
}

// WithCorrelation selects the correlation estimator.
func WithCorrelation(k correlation.Kind) Option {
	return func(o *Options) { o.corr = k }
}

// WithAdjacency selects the adjacency policy. For TOM it is reconciled
// with the TOM type first (see ReconcileAdjacency).
func WithAdjacency(t AdjacencyType) Option {
	return func(o *Options) { o.adj = t }
}

// WithPower sets the soft-threshold exponent; panics unless finite and > 0.
func WithPower(p float64) Option {
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		panic(panicPowerInvalid)
	}
	return func(o *Options) { o.power = p }
}

// WithTOM selects the TOM variant. TOMNone turns TOM into Adjacency.
func WithTOM(t TOMType) Option {
	return func(o *Options) { o.tom = t }
}

// WithDenominator selects min or mean connectivity in the TOM denominator.
func WithDenominator(d DenomType) Option {
	return func(o *Options) { o.denom = d }
}

// WithMaxPOutliers caps the fraction of samples bicor may treat as
// outliers on each side of the median.
func WithMaxPOutliers(p float64) Option {
	if !(p > 0 && p <= 1) {
		panic(panicMaxPOutliersInvalid)
	}
	return func(o *Options) { o.maxPOutliers = p }
}

// WithQuick sets the NA fraction up to which a gene takes the approximate path.
func WithQuick(q float64) Option {
	if !(q >= 0 && q <= 1) {
		panic(panicQuickInvalid)
	}
	return func(o *Options) { o.quick = q }
}

// WithFallback selects what bicor does with zero-MAD genes.
func WithFallback(f correlation.Fallback) Option {
	return func(o *Options) { o.fallback = f }
}

// WithCosine disables centring in the correlation step.
func WithCosine(on bool) Option {
	return func(o *Options) { o.cosine = on }
}

// WithThreads bounds the correlation goroutines; 0 uses every CPU.
func WithThreads(n int) Option {
	if n < 0 {
		panic(panicThreadsInvalid)
	}
	return func(o *Options) { o.threads = n }
}

// WithVerbose promotes progress messages from Debug to Info when level > 0.
func WithVerbose(level int) Option {
	if level < 0 {
		panic(panicVerboseInvalid)
	}
	return func(o *Options) { o.verbose = level }
}

// WithIndent attaches an "indent" attribute to progress messages so nested
// callers can render them at their own depth.
func WithIndent(n int) Option {
	if n < 0 {
		panic(panicIndentInvalid)
	}
	return func(o *Options) { o.indent = n }
}

// WithLogger sets the progress sink. Nil restores the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithProvider replaces the default correlation.Estimator.
func WithProvider(p correlation.Provider) Option {
	if p == nil {
		panic(panicProviderNil)
	}
	return func(o *Options) { o.provider = p }
}

// WithMetrics records pipeline metrics. Nil disables them.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithMemoryBudget refuses calls whose dense working set exceeds bytes.
// Zero disables the check.
func WithMemoryBudget(bytes uint64) Option {
	return func(o *Options) { o.budget = bytes }
}

// WithEpsilon sets the symmetry tolerance for supplied adjacency matrices.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

func defaultOptions() Options {
	return Options{
		corr:         correlation.Pearson,
		adj:          AdjUnsigned,
		power:        DefaultPower,
		tom:          TOMUnsigned,
		denom:        DenomMin,
		maxPOutliers: DefaultMaxPOutliers,
		quick:        DefaultQuick,
		fallback:     correlation.FallbackIndividual,
		provider:     correlation.Estimator{},
		eps:          DefaultEpsilon,
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// NewOptions resolves opts over the defaults.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// Correlation returns the resolved correlation estimator.
func (o Options) Correlation() correlation.Kind { return o.corr }

// Adjacency returns the requested adjacency policy, before reconciliation.
func (o Options) Adjacency() AdjacencyType { return o.adj }

// Power returns the soft-threshold exponent.
func (o Options) Power() float64 { return o.power }

// TOM returns the TOM variant.
func (o Options) TOM() TOMType { return o.tom }

// Denominator returns the TOM denominator policy.
func (o Options) Denominator() DenomType { return o.denom }

// Threads returns the correlation goroutine limit; 0 means every CPU.
func (o Options) Threads() int { return o.threads }

// MemoryBudget returns the byte budget; 0 means unchecked.
func (o Options) MemoryBudget() uint64 { return o.budget }

// Epsilon returns the symmetry tolerance for supplied adjacencies.
func (o Options) Epsilon() float64 { return o.eps }

// correlationOptions is the provider's view of o.
func (o Options) correlationOptions() correlation.Options {
	return correlation.Options{
		Kind:         o.corr,
		MaxPOutliers: o.maxPOutliers,
		Quick:        o.quick,
		Fallback:     o.fallback,
		Cosine:       o.cosine,
		Threads:      o.threads,
		Logger:       o.logger,
	}
}
