// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy of Dense
// buffers. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - NA (NaN) is ALWAYS storable: missing values are first-class in expression data.
//   - ±Inf is rejected by Set unless WithAllowInf is given. Kernels that write
//     through Data() bypass the policy on purpose (TOM normalization may divide
//     by a vanishing denominator and must publish the raw quotient).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (symmetry validation, AllClose-style comparisons).
	DefaultEpsilon = 1e-9

	// DefaultValidateInf toggles rejection of ±Inf in Set.
	DefaultValidateInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps         float64 // >= 0; DefaultEpsilon
	validateInf bool    // DefaultValidateInf
}

// WithEpsilon sets the numeric tolerance eps used by structural checks.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// AI-Hints:
//   - Prefer small positive eps (e.g., 1e-9) for double-precision data.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithAllowInf lets Set store ±Inf on newly created matrices.
// NA (NaN) needs no option: it is always accepted.
func WithAllowInf() Option {
	return func(o *Options) { o.validateInf = false }
}

// WithValidateInf restores the default rejection of ±Inf in Set.
func WithValidateInf() Option {
	return func(o *Options) { o.validateInf = true }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:         DefaultEpsilon,
		validateInf: DefaultValidateInf,
	}
}

// gatherOptions resolves setters over the defaults in the given order (last wins).
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// Epsilon exposes the resolved tolerance for callers that accept ...Option.
func (o Options) Epsilon() float64 { return o.eps }

// NewOptions resolves opts over the defaults; useful for packages that
// forward matrix options (e.g. symmetry tolerance) to validators.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }
