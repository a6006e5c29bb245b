// SPDX-License-Identifier: MIT

package correlation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gyanmishra/WGCNA/matrix"
)

// Kind selects the correlation estimator.
type Kind int

const (
	// Pearson is the product-moment correlation.
	Pearson Kind = iota
	// Bicor is the biweight midcorrelation.
	Bicor
)

var kindNames = map[Kind]string{
	Pearson: "pearson",
	Bicor:   "bicor",
}

// Valid reports whether k is a supported estimator.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler ("pearson", "bicor").
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Fallback decides what Bicor does with a gene whose MAD is zero.
type Fallback int

const (
	// FallbackNone leaves the gene's correlations as NA (counted in Stats.NA).
	FallbackNone Fallback = iota
	// FallbackIndividual standardizes that gene the Pearson way and keeps bicor for the rest.
	FallbackIndividual
	// FallbackAll switches the whole matrix to Pearson as soon as one gene has zero MAD.
	FallbackAll
)

var fallbackNames = map[Fallback]string{
	FallbackNone:       "none",
	FallbackIndividual: "individual",
	FallbackAll:        "all",
}

// Valid reports whether f is a supported fallback policy.
func (f Fallback) Valid() bool {
	_, ok := fallbackNames[f]
	return ok
}

func (f Fallback) String() string {
	if name, ok := fallbackNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Fallback(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Fallback) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: fallback %d", ErrInvalidOptions, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler ("none", "individual", "all").
func (f *Fallback) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for fb, n := range fallbackNames {
		if n == name {
			*f = fb
			return nil
		}
	}
	return fmt.Errorf("%w: fallback %q", ErrInvalidOptions, name)
}

// Options configures one correlation call.
//
// Fields:
//   - Kind        : estimator.
//   - MaxPOutliers: Bicor only; fraction in (0,1]. 1 disables the cap.
//   - Quick       : NA fraction in [0,1] up to which a gene takes the fast path.
//   - Fallback    : Bicor only; zero-MAD policy.
//   - Cosine      : skip centring (mean/median taken as 0).
//   - Threads     : goroutine limit; 0 means runtime.NumCPU().
//   - Logger      : progress sink; nil discards.
type Options struct {
	Kind         Kind
	MaxPOutliers float64
	Quick        float64
	Fallback     Fallback
	Cosine       bool
	Threads      int
	Logger       *slog.Logger
}

// Defaults for Options.
const (
	DefaultMaxPOutliers = 1.0
	DefaultQuick        = 0.0
)

// DefaultOptions returns Pearson with no outlier cap, exact NA handling and all CPUs.
func DefaultOptions() Options {
	return Options{
		Kind:         Pearson,
		MaxPOutliers: DefaultMaxPOutliers,
		Quick:        DefaultQuick,
		Fallback:     FallbackIndividual,
	}
}

func (o Options) validate() error {
	if !o.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(o.Kind))
	}
	if !(o.MaxPOutliers > 0 && o.MaxPOutliers <= 1) {
		return fmt.Errorf("%w: MaxPOutliers %g outside (0,1]", ErrInvalidOptions, o.MaxPOutliers)
	}
	if !(o.Quick >= 0 && o.Quick <= 1) {
		return fmt.Errorf("%w: Quick %g outside [0,1]", ErrInvalidOptions, o.Quick)
	}
	if !o.Fallback.Valid() {
		return fmt.Errorf("%w: fallback %d", ErrInvalidOptions, int(o.Fallback))
	}
	if o.Threads < 0 {
		return fmt.Errorf("%w: Threads %d", ErrInvalidOptions, o.Threads)
	}
	return nil
}

// Stats reports what a call could not compute. Entries counted here are NA
// in the output matrix.
//
//   - NA      : pairs left undefined (zero MAD under FallbackNone, or no
//     spread over the samples both genes observe).
//   - Failures: pairs with fewer than two samples observed by both genes.
//   - ZeroMAD : genes whose MAD over their observed samples is zero (Bicor).
type Stats struct {
	NA       int
	Failures int
	ZeroMAD  int
}

// Provider turns a samples × genes expression matrix into a genes × genes
// correlation matrix written into dst.
//
// dst must be genes × genes. Errors abort the call and leave dst unspecified.
type Provider interface {
	Correlate(dst *matrix.Dense, expr matrix.Matrix, opts Options) (Stats, error)
}
