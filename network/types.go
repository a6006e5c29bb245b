// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"strings"

	"github.com/gyanmishra/WGCNA/correlation"
	"github.com/gyanmishra/WGCNA/matrix"
)

// AdjacencyType selects the power-law transform from correlation to adjacency.
type AdjacencyType int

const (
	// AdjUnsigned is |c|^p.
	AdjUnsigned AdjacencyType = iota
	// AdjSigned is ((1+c)/2)^p.
	AdjSigned
	// AdjHybrid is c^p for c > 0, else 0.
	AdjHybrid
	// AdjUnsignedKeepSign is sign(c)·|c|^p.
	AdjUnsignedKeepSign
)

// TOMType selects the topological overlap variant.
type TOMType int

const (
	// TOMNone skips the overlap kernel; the result is the adjacency.
	TOMNone TOMType = iota
	TOMUnsigned
	TOMSigned
)

// DenomType selects how two connectivities combine in the TOM denominator.
type DenomType int

const (
	// DenomMin uses min(k_i, k_j).
	DenomMin DenomType = iota
	// DenomMean uses (k_i + k_j) / 2.
	DenomMean
)

var (
	adjacencyNames = []string{
		AdjUnsigned:         "unsigned",
		AdjSigned:           "signed",
		AdjHybrid:           "signed hybrid",
		AdjUnsignedKeepSign: "unsigned keep sign",
	}
	tomNames   = []string{TOMNone: "none", TOMUnsigned: "unsigned", TOMSigned: "signed"}
	denomNames = []string{DenomMin: "min", DenomMean: "mean"}
)

// normalizeName folds case, trims and treats '_' and '-' as spaces.
func normalizeName(text []byte) string {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func lookupName(names []string, text []byte) (int, bool) {
	name := normalizeName(text)
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func nameOf(names []string, v int, typ string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

// Valid reports whether t is one of the four policies.
func (t AdjacencyType) Valid() bool { return t >= 0 && int(t) < len(adjacencyNames) }

// String returns the configuration name of t.
func (t AdjacencyType) String() string { return nameOf(adjacencyNames, int(t), "AdjacencyType") }

// MarshalText implements encoding.TextMarshaler.
func (t AdjacencyType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedAdjacency, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts "unsigned", "signed", "signed hybrid" and
// "unsigned keep sign"; '_' and '-' may stand for spaces.
func (t *AdjacencyType) UnmarshalText(text []byte) error {
	v, ok := lookupName(adjacencyNames, text)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnrecognizedAdjacency, string(text))
	}
	*t = AdjacencyType(v)
	return nil
}

// Valid reports whether t is a supported TOM policy.
func (t TOMType) Valid() bool { return t >= 0 && int(t) < len(tomNames) }

// String returns the configuration name of t.
func (t TOMType) String() string { return nameOf(tomNames, int(t), "TOMType") }

// MarshalText implements encoding.TextMarshaler.
func (t TOMType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedTOM, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts "none", "unsigned" and "signed".
func (t *TOMType) UnmarshalText(text []byte) error {
	v, ok := lookupName(tomNames, text)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnrecognizedTOM, string(text))
	}
	*t = TOMType(v)
	return nil
}

// Valid reports whether d is a supported denominator policy.
func (d DenomType) Valid() bool { return d >= 0 && int(d) < len(denomNames) }

// String returns the configuration name of d.
func (d DenomType) String() string { return nameOf(denomNames, int(d), "DenomType") }

// MarshalText implements encoding.TextMarshaler.
func (d DenomType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedDenominator, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts "min" and "mean".
func (d *DenomType) UnmarshalText(text []byte) error {
	v, ok := lookupName(denomNames, text)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnrecognizedDenominator, string(text))
	}
	*d = DenomType(v)
	return nil
}

// ReconcileAdjacency returns the adjacency policy the TOM variant needs.
// Signed TOM upgrades AdjUnsigned to AdjUnsignedKeepSign so the sign of
// each correlation survives; unsigned TOM downgrades AdjUnsignedKeepSign
// back to AdjUnsigned. Every other combination is returned unchanged.
func ReconcileAdjacency(tom TOMType, adj AdjacencyType) AdjacencyType {
	switch {
	case tom == TOMSigned && adj == AdjUnsigned:
		return AdjUnsignedKeepSign
	case tom == TOMUnsigned && adj == AdjUnsignedKeepSign:
		return AdjUnsigned
	}
	return adj
}

// Result is the outcome of a successful pipeline call.
type Result struct {
	// Matrix is the published n×n output: adjacency or TOM, always symmetric.
	Matrix *matrix.Dense

	// AboveOne counts normalized TOM entries greater than 1. They are kept
	// unchanged; a non-zero count flags near-degenerate denominators.
	AboveOne int

	// Adjacency is the policy actually applied after reconciliation.
	// Zero for TOMFromAdjacency, which never builds an adjacency.
	Adjacency AdjacencyType

	// Correlation carries the provider's counters (zero for TOMFromAdjacency).
	Correlation correlation.Stats
}
