// SPDX-License-Identifier: MIT

package network

import "errors"

// Every message is prefixed with "network: ..."; callers match with errors.Is.
//
// The first four sentinels form the pipeline taxonomy (see ErrorCode). They
// are mutually exclusive and the first one detected wins.
var (
	// ErrZeroVariance: some gene has zero standard deviation, so its correlations are undefined.
	ErrZeroVariance = errors.New("network: standard deviation of some genes is zero")

	// ErrUnrecognizedCorrelation: the correlation kind is not Pearson or Bicor.
	ErrUnrecognizedCorrelation = errors.New("network: unrecognized correlation type")

	// ErrRobustEstimatorFailure: bicor reported NA entries or failed pairs.
	ErrRobustEstimatorFailure = errors.New("network: robust correlation estimator reported missing values or failures")

	// ErrUnrecognizedAdjacency: the adjacency policy is outside the supported set.
	ErrUnrecognizedAdjacency = errors.New("network: unrecognized adjacency type")
)

// Errors outside the taxonomy: argument and resource checks.
var (
	// ErrUnrecognizedTOM: TOM type outside {none, unsigned, signed}, or none where a TOM is required.
	ErrUnrecognizedTOM = errors.New("network: unrecognized TOM type")

	// ErrUnrecognizedDenominator: denominator policy outside {min, mean}.
	ErrUnrecognizedDenominator = errors.New("network: unrecognized TOM denominator type")

	// ErrInvalidPower: the soft-threshold power is not a finite positive number.
	ErrInvalidPower = errors.New("network: power must be finite and > 0")

	// ErrAliasedBuffers: the output buffer shares storage with an input the kernel still reads.
	ErrAliasedBuffers = errors.New("network: output buffer aliases the input")

	// ErrMemoryBudget: the call would need more memory than the configured budget.
	ErrMemoryBudget = errors.New("network: memory budget exceeded")

	// ErrInvalidConfig: a Config field failed validation.
	ErrInvalidConfig = errors.New("network: invalid configuration")
)

// ErrorCode is the closed set of pipeline failures.
type ErrorCode int

const (
	CodeNone ErrorCode = iota
	CodeZeroVariance
	CodeUnrecognizedCorrelation
	CodeRobustEstimatorFailure
	CodeUnrecognizedAdjacency
)

var codeNames = [...]string{
	CodeNone:                    "none",
	CodeZeroVariance:            "zero_variance",
	CodeUnrecognizedCorrelation: "unrecognized_correlation",
	CodeRobustEstimatorFailure:  "robust_estimator_failure",
	CodeUnrecognizedAdjacency:   "unrecognized_adjacency",
}

var codeMessages = [...]string{
	CodeNone:                    "No error.",
	CodeZeroVariance:            "Standard deviation of some genes is zero.",
	CodeUnrecognizedCorrelation: "Unrecognized correlation type.",
	CodeRobustEstimatorFailure:  "Robust correlation estimator reported missing values or failures.",
	CodeUnrecognizedAdjacency:   "Unrecognized adjacency type.",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "unknown"
	}
	return codeNames[c]
}

// Message is the human-readable sentence for c.
func (c ErrorCode) Message() string {
	if c < 0 || int(c) >= len(codeMessages) {
		return "Unknown error."
	}
	return codeMessages[c]
}

// CodeOf classifies err. Nil and errors outside the taxonomy (shape,
// budget, aliasing) both map to CodeNone, so check err itself first.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeNone
	case errors.Is(err, ErrZeroVariance):
		return CodeZeroVariance
	case errors.Is(err, ErrUnrecognizedCorrelation):
		return CodeUnrecognizedCorrelation
	case errors.Is(err, ErrRobustEstimatorFailure):
		return CodeRobustEstimatorFailure
	case errors.Is(err, ErrUnrecognizedAdjacency):
		return CodeUnrecognizedAdjacency
	}
	return CodeNone
}
