// SPDX-License-Identifier: MIT

package correlation

import "errors"

// Every message is prefixed with "correlation: ..."; callers match with errors.Is.
var (
	// ErrZeroVariance is returned when some gene has zero standard deviation
	// (or no spread at all over its observed samples). Detected before any pair is computed.
	ErrZeroVariance = errors.New("correlation: standard deviation of some genes is zero")

	// ErrUnknownKind is returned for a Kind outside {Pearson, Bicor}.
	ErrUnknownKind = errors.New("correlation: unrecognized correlation type")

	// ErrTooFewSamples is returned when the expression matrix has fewer than two samples.
	ErrTooFewSamples = errors.New("correlation: at least two samples are required")

	// ErrInvalidOptions is returned for out-of-range knobs (MaxPOutliers, Quick, Fallback, Threads).
	ErrInvalidOptions = errors.New("correlation: invalid options")
)
