// SPDX-License-Identifier: MIT

package outcome

import "fmt"

// WarningCode classifies a recoverable condition that did not prevent a result.
type WarningCode int

const (
	// WarnNegativeDivergenceClamped: a pairwise KL sum came out negative and
	// was reported as 0.
	WarnNegativeDivergenceClamped WarningCode = iota + 1

	// WarnNumericFallback: the naive log-determinant term was not finite and
	// was recomputed on rescaled matrices.
	WarnNumericFallback

	// WarnNegativeNeutralDivergence: the neutral Gaussian KL is negative and
	// is surfaced unclamped.
	WarnNegativeNeutralDivergence

	// WarnNonFiniteDivergence: the neutral Gaussian KL is ±Inf or NaN even
	// after the rescaled fallback (e.g. a singular observed covariance).
	WarnNonFiniteDivergence

	// WarnIllConditioned: a matrix inverse was computed on a near-singular input.
	WarnIllConditioned
)

// String implements fmt.Stringer.
func (c WarningCode) String() string {
	switch c {
	case WarnNegativeDivergenceClamped:
		return "negative-divergence-clamped"
	case WarnNumericFallback:
		return "numeric-fallback"
	case WarnNegativeNeutralDivergence:
		return "negative-neutral-divergence"
	case WarnNonFiniteDivergence:
		return "non-finite-divergence"
	case WarnIllConditioned:
		return "ill-conditioned"
	default:
		return fmt.Sprintf("warning(%d)", int(c))
	}
}

// Warning is one diagnostic note attached to a Result.
type Warning struct {
	Code    WarningCode
	Message string
}

// Warnf builds a Warning with a formatted message.
func Warnf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// String implements fmt.Stringer.
func (w Warning) String() string { return w.Code.String() + ": " + w.Message }
