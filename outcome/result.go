// SPDX-License-Identifier: MIT

// Package outcome defines the discriminated result shared by the divergence
// estimators: either a defined scalar, or an explicit undefined marker that
// names why no value exists. Both variants may carry warnings.
//
// A Result is never a bare NaN or zero: callers check IsDefined (or the ok
// flag of Value) before trusting the number.
package outcome

import (
	"fmt"
	"log/slog"
	"math"
)

// Kind discriminates a Result.
type Kind int

const (
	// KindUnset is the zero Kind; a zero Result is undefined.
	KindUnset Kind = iota

	// KindDefined marks a Result that carries a value.
	KindDefined

	// KindDegenerateInput marks an undefined result for a constant series.
	KindDegenerateInput

	// KindInvalidReference marks an undefined result for a reference
	// distribution containing a zero entry.
	KindInvalidReference
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindDefined:
		return "defined"
	case KindDegenerateInput:
		return "degenerate-input"
	case KindInvalidReference:
		return "invalid-reference"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const panicUndefinedKind = "outcome: Undefined requires a non-defined kind"

// Result is an immutable divergence outcome.
// The zero value is undefined (KindUnset), so an uninitialized Result can
// never be mistaken for a valid zero.
type Result struct {
	value    float64
	kind     Kind
	reason   string
	warnings []Warning
}

// Defined returns a Result holding v.
func Defined(v float64, warnings ...Warning) Result {
	return Result{value: v, kind: KindDefined, warnings: cloneWarnings(warnings)}
}

// Undefined returns a Result without a value. kind must name a failure;
// KindDefined or KindUnset is a programmer error and panics.
func Undefined(kind Kind, reason string, warnings ...Warning) Result {
	if kind == KindDefined || kind == KindUnset {
		panic(panicUndefinedKind)
	}

	return Result{value: math.NaN(), kind: kind, reason: reason, warnings: cloneWarnings(warnings)}
}

// IsDefined reports whether the Result carries a value.
// A defined value may still be non-finite; see WarnNonFiniteDivergence.
func (r Result) IsDefined() bool { return r.kind == KindDefined }

// Value returns the scalar and whether it is defined.
func (r Result) Value() (float64, bool) {
	if !r.IsDefined() {
		return math.NaN(), false
	}

	return r.value, true
}

// Float returns the scalar, or NaN when undefined.
func (r Result) Float() float64 {
	v, _ := r.Value()

	return v
}

// Kind returns the discriminant.
func (r Result) Kind() Kind { return r.kind }

// Reason returns the human-readable cause of an undefined result ("" when defined).
func (r Result) Reason() string { return r.reason }

// Warnings returns a copy of the attached warnings.
func (r Result) Warnings() []Warning { return cloneWarnings(r.warnings) }

// HasWarning reports whether a warning with the given code is attached.
func (r Result) HasWarning(code WarningCode) bool {
	for _, w := range r.warnings {
		if w.Code == code {
			return true
		}
	}

	return false
}

// WithWarnings returns a copy of r with ws appended.
func (r Result) WithWarnings(ws ...Warning) Result {
	out := r
	out.warnings = append(cloneWarnings(r.warnings), ws...)

	return out
}

// String implements fmt.Stringer.
func (r Result) String() string {
	if v, ok := r.Value(); ok {
		return fmt.Sprintf("%g", v)
	}

	return fmt.Sprintf("undefined(%s: %s)", r.kind, r.reason)
}

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", r.kind.String())}
	if v, ok := r.Value(); ok {
		attrs = append(attrs, slog.Float64("value", v))
	} else {
		attrs = append(attrs, slog.String("reason", r.reason))
	}
	if len(r.warnings) > 0 {
		codes := make([]string, len(r.warnings))
		for i, w := range r.warnings {
			codes[i] = w.Code.String()
		}
		attrs = append(attrs, slog.Any("warnings", codes))
	}

	return slog.GroupValue(attrs...)
}

func cloneWarnings(ws []Warning) []Warning {
	if len(ws) == 0 {
		return nil
	}

	return append([]Warning(nil), ws...)
}
