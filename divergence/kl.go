// SPDX-License-Identifier: MIT

package divergence

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/neutrality/outcome"
)

// KullbackLeibler returns Σ x_i·log(x_i/y_i) (natural log).
//
// Behavior highlights:
//   - Any y_i == 0 makes the reference invalid: the Result is undefined
//     (outcome.KindInvalidReference) and no division is attempted.
//   - Terms with x_i == 0 contribute 0.
//   - A negative sum (possible for vectors that are not normalized, or from
//     rounding) is clamped to 0 and tagged with
//     outcome.WarnNegativeDivergenceClamped.
//
// Errors (malformed input only): ErrEmpty, ErrLengthMismatch.
//
// Complexity: O(n).
func KullbackLeibler(x, y []float64) (outcome.Result, error) {
	if err := checkPair(x, y); err != nil {
		return outcome.Result{}, divergenceErrorf(opKullbackLeibler, err)
	}

	for i, v := range y {
		if v == 0 {
			return outcome.Undefined(outcome.KindInvalidReference,
				"reference distribution has a zero entry at index "+strconv.Itoa(i)), nil
		}
	}

	kl := stat.KullbackLeibler(x, y)
	if kl < 0 {
		return outcome.Defined(0, outcome.Warnf(outcome.WarnNegativeDivergenceClamped,
			"KL sum %g is negative; reported as 0", kl)), nil
	}

	return outcome.Defined(kl), nil
}

// JensenShannon returns sqrt(½·KL(x,m) + ½·KL(y,m)) with m = (x+y)/2.
//
// The result is undefined when either KL is undefined (e.g. x_i = y_i = 0
// leaves m_i = 0); warnings of both halves are carried over.
//
// Errors (malformed input only): ErrEmpty, ErrLengthMismatch.
func JensenShannon(x, y []float64) (outcome.Result, error) {
	if err := checkPair(x, y); err != nil {
		return outcome.Result{}, divergenceErrorf(opJensenShannon, err)
	}

	m := make([]float64, len(x))
	floats.AddTo(m, x, y)
	floats.Scale(0.5, m)

	left, err := KullbackLeibler(x, m)
	if err != nil {
		return left, divergenceErrorf(opJensenShannon, err)
	}
	right, err := KullbackLeibler(y, m)
	if err != nil {
		return right, divergenceErrorf(opJensenShannon, err)
	}

	var res outcome.Result
	lv, lok := left.Value()
	rv, rok := right.Value()
	switch {
	case !lok:
		res = outcome.Undefined(left.Kind(), left.Reason())
	case !rok:
		res = outcome.Undefined(right.Kind(), right.Reason())
	default:
		res = outcome.Defined(math.Sqrt(0.5*lv + 0.5*rv))
	}

	return res.WithWarnings(left.Warnings()...).WithWarnings(right.Warnings()...), nil
}
