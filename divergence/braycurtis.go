// SPDX-License-Identifier: MIT

package divergence

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Operation name constants for unified error wrapping.
const (
	opBrayCurtis            = "BrayCurtis"
	opBrayCurtisStandard    = "BrayCurtisStandard"
	opBrayCurtisFromNeutral = "BrayCurtisFromNeutral"
	opBrayCurtisGap         = "BrayCurtisGap"
	opKullbackLeibler       = "KullbackLeibler"
	opJensenShannon         = "JensenShannon"
)

func divergenceErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkPair validates a pair of equal-length, non-empty vectors.
func checkPair(x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return ErrEmpty
	}
	if len(x) != len(y) {
		return ErrLengthMismatch
	}

	return nil
}

// BrayCurtis returns Σ|x−y| / Σ(x+y).
//
// For non-negative inputs the result lies in [0,1], is symmetric, and is 0
// exactly when x == y. When Σ(x+y) == 0 it returns NaN with ErrZeroTotal.
//
// Complexity: O(n).
func BrayCurtis(x, y []float64) (float64, error) {
	if err := checkPair(x, y); err != nil {
		return math.NaN(), divergenceErrorf(opBrayCurtis, err)
	}

	total := floats.Sum(x) + floats.Sum(y)
	if total == 0 {
		return math.NaN(), divergenceErrorf(opBrayCurtis, ErrZeroTotal)
	}

	return floats.Distance(x, y, 1) / total, nil
}

// BrayCurtisStandard returns the library-standard definition
// Σ|x−y| / Σ|x+y|, which also accepts signed inputs. It agrees with
// BrayCurtis whenever x and y are non-negative.
//
// Complexity: O(n).
func BrayCurtisStandard(x, y []float64) (float64, error) {
	if err := checkPair(x, y); err != nil {
		return math.NaN(), divergenceErrorf(opBrayCurtisStandard, err)
	}

	sum := make([]float64, len(x))
	floats.AddTo(sum, x, y)
	total := floats.Norm(sum, 1)
	if total == 0 {
		return math.NaN(), divergenceErrorf(opBrayCurtisStandard, ErrZeroTotal)
	}

	return floats.Distance(x, y, 1) / total, nil
}

// Uniform returns the neutral reference of length n: every entry 1/n.
func Uniform(n int) []float64 {
	u := make([]float64, n)
	for i := range u {
		u[i] = 1
	}
	floats.Scale(1/floats.Sum(u), u)

	return u
}

// BrayCurtisFromNeutral compares x against the neutral community in which
// every species has equal relative abundance (Uniform(len(x))), using
// BrayCurtisStandard.
func BrayCurtisFromNeutral(x []float64) (float64, error) {
	if len(x) == 0 {
		return math.NaN(), divergenceErrorf(opBrayCurtisFromNeutral, ErrEmpty)
	}

	d, err := BrayCurtisStandard(Uniform(len(x)), x)
	if err != nil {
		return math.NaN(), divergenceErrorf(opBrayCurtisFromNeutral, err)
	}

	return d, nil
}

// BrayCurtisGap returns BrayCurtisStandard(x,y) − BrayCurtis(x,y). The two
// definitions agree (gap 0) for non-negative inputs.
func BrayCurtisGap(x, y []float64) (float64, error) {
	std, err := BrayCurtisStandard(x, y)
	if err != nil {
		return math.NaN(), divergenceErrorf(opBrayCurtisGap, err)
	}
	plain, err := BrayCurtis(x, y)
	if err != nil {
		return math.NaN(), divergenceErrorf(opBrayCurtisGap, err)
	}

	return std - plain, nil
}
