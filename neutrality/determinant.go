// SPDX-License-Identifier: MIT

package neutrality

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/neutrality/matrix"
)

// NaiveDeterminantTerm returns log(det N) − log(det C), with det N taken from
// the closed form of the exchangeable neutral matrix and det C from LU.
//
// Nothing is done to protect against overflow: for large S or large
// magnitudes either determinant saturates to ±Inf or 0 and the term becomes
// non-finite. DeterminantTerm detects that and falls back.
//
// Errors: matrix validation errors for cov.
func NaiveDeterminantTerm(neutral matrix.Exchangeable, cov mat.Matrix) (float64, error) {
	detC, err := matrix.Det(cov)
	if err != nil {
		return math.NaN(), neutralityErrorf(opNaiveDetTerm, err)
	}

	return math.Log(neutral.Det()) - math.Log(detC), nil
}

// RescaledDeterminantTerm returns
//
//	S·(log a_N − log a_C) + log det(N/a_N) − log det(C/a_C)
//
// where a_X = mean|X| over all entries. It equals NaiveDeterminantTerm
// mathematically, but each rescaled matrix has entries of order 1 so the
// determinants stay representable.
//
// Errors: matrix validation errors; ErrDimensionMismatch if the orders differ.
func RescaledDeterminantTerm(neutral, cov mat.Matrix) (float64, error) {
	if err := matrix.ValidateSquare(neutral); err != nil {
		return math.NaN(), neutralityErrorf(opRescaledDetTerm, err)
	}
	if err := matrix.ValidateSquare(cov); err != nil {
		return math.NaN(), neutralityErrorf(opRescaledDetTerm, err)
	}
	n, _ := neutral.Dims()
	if c, _ := cov.Dims(); c != n {
		return math.NaN(), neutralityErrorf(opRescaledDetTerm, matrix.ErrDimensionMismatch)
	}

	scaleN := matrix.MeanAbs(neutral)
	scaleC := matrix.MeanAbs(cov)

	detN, err := scaledDet(neutral, scaleN)
	if err != nil {
		return math.NaN(), neutralityErrorf(opRescaledDetTerm, err)
	}
	detC, err := scaledDet(cov, scaleC)
	if err != nil {
		return math.NaN(), neutralityErrorf(opRescaledDetTerm, err)
	}

	return float64(n)*(math.Log(scaleN)-math.Log(scaleC)) + math.Log(detN) - math.Log(detC), nil
}

// scaledDet returns det(m/scale).
func scaledDet(m mat.Matrix, scale float64) (float64, error) {
	s, err := matrix.Scaled(m, 1/scale)
	if err != nil {
		return math.NaN(), err
	}

	return matrix.Det(s)
}

// DeterminantTerm returns the naive term when it is finite, otherwise the
// rescaled one; fallback reports which path produced the value.
func DeterminantTerm(neutral matrix.Exchangeable, cov mat.Matrix) (term float64, fallback bool, err error) {
	term, err = NaiveDeterminantTerm(neutral, cov)
	if err != nil {
		return math.NaN(), false, err
	}
	if !math.IsNaN(term) && !math.IsInf(term, 0) {
		return term, false, nil
	}

	term, err = RescaledDeterminantTerm(neutral.Dense(), cov)
	if err != nil {
		return math.NaN(), true, err
	}

	return term, true, nil
}
