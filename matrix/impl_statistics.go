// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics used by the covariance estimator
//     (centering, population covariance, diagonal mean, zero-diagonal copy) as
//     deterministic compositions over gonum kernels.
//
// Exposed API:
//   - ColumnMeans(X)          -> means               // per-column time average
//   - CenterColumns(X)        -> (Xc, means)         // subtract per-column mean
//   - PopulationCovariance(X) -> (Cov, means)        // (Xcᵀ Xc)/r, divisor r (not r-1)
//   - DiagonalMean(A)         -> mean of A[i,i]
//   - ZeroDiagonal(A)         -> copy of A with a zeroed diagonal
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Inputs are never mutated; every result is a fresh allocation.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opColumnMeans          = "ColumnMeans"
	opCenterColumns        = "CenterColumns"
	opPopulationCovariance = "PopulationCovariance"
)

// ColumnMeans returns the unweighted mean of each column of X (r×c).
//
// Errors:
//   - ErrNilMatrix, ErrBadShape.
//
// Complexity: O(r*c).
func ColumnMeans(X mat.Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Dims()

	means := make([]float64, c)
	col := make([]float64, r) // reused per column
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		means[j] = stat.Mean(col, nil)
	}

	return means, nil
}

// CenterColumns subtracts the per-column mean from every element.
//
// Returns:
//   - *mat.Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Errors:
//   - ErrNilMatrix, ErrBadShape.
//
// Complexity: O(r*c).
func CenterColumns(X mat.Matrix) (*mat.Dense, []float64, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Dims()

	Xc := mat.NewDense(r, c, nil)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			Xc.Set(i, j, X.At(i, j)-means[j])
		}
	}

	return Xc, means, nil
}

// PopulationCovariance computes Cov = (Xcᵀ Xc)/r over the rows of X.
//
// Behavior highlights:
//   - Divisor is the number of observations r, not r−1, so a single row
//     yields the zero matrix instead of a division by zero.
//   - Symmetric output stored as *mat.SymDense.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape.
//
// Complexity: O(r*c²).
func PopulationCovariance(X mat.Matrix) (*mat.SymDense, []float64, error) {
	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opPopulationCovariance, err)
	}
	r, _ := X.Dims()

	cov := new(mat.SymDense)
	cov.SymOuterK(1/float64(r), Xc.T())

	return cov, means, nil
}

// DiagonalMean returns the mean of the diagonal entries of a symmetric matrix.
// An empty matrix yields NaN.
func DiagonalMean(A mat.Symmetric) float64 {
	if ValidateNotNil(A) != nil {
		return math.NaN()
	}
	n := A.SymmetricDim()

	var sum float64
	for i := 0; i < n; i++ {
		sum += A.At(i, i)
	}

	return sum / float64(n)
}

// ZeroDiagonal returns a copy of A whose diagonal is set to zero.
// A itself is left untouched. A nil or empty A yields nil.
func ZeroDiagonal(A mat.Symmetric) *mat.SymDense {
	if ValidateNotNil(A) != nil {
		return nil
	}
	out := mat.NewSymDense(A.SymmetricDim(), nil)
	out.CopySym(A)
	for i := 0; i < out.SymmetricDim(); i++ {
		out.SetSym(i, i, 0)
	}

	return out
}
