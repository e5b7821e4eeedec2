// SPDX-License-Identifier: MIT
// Package matrix provides the dense linear-algebra primitives the divergence
// estimators rely on, expressed over gonum's mat types.
//
// Exposed API:
//   - Det(m)              -> det via pivoted LU
//   - Inverse(m)          -> (inv, illConditioned)       // ErrSingular on zero pivot
//   - Rank(m, tol)        -> numerical rank via SVD       // tol<0 selects the default
//   - SymEigenvalues(m)   -> ascending eigenvalues
//   - PseudoDet(eigs,tol) -> product of eigenvalues with |λ|>tol
//   - TraceProduct(a,b)   -> trace(a·b) without materializing a·b
//   - QuadForm(x,a)       -> xᵀ·a·x
//   - MeanAbs(m)          -> mean of |m[i,j]|
//   - Scaled(m, alpha)    -> fresh alpha·m
//   - Excerpt(m, k)       -> top-left k×k block as [][]float64
//
// Determinism & Policy:
//   - All helpers return fresh values; inputs are never mutated.
//   - Shape violations are reported as sentinels before gonum is called.

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// machEps is the float64 machine epsilon, 2⁻⁵².
const machEps = 0x1p-52

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opDet            = "Det"
	opInverse        = "Inverse"
	opRank           = "Rank"
	opSymEigenvalues = "SymEigenvalues"
	opTraceProduct   = "TraceProduct"
	opQuadForm       = "QuadForm"
	opScaled         = "Scaled"
)

// matrixErrorf wraps err with an operation tag.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Det returns the determinant of a square matrix using gonum's pivoted LU.
//
// The value is formed as sign·exp(log|det|), so very large or very small
// determinants overflow to ±Inf or underflow to 0 exactly as a direct
// computation would; callers that need stability work in log space.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape, ErrNonSquare.
//
// Complexity: O(n³) time, O(n²) memory.
func Det(m mat.Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return math.NaN(), matrixErrorf(opDet, err)
	}

	return mat.Det(m), nil
}

// Inverse computes m⁻¹ with partial pivoting.
//
// Behavior highlights:
//   - Exactly singular input (zero pivot) yields ErrSingular.
//   - Near-singular input still returns the computed inverse, with
//     illConditioned=true; gonum signals this through a mat.Condition error
//     whose estimate exceeds mat.ConditionTolerance.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape, ErrNonSquare, ErrSingular.
//
// Complexity: O(n³) time, O(n²) memory.
func Inverse(m mat.Matrix) (inv *mat.Dense, illConditioned bool, err error) {
	if err = ValidateSquare(m); err != nil {
		return nil, false, matrixErrorf(opInverse, err)
	}

	inv = new(mat.Dense)
	if ierr := inv.Inverse(m); ierr != nil {
		var cond mat.Condition
		if errors.As(ierr, &cond) && !math.IsInf(float64(cond), 1) {
			return inv, true, nil
		}
		return nil, false, matrixErrorf(opInverse, ErrSingular)
	}

	return inv, false, nil
}

// DefaultRankTolerance reproduces the conventional SVD rank threshold
// σmax · max(r, c) · ε for singular values sv sorted in descending order.
func DefaultRankTolerance(sv []float64, r, c int) float64 {
	if len(sv) == 0 {
		return 0
	}

	return sv[0] * float64(max(r, c)) * machEps
}

// Rank returns the numerical rank of m: the number of singular values
// strictly greater than tol. A negative tol selects DefaultRankTolerance.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape, ErrSVDFailed.
//
// Complexity: O(min(r,c)·r·c).
func Rank(m mat.Matrix, tol float64) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opRank, err)
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDNone); !ok {
		return 0, matrixErrorf(opRank, ErrSVDFailed)
	}
	sv := svd.Values(nil) // descending

	r, c := m.Dims()
	if tol < 0 {
		tol = DefaultRankTolerance(sv, r, c)
	}

	rank := 0
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}

	return rank, nil
}

// SymEigenvalues returns the eigenvalues of a symmetric matrix in ascending order.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape, ErrEigenFailed.
//
// Complexity: O(n³).
func SymEigenvalues(m mat.Symmetric) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSymEigenvalues, err)
	}

	var es mat.EigenSym
	if ok := es.Factorize(m, false); !ok {
		return nil, matrixErrorf(opSymEigenvalues, ErrEigenFailed)
	}

	return es.Values(nil), nil
}

// PseudoDet returns the product of the eigenvalues whose magnitude exceeds tol.
// A negative tol selects max|λ| · len(eigs) · ε. With no surviving eigenvalue
// the empty product 1 is returned.
func PseudoDet(eigs []float64, tol float64) float64 {
	if tol < 0 {
		var top float64
		for _, v := range eigs {
			top = math.Max(top, math.Abs(v))
		}
		tol = top * float64(len(eigs)) * machEps
	}

	prod := 1.0
	for _, v := range eigs {
		if math.Abs(v) > tol {
			prod *= v
		}
	}

	return prod
}

// TraceProduct returns trace(a·b) = Σ_i Σ_k a[i,k]·b[k,i] without forming a·b.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape, ErrDimensionMismatch (a is r×k, b must be k×r).
//
// Complexity: O(r·k).
func TraceProduct(a, b mat.Matrix) (float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return math.NaN(), matrixErrorf(opTraceProduct, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return math.NaN(), matrixErrorf(opTraceProduct, err)
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br || ar != bc {
		return math.NaN(), matrixErrorf(opTraceProduct, ErrDimensionMismatch)
	}

	var i, k int
	var sum float64
	for i = 0; i < ar; i++ {
		for k = 0; k < ac; k++ {
			sum += a.At(i, k) * b.At(k, i)
		}
	}

	return sum, nil
}

// QuadForm returns xᵀ·a·x for a square a.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape, ErrNonSquare, ErrDimensionMismatch.
func QuadForm(x []float64, a mat.Matrix) (float64, error) {
	if err := ValidateSquare(a); err != nil {
		return math.NaN(), matrixErrorf(opQuadForm, err)
	}
	n, _ := a.Dims()
	if err := ValidateVecLen(x, n); err != nil {
		return math.NaN(), matrixErrorf(opQuadForm, err)
	}

	v := mat.NewVecDense(n, x)

	return mat.Inner(v, a, v), nil
}

// MeanAbs returns the arithmetic mean of |m[i,j]| over all entries.
// A nil or empty matrix yields NaN.
func MeanAbs(m mat.Matrix) float64 {
	if ValidateNotNil(m) != nil {
		return math.NaN()
	}
	r, c := m.Dims()

	var i, j int
	var sum float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			sum += math.Abs(m.At(i, j))
		}
	}

	return sum / float64(r*c)
}

// Scaled returns a fresh alpha·m; m is not mutated.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape.
func Scaled(m mat.Matrix, alpha float64) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScaled, err)
	}

	out := new(mat.Dense)
	out.Scale(alpha, m)

	return out, nil
}

// Excerpt copies the top-left min(k,r)×min(k,c) block of m into nested slices.
// Intended for diagnostics; nil or empty input yields nil.
func Excerpt(m mat.Matrix, k int) [][]float64 {
	if ValidateNotNil(m) != nil || k <= 0 {
		return nil
	}
	r, c := m.Dims()
	r, c = min(r, k), min(c, k)

	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = m.At(i, j)
		}
	}

	return out
}
