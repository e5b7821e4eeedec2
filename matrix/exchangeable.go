// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const opNewExchangeable = "NewExchangeable"

// Exchangeable is an n×n equicorrelation matrix: Diag on the diagonal and Off
// everywhere else, i.e. (Diag−Off)·I + Off·11ᵀ.
//
// The rank-one-plus-diagonal structure gives closed forms for the determinant
// and for singularity, which avoid materializing the matrix at all.
type Exchangeable struct {
	N    int     // order, N ≥ 2
	Diag float64 // d
	Off  float64 // o
}

// NewExchangeable validates and returns an exchangeable matrix descriptor.
//
// Errors:
//   - ErrBadShape if n < 2.
//   - ErrNaNInf if diag or off is not finite.
func NewExchangeable(n int, diag, off float64) (Exchangeable, error) {
	if n < 2 {
		return Exchangeable{}, matrixErrorf(fmt.Sprintf("%s: n=%d", opNewExchangeable, n), ErrBadShape)
	}
	if math.IsNaN(diag) || math.IsInf(diag, 0) || math.IsNaN(off) || math.IsInf(off, 0) {
		return Exchangeable{}, matrixErrorf(opNewExchangeable, ErrNaNInf)
	}

	return Exchangeable{N: n, Diag: diag, Off: off}, nil
}

// Det returns (d−o)^n · (1 + n·o/(d−o)).
//
// The power is taken directly, so for large n or large magnitudes the value
// overflows to ±Inf (or underflows to 0) just like a naive determinant would.
// Returns NaN when d == o; check Singular first.
func (e Exchangeable) Det() float64 {
	gap := e.Diag - e.Off
	n := float64(e.N)

	return math.Pow(gap, n) * (1 + n*e.Off/gap)
}

// Singular reports whether the matrix has a zero eigenvalue: d == o
// (eigenvalue d−o, multiplicity n−1) or d + (n−1)·o == 0 (eigenvalue along 11ᵀ).
func (e Exchangeable) Singular() bool {
	return e.Diag == e.Off || e.Diag+float64(e.N-1)*e.Off == 0
}

// MeanAbs returns the mean absolute entry without materializing the matrix.
func (e Exchangeable) MeanAbs() float64 {
	n := float64(e.N)

	return (n*math.Abs(e.Diag) + n*(n-1)*math.Abs(e.Off)) / (n * n)
}

// Dense materializes the matrix as a fresh *mat.SymDense.
// Complexity: O(n²).
func (e Exchangeable) Dense() *mat.SymDense {
	data := make([]float64, e.N*e.N)
	for i := range data {
		data[i] = e.Off
	}
	for i := 0; i < e.N; i++ {
		data[i*e.N+i] = e.Diag
	}

	return mat.NewSymDense(e.N, data)
}
