// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/neutrality/matrix"
)

// ------------------------------
// CenterColumns / PopulationCovariance
// ------------------------------

func TestCenterColumns(t *testing.T) {
	t.Parallel()

	X := mat.NewDense(2, 3, []float64{1, 2, 3, 10, 20, 30})
	Xc, means, err := matrix.CenterColumns(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{5.5, 11, 16.5}, means, epsTight)
	for j := 0; j < 3; j++ {
		assert.InDelta(t, 0.0, Xc.At(0, j)+Xc.At(1, j), epsTight, "col %d not centered", j)
	}
	assert.Equal(t, 1.0, X.At(0, 0), "input must not be mutated")
}

func TestPopulationCovariance_Known(t *testing.T) {
	t.Parallel()

	// centered rows: [-1,-2], [1,2] → (1/2)·[[2,4],[4,8]]
	cov, means, err := matrix.PopulationCovariance(mat.NewDense(2, 2, []float64{1, 2, 3, 6}))
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2, 4}, means, epsTight)
	want := mat.NewSymDense(2, []float64{1, 2, 2, 4})
	assert.True(t, mat.EqualApprox(want, cov, epsTight), "got %v", mat.Formatted(cov))
}

// TestPopulationCovariance_DivisorT compares with gonum's unbiased estimator
// rescaled by (T−1)/T.
func TestPopulationCovariance_DivisorT(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(9, 9))
	const T, S = 40, 5
	X := randomDense(rng, T, S)

	cov, _, err := matrix.PopulationCovariance(X)
	require.NoError(t, err)

	var unbiased mat.SymDense
	stat.CovarianceMatrix(&unbiased, X, nil)
	unbiased.ScaleSym(float64(T-1)/float64(T), &unbiased)

	assert.True(t, mat.EqualApprox(&unbiased, cov, 1e-12))
}

func TestPopulationCovariance_SingleRow(t *testing.T) {
	t.Parallel()

	cov, _, err := matrix.PopulationCovariance(mat.NewDense(1, 3, []float64{1, 2, 3}))
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewSymDense(3, nil), cov), "one observation has zero covariance")
}

func TestPopulationCovariance_Nil(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.PopulationCovariance(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// ------------------------------
// Diagonal / off-diagonal reductions
// ------------------------------

func TestDiagonalMean(t *testing.T) {
	t.Parallel()

	A := mat.NewSymDense(3, []float64{
		1, 2, 3,
		2, 5, 6,
		3, 6, 9,
	})
	assert.InDelta(t, 5.0, matrix.DiagonalMean(A), epsTight)
	// Σ_{i≠j} A[i,j] = 2·(2+3+6)
	assert.InDelta(t, 22.0, mat.Sum(matrix.ZeroDiagonal(A)), epsTight)
}

func TestZeroDiagonal_DoesNotMutate(t *testing.T) {
	t.Parallel()

	A := mat.NewSymDense(2, []float64{3, 1, 1, 4})
	Z := matrix.ZeroDiagonal(A)

	assert.Equal(t, 0.0, Z.At(0, 0))
	assert.Equal(t, 0.0, Z.At(1, 1))
	assert.Equal(t, 1.0, Z.At(0, 1))
	assert.Equal(t, 3.0, A.At(0, 0), "original keeps its diagonal")
	assert.Equal(t, 4.0, A.At(1, 1))
}
