// SPDX-License-Identifier: MIT

package divergence_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/neutrality/divergence"
)

// randomAbundances returns n non-negative draws, some of them exactly zero.
func randomAbundances(rng *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		if rng.IntN(5) == 0 {
			continue
		}
		x[i] = rng.Float64() * 100
	}
	x[0] += 1 // keep the total positive

	return x
}

func TestBrayCurtis_Known(t *testing.T) {
	t.Parallel()

	d, err := divergence.BrayCurtis([]float64{1, 2, 3}, []float64{3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 4.0/12.0, d, 1e-15)

	d, err = divergence.BrayCurtis([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d, "disjoint communities are maximally distant")
}

// TestBrayCurtis_Properties checks bounds, symmetry and identity on random
// non-negative vectors.
func TestBrayCurtis_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 1))
	for k := 0; k < 200; k++ {
		n := 1 + rng.IntN(20)
		x := randomAbundances(rng, n)
		y := randomAbundances(rng, n)

		dxy, err := divergence.BrayCurtis(x, y)
		require.NoError(t, err)
		dyx, err := divergence.BrayCurtis(y, x)
		require.NoError(t, err)
		dxx, err := divergence.BrayCurtis(x, x)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, dxy, 0.0)
		assert.LessOrEqual(t, dxy, 1.0+1e-12)
		assert.Equal(t, dxy, dyx)
		assert.Equal(t, 0.0, dxx)

		gap, err := divergence.BrayCurtisGap(x, y)
		require.NoError(t, err)
		assert.Equal(t, 0.0, gap, "definitions agree for non-negative input")
	}
}

func TestBrayCurtis_Errors(t *testing.T) {
	t.Parallel()

	_, err := divergence.BrayCurtis(nil, []float64{1})
	assert.ErrorIs(t, err, divergence.ErrEmpty)

	_, err = divergence.BrayCurtis([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, divergence.ErrLengthMismatch)

	d, err := divergence.BrayCurtis([]float64{0, 0}, []float64{0, 0})
	assert.ErrorIs(t, err, divergence.ErrZeroTotal)
	assert.True(t, math.IsNaN(d))
}

func TestBrayCurtisStandard_Signed(t *testing.T) {
	t.Parallel()

	x := []float64{-1, 2}
	y := []float64{1, -4}

	// Σ|x−y| = 2+6 = 8, Σ|x+y| = 0+2 = 2, Σ(x+y) = -2.
	std, err := divergence.BrayCurtisStandard(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, std, 1e-15)

	gap, err := divergence.BrayCurtisGap(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, gap, 1e-15, "plain form divides by the signed total")
}

// TestBrayCurtisStandard_SignedZeroSum has Σ(x+y) = 0 but Σ|x+y| = 4: only
// the plain form is undefined.
func TestBrayCurtisStandard_SignedZeroSum(t *testing.T) {
	t.Parallel()

	x := []float64{2, -1}
	y := []float64{0, -1}

	std, err := divergence.BrayCurtisStandard(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, std, 1e-15)

	_, err = divergence.BrayCurtis(x, y)
	assert.ErrorIs(t, err, divergence.ErrZeroTotal)

	_, err = divergence.BrayCurtisGap(x, y)
	assert.ErrorIs(t, err, divergence.ErrZeroTotal)
}

func TestBrayCurtisFromNeutral(t *testing.T) {
	t.Parallel()

	u := divergence.Uniform(4)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, u, 1e-15)

	d, err := divergence.BrayCurtisFromNeutral(u)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = divergence.BrayCurtisFromNeutral([]float64{1, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.5/2.0, d, 1e-15)

	_, err = divergence.BrayCurtisFromNeutral(nil)
	assert.ErrorIs(t, err, divergence.ErrEmpty)
}
