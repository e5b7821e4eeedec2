// SPDX-License-Identifier: MIT

package neutrality_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/katalvlaran/neutrality/covariance"
	"github.com/katalvlaran/neutrality/matrix"
	"github.com/katalvlaran/neutrality/series"
)

// sampleSeries draws T rows from N(mu, sigma) with a fixed seed.
func sampleSeries(t *testing.T, seed uint64, mu []float64, sigma mat.Symmetric, T int) series.Series {
	t.Helper()

	dist, ok := distmv.NewNormal(mu, sigma, rand.NewPCG(seed, seed+1))
	require.True(t, ok, "sigma must be positive definite")

	rows := make([][]float64, T)
	for i := range rows {
		rows[i] = dist.Rand(nil)
	}
	s, err := series.FromRows(rows)
	require.NoError(t, err)

	return s
}

// structuredSeries has unequal means, unequal variances and one correlated pair.
func structuredSeries(t *testing.T, seed uint64) series.Series {
	t.Helper()

	mu := []float64{80, 90, 100, 110, 120}
	sigma := mat.NewSymDense(5, []float64{
		4, 3, 0, 0, 0,
		3, 9, 0, 0, 0,
		0, 0, 16, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 25,
	})

	return sampleSeries(t, seed, mu, sigma, 1000)
}

// neutralSeries is drawn from the neutral model itself: equal means and an
// exchangeable covariance.
func neutralSeries(t *testing.T, seed uint64) series.Series {
	t.Helper()

	e, err := matrix.NewExchangeable(5, 4, 1)
	require.NoError(t, err)

	return sampleSeries(t, seed, []float64{100, 100, 100, 100, 100}, e.Dense(), 1000)
}

// scaledNoiseSeries returns level + spread·N(0,1) in every cell.
func scaledNoiseSeries(t *testing.T, seed uint64, T, S int, level, spread float64) series.Series {
	t.Helper()

	rng := rand.New(rand.NewPCG(seed, seed+1))
	rows := make([][]float64, T)
	for i := range rows {
		rows[i] = make([]float64, S)
		for j := range rows[i] {
			rows[i][j] = level + spread*rng.NormFloat64()
		}
	}
	s, err := series.FromRows(rows)
	require.NoError(t, err)

	return s
}

func constantSeries(t *testing.T) series.Series {
	t.Helper()

	rows := make([][]float64, 10)
	for i := range rows {
		rows[i] = []float64{5, 5, 5}
	}
	s, err := series.FromRows(rows)
	require.NoError(t, err)

	return s
}

func singularNeutralSeries(t *testing.T) series.Series {
	t.Helper()

	s, err := series.FromRows([][]float64{{1, 1}, {2, 2}, {3, 3}})
	require.NoError(t, err)

	return s
}

func mustModel(t *testing.T, s series.Series) *covariance.Model {
	t.Helper()
	m, err := covariance.Estimate(s)
	require.NoError(t, err)

	return m
}

// referenceKL is the closed-form Gaussian KL from gonum's distmv, valid when
// the observed covariance is full rank.
func referenceKL(t *testing.T, m *covariance.Model) float64 {
	t.Helper()

	observed, ok := distmv.NewNormal(m.Mean, m.Cov, nil)
	require.True(t, ok)
	neutral, ok := distmv.NewNormal(m.NeutralMeanVector(), m.NeutralCov(), nil)
	require.True(t, ok)

	return distmv.KullbackLeibler{}.DistNormal(observed, neutral)
}
