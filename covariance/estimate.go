// SPDX-License-Identifier: MIT

package covariance

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/neutrality/matrix"
	"github.com/katalvlaran/neutrality/series"
)

// ErrDegenerateSeries indicates a series whose every value equals the first
// one: there is no variance to compare against the neutral model.
var ErrDegenerateSeries = errors.New("covariance: degenerate series (all values equal)")

// ErrEmptySeries indicates the zero Series.
var ErrEmptySeries = errors.New("covariance: empty series")

const opEstimate = "Estimate"

// Model is the Gaussian description of a series and its neutral projection.
// All fields are read-only after Estimate returns.
type Model struct {
	S int // species
	T int // time steps

	Mean        []float64     // per-species time average
	NeutralMean float64       // average of Mean, broadcast to every species
	Cov         *mat.SymDense // population covariance (divisor T)

	// Neutral is the exchangeable covariance predicted by neutral theory:
	// Diag = mean of Cov's diagonal, Off = mean of Cov's off-diagonal entries.
	Neutral matrix.Exchangeable
}

// Estimate computes the mean vector, the population covariance and the
// neutral covariance of s.
//
// Errors:
//   - ErrEmptySeries for the zero Series.
//   - ErrDegenerateSeries when every value equals the first one; no matrix
//     algebra is attempted in that case.
//
// Complexity: O(T·S²).
func Estimate(s series.Series) (*Model, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", opEstimate, ErrEmptySeries)
	}
	if s.IsConstant() {
		return nil, fmt.Errorf("%s: %w", opEstimate, ErrDegenerateSeries)
	}

	cov, mean, err := matrix.PopulationCovariance(s.Matrix())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}

	m := &Model{
		S:           s.Species(),
		T:           s.Len(),
		Mean:        mean,
		NeutralMean: floats.Sum(mean) / float64(len(mean)),
		Cov:         cov,
	}

	// With the diagonal zeroed the total is exactly Σ_{i≠j} Cov[i,j].
	off := mat.Sum(m.ZeroDiagonal()) / float64(m.S*(m.S-1))
	m.Neutral, err = matrix.NewExchangeable(m.S, matrix.DiagonalMean(cov), off)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEstimate, err)
	}

	return m, nil
}

// NeutralMeanVector returns NeutralMean broadcast to length S.
func (m *Model) NeutralMeanVector() []float64 {
	v := make([]float64, m.S)
	for i := range v {
		v[i] = m.NeutralMean
	}

	return v
}

// MeanGap returns NeutralMean − Mean[i] for every species.
func (m *Model) MeanGap() []float64 {
	gap := m.NeutralMeanVector()
	floats.Sub(gap, m.Mean)

	return gap
}

// ZeroDiagonal returns a fresh copy of Cov with its diagonal zeroed.
func (m *Model) ZeroDiagonal() *mat.SymDense { return matrix.ZeroDiagonal(m.Cov) }

// NeutralCov materializes the neutral covariance as a fresh matrix.
func (m *Model) NeutralCov() *mat.SymDense { return m.Neutral.Dense() }
