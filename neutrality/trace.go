// SPDX-License-Identifier: MIT

package neutrality

import (
	"log/slog"

	"github.com/katalvlaran/neutrality/covariance"
	"github.com/katalvlaran/neutrality/matrix"
)

// Terms are the four summands of the neutral divergence; KL = ½·(sum).
type Terms struct {
	Trace       float64 // trace(N⁻¹·C)
	Mean        float64 // (μN−μ)ᵀ·N⁻¹·(μN−μ)
	Rank        float64 // −rank(C)
	Determinant float64 // log det N − log det C
	Fallback    bool    // Determinant came from the rescaled path
}

// Sum returns Trace + Mean + Rank + Determinant.
func (t Terms) Sum() float64 { return t.Trace + t.Mean + t.Rank + t.Determinant }

// Trace is the verbose diagnostic record of one neutral divergence.
// It never influences the returned value.
type Trace struct {
	CovarianceExcerpt [][]float64 // top-left block of C

	Terms Terms

	Determinant        float64 // det C (LU)
	NeutralDeterminant float64 // det N (LU on the materialized matrix)
	ClosedFormNeutral  float64 // (d−o)^S·(1 + S·o/(d−o))

	ScaledDeterminant        float64 // det(C / mean|C|)
	ScaledNeutralDeterminant float64 // det(N / mean|N|)

	PseudoDeterminant        float64 // product of non-zero eigenvalues of C
	NeutralPseudoDeterminant float64 // product of non-zero eigenvalues of N

	Eigenvalues        []float64 // eigenvalues of C, ascending
	NeutralEigenvalues []float64 // eigenvalues of N, ascending

	KL float64
}

// LogValue implements slog.LogValuer.
func (t *Trace) LogValue() slog.Value {
	if t == nil {
		return slog.Value{}
	}

	return slog.GroupValue(
		slog.Any("cov", t.CovarianceExcerpt),
		slog.Float64("trace", t.Terms.Trace),
		slog.Float64("rank", t.Terms.Rank),
		slog.Float64("mean", t.Terms.Mean),
		slog.Float64("determinant_term", t.Terms.Determinant),
		slog.Bool("fallback", t.Terms.Fallback),
		slog.Float64("det_scaled_neutral", t.ScaledNeutralDeterminant),
		slog.Float64("det_scaled", t.ScaledDeterminant),
		slog.Float64("det_neutral", t.NeutralDeterminant),
		slog.Float64("det", t.Determinant),
		slog.Float64("det_neutral_closed_form", t.ClosedFormNeutral),
		slog.Float64("pseudodet_neutral", t.NeutralPseudoDeterminant),
		slog.Float64("pseudodet", t.PseudoDeterminant),
		slog.Float64("kl", t.KL),
		slog.Any("eig", t.Eigenvalues),
	)
}

// buildTrace collects the diagnostic quantities for m. Only called in verbose mode.
func buildTrace(m *covariance.Model, terms Terms, kl float64, o options) (*Trace, error) {
	neutral := m.NeutralCov()

	tr := &Trace{
		CovarianceExcerpt: matrix.Excerpt(m.Cov, o.excerptSize),
		Terms:             terms,
		ClosedFormNeutral: m.Neutral.Det(),
		KL:                kl,
	}

	var err error
	if tr.Determinant, err = matrix.Det(m.Cov); err != nil {
		return nil, neutralityErrorf(opTrace, err)
	}
	if tr.NeutralDeterminant, err = matrix.Det(neutral); err != nil {
		return nil, neutralityErrorf(opTrace, err)
	}
	if tr.ScaledDeterminant, err = scaledDet(m.Cov, matrix.MeanAbs(m.Cov)); err != nil {
		return nil, neutralityErrorf(opTrace, err)
	}
	if tr.ScaledNeutralDeterminant, err = scaledDet(neutral, m.Neutral.MeanAbs()); err != nil {
		return nil, neutralityErrorf(opTrace, err)
	}
	if tr.Eigenvalues, err = matrix.SymEigenvalues(m.Cov); err != nil {
		return nil, neutralityErrorf(opTrace, err)
	}
	if tr.NeutralEigenvalues, err = matrix.SymEigenvalues(neutral); err != nil {
		return nil, neutralityErrorf(opTrace, err)
	}
	tr.PseudoDeterminant = matrix.PseudoDet(tr.Eigenvalues, o.rankTol)
	tr.NeutralPseudoDeterminant = matrix.PseudoDet(tr.NeutralEigenvalues, o.rankTol)

	return tr, nil
}
