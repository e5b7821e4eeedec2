// SPDX-License-Identifier: MIT

package neutrality

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/neutrality/covariance"
	"github.com/katalvlaran/neutrality/matrix"
	"github.com/katalvlaran/neutrality/outcome"
	"github.com/katalvlaran/neutrality/series"
)

// Report is the outcome of one neutral divergence evaluation.
// Terms is populated whenever the Result is defined; Trace only in verbose mode.
type Report struct {
	outcome.Result
	Terms Terms
	Trace *Trace
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Any("result", r.Result)}
	if r.IsDefined() {
		attrs = append(attrs,
			slog.Float64("trace", r.Terms.Trace),
			slog.Float64("mean", r.Terms.Mean),
			slog.Float64("rank", r.Terms.Rank),
			slog.Float64("determinant", r.Terms.Determinant),
		)
	}

	return slog.GroupValue(attrs...)
}

// validateModel checks the fields Divergence reads. Estimate always yields
// a valid model; a hand-built one may not.
func validateModel(m *covariance.Model) error {
	if m.Cov == nil {
		return matrix.ErrNilMatrix
	}
	if err := matrix.ValidateSquare(m.Cov); err != nil {
		return err
	}
	if err := matrix.ValidateFinite(m.Cov); err != nil {
		return fmt.Errorf("cov: %w", err)
	}
	n := m.Cov.SymmetricDim()
	if err := matrix.ValidateVecLen(m.Mean, n); err != nil {
		return fmt.Errorf("mean: %w", err)
	}
	if err := matrix.ValidateFinite(mat.NewVecDense(n, m.Mean)); err != nil {
		return fmt.Errorf("mean: %w", err)
	}
	if m.Neutral.N != n {
		return fmt.Errorf("neutral: N=%d S=%d: %w", m.Neutral.N, n, matrix.ErrDimensionMismatch)
	}

	return nil
}

// Divergence returns the Kullback-Leibler divergence of the fitted Gaussian
// N(μ, C) from the neutral model N(μN, N):
//
//	KL = ½·[ trace(N⁻¹C) + (μN−μ)ᵀN⁻¹(μN−μ) − rank(C) + log(det N / det C) ]
//
// Implementation:
//   - Stage 1: reject a singular neutral matrix analytically, then invert it.
//   - Stage 2: trace and quadratic-form terms against N⁻¹.
//   - Stage 3: rank term −rank(C) (SVD), which keeps the term meaningful when
//     C is rank-deficient (T < S).
//   - Stage 4: determinant term from the closed form of det N; if it is not
//     finite, recompute on matrices rescaled by their mean absolute entry.
//   - Stage 5: assemble, attach warnings, optionally trace.
//
// Behavior highlights:
//   - The result is not clamped. A negative value is returned as-is and
//     tagged outcome.WarnNegativeNeutralDivergence.
//   - A non-finite value (e.g. det C = 0) is returned as-is and tagged
//     outcome.WarnNonFiniteDivergence.
//
// Errors:
//   - ErrNilModel.
//   - matrix.ErrNilMatrix, matrix.ErrBadShape, matrix.ErrDimensionMismatch or
//     matrix.ErrNaNInf for a hand-built model whose Cov, Mean and Neutral
//     disagree or carry non-finite entries.
//   - ErrSingularNeutral (wrapping matrix.ErrSingular when found by LU).
//   - matrix errors from the SVD / eigen kernels.
//
// Complexity: O(S³).
func Divergence(m *covariance.Model, opts ...Option) (Report, error) {
	if m == nil {
		return Report{}, neutralityErrorf(opDivergence, ErrNilModel)
	}
	if err := validateModel(m); err != nil {
		return Report{}, neutralityErrorf(opDivergence, err)
	}
	o := gatherOptions(opts)

	// Stage 1 (Validate + invert).
	if m.Neutral.Singular() {
		return Report{}, fmt.Errorf("%s: d=%g o=%g: %w", opDivergence, m.Neutral.Diag, m.Neutral.Off, ErrSingularNeutral)
	}
	inv, ill, err := matrix.Inverse(m.NeutralCov())
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return Report{}, fmt.Errorf("%s: %w: %w", opDivergence, ErrSingularNeutral, err)
		}
		return Report{}, neutralityErrorf(opDivergence, err)
	}
	var warnings []outcome.Warning
	if ill {
		warnings = append(warnings, outcome.Warnf(outcome.WarnIllConditioned,
			"neutral covariance is near-singular (d=%g, o=%g)", m.Neutral.Diag, m.Neutral.Off))
	}

	// Stage 2 (Trace and mean terms).
	var terms Terms
	if terms.Trace, err = matrix.TraceProduct(inv, m.Cov); err != nil {
		return Report{}, neutralityErrorf(opDivergence, err)
	}
	if terms.Mean, err = matrix.QuadForm(m.MeanGap(), inv); err != nil {
		return Report{}, neutralityErrorf(opDivergence, err)
	}

	// Stage 3 (Rank term).
	rank, err := matrix.Rank(m.Cov, o.rankTol)
	if err != nil {
		return Report{}, neutralityErrorf(opDivergence, err)
	}
	terms.Rank = -float64(rank)

	// Stage 4 (Determinant term with rescaled fallback).
	if terms.Determinant, terms.Fallback, err = DeterminantTerm(m.Neutral, m.Cov); err != nil {
		return Report{}, neutralityErrorf(opDivergence, err)
	}
	if terms.Fallback {
		warnings = append(warnings, outcome.Warnf(outcome.WarnNumericFallback,
			"log-determinant term recomputed on rescaled matrices (S=%d)", m.S))
	}

	// Stage 5 (Assemble).
	kl := 0.5 * terms.Sum()
	switch {
	case math.IsNaN(kl) || math.IsInf(kl, 0):
		warnings = append(warnings, outcome.Warnf(outcome.WarnNonFiniteDivergence,
			"divergence is %g (rank(C)=%d of %d)", kl, rank, m.S))
	case kl < 0:
		warnings = append(warnings, outcome.Warnf(outcome.WarnNegativeNeutralDivergence,
			"divergence %g is negative; returned unclamped", kl))
	}

	rep := Report{Result: outcome.Defined(kl, warnings...), Terms: terms}
	if !o.verbose {
		return rep, nil
	}

	if rep.Trace, err = buildTrace(m, terms, kl, o); err != nil {
		return Report{}, neutralityErrorf(opDivergence, err)
	}
	if o.logger != nil {
		o.logger.LogAttrs(context.Background(), slog.LevelDebug, "neutral divergence",
			slog.Int("species", m.S),
			slog.Int("steps", m.T),
			slog.Any("trace", rep.Trace),
		)
	}

	return rep, nil
}

// FromSeries estimates the covariance model of s and evaluates Divergence.
// A constant series yields an undefined Report of kind
// outcome.KindDegenerateInput rather than an error.
func FromSeries(s series.Series, opts ...Option) (Report, error) {
	m, err := covariance.Estimate(s)
	if err != nil {
		if errors.Is(err, covariance.ErrDegenerateSeries) {
			return Report{Result: outcome.Undefined(outcome.KindDegenerateInput, err.Error())}, nil
		}
		return Report{}, neutralityErrorf(opFromSeries, err)
	}

	rep, err := Divergence(m, opts...)
	if err != nil {
		return Report{}, neutralityErrorf(opFromSeries, err)
	}

	return rep, nil
}
