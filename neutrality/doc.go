// SPDX-License-Identifier: MIT

// Package neutrality measures how far an observed community is from the
// neutral model, as the Kullback-Leibler divergence between two Gaussians.
//
// 🚀 What is measured?
//
//	The fitted model N(μ, C) of an abundance series is compared with its
//	neutral projection N(μN, N): every species shares the mean abundance μN
//	and N is exchangeable (one variance d, one covariance o). A neutral
//	community scores ≈0; structure such as unequal abundances or
//	species-specific correlations raises the score.
//
// ✨ Key features:
//   - closed-form neutral determinant (d−o)^S·(1 + S·o/(d−o))
//   - rescaled fallback when log(det N) − log(det C) overflows or underflows
//   - −rank(C) instead of −S, tolerating rank-deficient covariances
//   - explicit results: undefined for constant series, errors for a
//     singular neutral matrix, warnings for everything recovered internally
//   - optional structured Trace, also emitted through log/slog
//   - Batch for many independent series, bounded by an errgroup
//
// ⚙️ Usage:
//
//	s, _ := series.FromRows(rows)
//	rep, err := neutrality.FromSeries(s, neutrality.WithVerbose())
//	if err != nil {
//	  // ErrSingularNeutral, ...
//	}
//	if v, ok := rep.Value(); ok {
//	  fmt.Println("KL from neutrality:", v, rep.Trace.Terms)
//	}
//
// Performance:
//
//   - Time:   O(T·S² + S³)
//   - Memory: O(T·S + S²)
package neutrality
