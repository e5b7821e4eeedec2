// SPDX-License-Identifier: MIT

// Package covariance fits the Gaussian summary of an abundance series and
// its neutral-theory projection.
//
// For a series with T time steps and S species, Estimate returns a Model with
//
//	mean[i]     = (1/T) Σ_t x[t,i]
//	cov[i,j]    = (1/T) Σ_t (x[t,i] − mean[i])(x[t,j] − mean[j])
//	neutral     = exchangeable S×S matrix with
//	              d = mean(diag(cov)),  o = Σ_{i≠j} cov[i,j] / (S(S−1))
//
// A constant series is rejected with ErrDegenerateSeries before any matrix
// algebra runs.
package covariance
