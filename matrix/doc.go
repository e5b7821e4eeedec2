// SPDX-License-Identifier: MIT

// Package matrix offers the small set of dense linear-algebra and column
// statistics primitives behind the neutrality estimators.
//
// The matrix package provides:
//
//   - Validators (ValidateNotNil, ValidateSquare, ValidateFinite, ...) that
//     turn shape misuse into sentinel errors before gonum kernels run.
//   - Determinant, inverse, SVD rank, symmetric eigenvalues and
//     pseudo-determinants over gonum.org/v1/gonum/mat.
//   - Exchangeable: the equicorrelation matrix (d on the diagonal, o elsewhere)
//     with a closed-form determinant.
//   - Column statistics: means, centering and population covariance.
//
// All helpers are pure: they allocate fresh results and never mutate inputs.
package matrix
