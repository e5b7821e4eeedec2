// SPDX-License-Identifier: MIT

// Package divergence provides elementary scalar divergences between two
// equal-length abundance (or probability) vectors.
//
// Functions:
//
//   - BrayCurtis(x, y)         -> Σ|x−y| / Σ(x+y)
//   - BrayCurtisStandard(x, y) -> Σ|x−y| / Σ|x+y|, the library-standard form
//   - BrayCurtisFromNeutral(x) -> BrayCurtisStandard against the uniform community
//   - KullbackLeibler(x, y)    -> Σ x·log(x/y), undefined on a zero reference entry,
//     clamped at 0 with a warning when the sum is negative
//   - JensenShannon(x, y)      -> sqrt(½KL(x,m) + ½KL(y,m)), m = (x+y)/2
//
// Malformed inputs (empty or different lengths) return an error. Domain
// conditions that leave a divergence undefined are reported through
// outcome.Result instead, so a missing value is never confused with 0.
//
// Complexity: every function is O(n) time and at most O(n) extra memory.
package divergence
