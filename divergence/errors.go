// SPDX-License-Identifier: MIT

package divergence

import "errors"

// Sentinel errors for malformed inputs. Domain-level "undefined" outcomes
// (zero reference entries) are not errors; they are reported through
// outcome.Result.
var (
	// ErrEmpty indicates a zero-length input vector.
	ErrEmpty = errors.New("divergence: empty vector")

	// ErrLengthMismatch indicates vectors of different lengths.
	ErrLengthMismatch = errors.New("divergence: vectors have different lengths")

	// ErrZeroTotal indicates Σ(x+y) == 0, leaving Bray-Curtis undefined.
	ErrZeroTotal = errors.New("divergence: total abundance is zero")
)
