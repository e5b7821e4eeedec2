// SPDX-License-Identifier: MIT

package neutrality

import (
	"errors"
	"fmt"
)

var (
	// ErrNilModel indicates a nil *covariance.Model.
	ErrNilModel = errors.New("neutrality: nil model")

	// ErrSingularNeutral indicates that the neutral covariance cannot be
	// inverted (d == o, or d + (S−1)·o == 0). This is fatal for the call.
	ErrSingularNeutral = errors.New("neutrality: neutral covariance is singular")
)

// Operation name constants for unified error wrapping.
const (
	opDivergence      = "Divergence"
	opFromSeries      = "FromSeries"
	opBatch           = "Batch"
	opNaiveDetTerm    = "NaiveDeterminantTerm"
	opRescaledDetTerm = "RescaledDeterminantTerm"
	opTrace           = "trace"
)

func neutralityErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
