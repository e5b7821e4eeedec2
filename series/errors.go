// SPDX-License-Identifier: MIT

package series

import (
	"errors"
	"fmt"
)

// Sentinel errors for input adaptation. Callers match with errors.Is.
var (
	// ErrEmpty indicates an input without time steps or without columns.
	ErrEmpty = errors.New("series: empty input")

	// ErrTooFewSpecies indicates fewer than MinSpecies species columns.
	ErrTooFewSpecies = errors.New("series: at least two species are required")

	// ErrRaggedRows indicates time steps of different lengths.
	ErrRaggedRows = errors.New("series: rows have different lengths")

	// ErrNegativeAbundance indicates a negative abundance value.
	ErrNegativeAbundance = errors.New("series: negative abundance")

	// ErrNaNInf indicates a NaN or ±Inf abundance value.
	ErrNaNInf = errors.New("series: NaN or Inf abundance")

	// ErrNoSpeciesColumns indicates that no column header carries the species prefix.
	ErrNoSpeciesColumns = errors.New("series: no column matches the species prefix")

	// ErrParse indicates a cell that is not a number.
	ErrParse = errors.New("series: cannot parse value")
)

// Operation name constants for unified error wrapping.
const (
	opFromRows   = "FromRows"
	opFromMatrix = "FromMatrix"
	opFromTable  = "FromTable"
	opReadCSV    = "ReadCSV"
	opReadXLSX   = "ReadXLSX"
)

// seriesErrorf wraps err with an operation tag.
func seriesErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
