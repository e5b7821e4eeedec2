// SPDX-License-Identifier: MIT

package series

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MinSpecies is the smallest community size with an off-diagonal covariance.
const MinSpecies = 2

// Series is an abundance time series: Len() time steps of Species() values.
// It is read-only once built; accessors return copies.
type Series struct {
	data *mat.Dense // rows = time steps, cols = species
}

// FromRows builds a Series from time-major rows (rows[t][i] = abundance of
// species i at time t).
//
// Errors:
//   - ErrEmpty if there are no rows.
//   - ErrTooFewSpecies if a row has fewer than MinSpecies values.
//   - ErrRaggedRows if row lengths differ.
//   - ErrNaNInf / ErrNegativeAbundance for invalid values.
func FromRows(rows [][]float64) (Series, error) {
	if len(rows) == 0 {
		return Series{}, seriesErrorf(opFromRows, ErrEmpty)
	}
	s := len(rows[0])
	if s < MinSpecies {
		return Series{}, seriesErrorf(fmt.Sprintf("%s: S=%d", opFromRows, s), ErrTooFewSpecies)
	}

	data := make([]float64, 0, len(rows)*s)
	for t, row := range rows {
		if len(row) != s {
			return Series{}, seriesErrorf(fmt.Sprintf("%s: row %d has %d values, want %d", opFromRows, t, len(row), s), ErrRaggedRows)
		}
		for i, v := range row {
			if err := checkValue(v); err != nil {
				return Series{}, seriesErrorf(fmt.Sprintf("%s: (%d,%d)", opFromRows, t, i), err)
			}
		}
		data = append(data, row...)
	}

	return Series{data: mat.NewDense(len(rows), s, data)}, nil
}

// FromMatrix builds a Series from a time × species gonum matrix. The matrix
// is copied.
//
// Errors: as FromRows, plus ErrEmpty for a nil matrix.
func FromMatrix(m mat.Matrix) (Series, error) {
	if m == nil {
		return Series{}, seriesErrorf(opFromMatrix, ErrEmpty)
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return Series{}, seriesErrorf(opFromMatrix, ErrEmpty)
	}
	if c < MinSpecies {
		return Series{}, seriesErrorf(fmt.Sprintf("%s: S=%d", opFromMatrix, c), ErrTooFewSpecies)
	}

	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err := checkValue(m.At(i, j)); err != nil {
				return Series{}, seriesErrorf(fmt.Sprintf("%s: (%d,%d)", opFromMatrix, i, j), err)
			}
		}
	}

	return Series{data: mat.DenseCopyOf(m)}, nil
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNaNInf
	}
	if v < 0 {
		return ErrNegativeAbundance
	}

	return nil
}

// Len returns the number of time steps T (0 for the zero Series).
func (s Series) Len() int {
	if s.data == nil {
		return 0
	}
	r, _ := s.data.Dims()

	return r
}

// Species returns the community size S (0 for the zero Series).
func (s Series) Species() int {
	if s.data == nil {
		return 0
	}
	_, c := s.data.Dims()

	return c
}

// At returns the abundance of species i at time t. Panics on out-of-range
// indices, as gonum does.
func (s Series) At(t, i int) float64 { return s.data.At(t, i) }

// Row returns a copy of time step t.
func (s Series) Row(t int) []float64 { return mat.Row(nil, t, s.data) }

// Column returns a copy of species i's trajectory.
func (s Series) Column(i int) []float64 { return mat.Col(nil, i, s.data) }

// Matrix returns a copy of the underlying time × species matrix.
func (s Series) Matrix() *mat.Dense {
	if s.data == nil {
		return nil
	}

	return mat.DenseCopyOf(s.data)
}

// IsConstant reports whether every value equals the first recorded value.
// The zero Series is reported as constant.
func (s Series) IsConstant() bool {
	if s.data == nil {
		return true
	}
	raw := s.data.RawMatrix()
	first := raw.Data[0]

	var t, i int
	for t = 0; t < raw.Rows; t++ {
		row := raw.Data[t*raw.Stride : t*raw.Stride+raw.Cols]
		for i = range row {
			if row[i] != first {
				return false
			}
		}
	}

	return true
}
