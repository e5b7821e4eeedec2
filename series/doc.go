// SPDX-License-Identifier: MIT

// Package series normalizes community abundance data into a single
// representation before any estimator sees it.
//
// A Series is T time steps × S species (S ≥ 2) of finite, non-negative
// values, stored as a gonum *mat.Dense. Adapters resolve the input shape once,
// at the edge:
//
//   - FromRows   -> raw time-major [][]float64
//   - FromMatrix -> any gonum mat.Matrix (time × species)
//   - FromTable  -> labeled Table; columns whose header starts with a prefix
//     (DefaultPrefix = "species") are kept in table order
//   - ReadCSV    -> header + records from an io.Reader
//   - ReadXLSX   -> a worksheet read with excelize
//
// Usage:
//
//	s, err := series.ReadCSV(f, series.DefaultPrefix)
//	if err != nil {
//	  // handle ErrNoSpeciesColumns, ErrParse, ErrNegativeAbundance, ...
//	}
//	fmt.Println(s.Len(), s.Species())
package series
