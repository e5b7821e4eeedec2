// SPDX-License-Identifier: MIT

package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultPrefix is the column-name prefix that marks species columns in
// labeled tables ("species_1", "species_2", ...).
const DefaultPrefix = "species"

// Table is a labeled numeric table: one header per column, one row per time step.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// SelectColumns returns the indices of the columns whose name starts with
// prefix, in table order. An empty prefix selects every column.
func SelectColumns(columns []string, prefix string) []int {
	idx := make([]int, 0, len(columns))
	for i, name := range columns {
		if strings.HasPrefix(strings.TrimSpace(name), prefix) {
			idx = append(idx, i)
		}
	}

	return idx
}

// FromTable extracts the species columns of t (see SelectColumns) into a Series.
//
// Errors:
//   - ErrNoSpeciesColumns if nothing matches prefix.
//   - ErrRaggedRows if a row is shorter than the header.
//   - Any FromRows error.
func FromTable(t Table, prefix string) (Series, error) {
	idx := SelectColumns(t.Columns, prefix)
	if len(idx) == 0 {
		return Series{}, seriesErrorf(fmt.Sprintf("%s: prefix %q", opFromTable, prefix), ErrNoSpeciesColumns)
	}

	rows := make([][]float64, len(t.Rows))
	for r, src := range t.Rows {
		if len(src) != len(t.Columns) {
			return Series{}, seriesErrorf(fmt.Sprintf("%s: row %d", opFromTable, r), ErrRaggedRows)
		}
		row := make([]float64, len(idx))
		for k, c := range idx {
			row[k] = src[c]
		}
		rows[r] = row
	}

	s, err := FromRows(rows)
	if err != nil {
		return Series{}, seriesErrorf(opFromTable, err)
	}

	return s, nil
}

// ReadCSV parses a CSV document whose first record is a header and selects
// the species columns by prefix. Non-species columns (e.g. a time stamp)
// may hold arbitrary text.
func ReadCSV(r io.Reader, prefix string) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return Series{}, seriesErrorf(opReadCSV, err)
	}

	return fromRecords(opReadCSV, records, prefix)
}

// ReadXLSX reads a worksheet of an Excel workbook, with the same layout rules
// as ReadCSV. An empty sheet name selects the first sheet.
func ReadXLSX(path, sheet, prefix string) (Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Series{}, seriesErrorf(opReadXLSX, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Series{}, seriesErrorf(opReadXLSX, ErrEmpty)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return Series{}, seriesErrorf(fmt.Sprintf("%s: sheet %q", opReadXLSX, sheet), err)
	}

	return fromRecords(opReadXLSX, records, prefix)
}

// fromRecords converts header + string records into a Series. Blank records
// are skipped; only the selected columns are parsed.
func fromRecords(op string, records [][]string, prefix string) (Series, error) {
	if len(records) < 2 {
		return Series{}, seriesErrorf(op, ErrEmpty)
	}
	header := records[0]
	idx := SelectColumns(header, prefix)
	if len(idx) == 0 {
		return Series{}, seriesErrorf(fmt.Sprintf("%s: prefix %q", op, prefix), ErrNoSpeciesColumns)
	}

	rows := make([][]float64, 0, len(records)-1)
	for line, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]float64, len(idx))
		for k, c := range idx {
			var cell string
			if c < len(rec) {
				cell = strings.TrimSpace(rec[c])
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Series{}, seriesErrorf(fmt.Sprintf("%s: record %d column %q", op, line+2, header[c]), ErrParse)
			}
			row[k] = v
		}
		rows = append(rows, row)
	}

	s, err := FromRows(rows)
	if err != nil {
		return Series{}, seriesErrorf(op, err)
	}

	return s, nil
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
