// SPDX-License-Identifier: MIT

package parse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/katalvlaran/matcalc/matrix"
)

// Policy selects what happens to a cell that fails to parse.
type Policy int

const (
	// Strict aborts on the first invalid cell.
	Strict Policy = iota
	// CoerceZero stores 0 for an invalid cell and collects the error as a warning.
	CoerceZero
)

// String returns "strict" or "coerce-zero".
func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case CoerceZero:
		return "coerce-zero"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParseGrid reads a whitespace-separated grid: one row per line, cells
// separated by spaces, tabs or ';'. Blank lines are skipped.
//
// Returns:
//   - the rectangular grid,
//   - warnings (only under CoerceZero: one *InvalidNumberError per coerced cell),
//   - a fatal error: ErrEmptyGrid, ErrRaggedRows (with the one-based row number),
//     or the first *InvalidNumberError under Strict.
func ParseGrid(text string, policy Policy) ([][]float64, []error, error) {
	var (
		rows     [][]float64
		warnings []error
		width    int
	)
	for _, line := range strings.Split(text, "\n") {
		cells := strings.FieldsFunc(line, isCellSeparator)
		if len(cells) == 0 {
			continue
		}
		r := len(rows)
		if r == 0 {
			width = len(cells)
		} else if len(cells) != width {
			return nil, nil, fmt.Errorf("row %d has %d values, want %d: %w", r+1, len(cells), width, ErrRaggedRows)
		}

		row := make([]float64, width)
		for c, cell := range cells {
			v, err := ParseCellAt(cell, r, c)
			if err != nil {
				if policy != CoerceZero {
					return nil, nil, err
				}
				warnings = append(warnings, err)
				v = 0
			}
			row[c] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyGrid
	}

	return rows, warnings, nil
}

// ParseMatrix is ParseGrid followed by matrix.NewDenseFromRows.
func ParseMatrix(text string, policy Policy) (*matrix.Dense, []error, error) {
	rows, warnings, err := ParseGrid(text, policy)
	if err != nil {
		return nil, nil, err
	}
	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, warnings, err
	}

	return m, warnings, nil
}

// ParseVector reads a single row or a single column of numbers.
func ParseVector(text string, policy Policy) ([]float64, []error, error) {
	rows, warnings, err := ParseGrid(text, policy)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case len(rows) == 1:
		return rows[0], warnings, nil
	case len(rows[0]) == 1:
		return matrix.TransposeData(rows)[0], warnings, nil
	default:
		return nil, warnings, fmt.Errorf("got a %dx%d grid: %w", len(rows), len(rows[0]), ErrNotVector)
	}
}

func isCellSeparator(r rune) bool {
	return r == ';' || unicode.IsSpace(r)
}
