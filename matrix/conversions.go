// SPDX-License-Identifier: MIT

// Package matrix: conversions between Matrix and plain [][]float64 grids.
//
// Callers outside the numeric core (parsers, CLI, renderers) speak in
// row slices; these helpers are the only place where that representation
// crosses into *Dense and back.
package matrix

import "fmt"

const (
	opFromRows = "NewDenseFromRows"
	opToRows   = "ToRows"
)

// NewDenseFromRows builds a *Dense from a rectangular grid.
//
// Implementation:
//   - Stage 1: resolve options; ValidateRows (non-empty, rectangular, finite under policy).
//   - Stage 2: copy row by row into a flat buffer.
//
// Errors:
//   - ErrInvalidDimensions (no rows / empty first row), ErrBadShape (ragged),
//     ErrNaNInf (non-finite value while validation is on).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - The input slices are copied; later mutation of rows does not affect the result.
func NewDenseFromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateRows(rows, o.validateNaNInf); err != nil {
		return nil, matrixErrorf(opFromRows, err)
	}
	r, c := len(rows), len(rows[0])
	res, err := newDenseWithPolicy(r, c, o.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opFromRows, err)
	}
	for i := 0; i < r; i++ {
		copy(res.data[i*c:(i+1)*c], rows[i])
	}

	return res, nil
}

// MustDenseFromRows is NewDenseFromRows for literals in tests and examples.
// It panics on error.
func MustDenseFromRows(rows [][]float64) *Dense {
	m, err := NewDenseFromRows(rows)
	if err != nil {
		panic(err)
	}

	return m
}

// ToRows copies any Matrix into a fresh [][]float64.
// A 0-row matrix yields an empty (non-nil) slice.
// Complexity: O(r*c).
func ToRows(m Matrix) ([][]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToRows, err)
	}
	r, c := m.Rows(), m.Cols()
	out := make([][]float64, r)
	if d, ok := m.(*Dense); ok {
		for i := 0; i < r; i++ {
			out[i] = make([]float64, c)
			copy(out[i], d.data[i*c:(i+1)*c])
		}
		return out, nil
	}

	var err error
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			if out[i][j], err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToRows, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
		}
	}

	return out, nil
}

// TransposeData returns the transpose of a rectangular grid.
// An empty grid yields an empty grid rather than an error.
// Complexity: O(r*c).
func TransposeData(rows [][]float64) [][]float64 {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return [][]float64{}
	}
	r, c := len(rows), len(rows[0])
	out := make([][]float64, c)
	for j := 0; j < c; j++ {
		out[j] = make([]float64, r)
		for i := 0; i < r; i++ {
			out[j][i] = rows[i][j]
		}
	}

	return out
}

// MultiplyData multiplies two grids via Mul.
// Errors: the NewDenseFromRows sentinels, ErrDimensionMismatch.
func MultiplyData(a, b [][]float64) ([][]float64, error) {
	da, err := NewDenseFromRows(a)
	if err != nil {
		return nil, err
	}
	db, err := NewDenseFromRows(b)
	if err != nil {
		return nil, err
	}
	p, err := Mul(da, db)
	if err != nil {
		return nil, err
	}

	return ToRows(p)
}

// denseCopy returns a private *Dense snapshot of m for in-place elimination.
// The caller's matrix is never touched.
func denseCopy(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	r, c := m.Rows(), m.Cols()
	res, err := newDenseZeroOK(r, c)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			res.data[i*c+j] = v
		}
	}

	return res, nil
}
