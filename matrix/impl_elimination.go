// SPDX-License-Identifier: MIT
// Package matrix: Gaussian elimination engine and its consumers.
//
// Purpose:
//   - One forward-elimination routine with partial pivoting, shared by
//     Determinant, Rank, Inverse, RowEchelon/ReducedRowEchelon and the linear solver.
//   - One pivot threshold (Options.eps, DefaultEpsilon) for every consumer.
//
// Determinism:
//   - Pivot choice: largest |value| among unprocessed rows; ties keep the
//     topmost row. Loop orders are fixed (col↑, row↑).
//
// Notes:
//   - The engine only ever runs on a private copy (denseCopy); inputs are read-only.

package matrix

import (
	"fmt"
	"math"
)

const (
	opDeterminant = "Determinant"
	opRank        = "Rank"
	opInverse     = "Inverse"
	opRowEchelon  = "RowEchelon"
	opRREF        = "ReducedRowEchelon"
)

// Echelon is the outcome of an elimination pass.
//   - M is the reduced copy (row-echelon or reduced row-echelon form).
//   - Pivots[k] is the pivot column of row k; len(Pivots) is the rank.
//   - Swaps counts row exchanges performed during pivoting.
type Echelon struct {
	M      *Dense
	Pivots []int
	Swaps  int
}

// Rank returns the number of pivot rows, i.e. len(e.Pivots).
func (e Echelon) Rank() int { return len(e.Pivots) }

// eliminate reduces work in place and reports the pivot columns.
//
// Implementation:
//   - For col = 0..pivotCols-1 while row < Rows:
//     1) find p = argmax_{i ≥ row} |work[i,col]|;
//     2) if |work[p,col]| < eps the column is rank-deficient: skip it, no swap;
//     3) swap rows p and row (count the swap);
//     4) reduced=false: zero the entries below the pivot;
//     reduced=true: scale the pivot row to 1, zero the entries above and below.
//
// Behavior highlights:
//   - Row operations span every column (including augmented ones past pivotCols).
//   - Eliminated entries are written as exact zeros.
//
// Complexity:
//   - Time O(r · c · min(r, pivotCols)), Space O(1) extra.
func eliminate(work *Dense, pivotCols int, reduced bool, eps float64) ([]int, int) {
	rows, cols := work.r, work.c
	if pivotCols <= 0 || pivotCols > cols {
		pivotCols = cols
	}
	data := work.data
	pivots := make([]int, 0, min(rows, pivotCols))
	swaps := 0

	var (
		row, col, i, j, p int
		best, v, pivot, f float64
		baseRow, baseI    int
	)
	for col = 0; col < pivotCols && row < rows; col++ {
		// Partial pivoting: largest magnitude in this column among unprocessed rows.
		p = row
		best = math.Abs(data[row*cols+col])
		for i = row + 1; i < rows; i++ {
			if v = math.Abs(data[i*cols+col]); v > best {
				best, p = v, i
			}
		}
		if best < eps {
			continue
		}
		if p != row {
			swapRows(data, cols, p, row)
			swaps++
		}

		baseRow = row * cols
		pivot = data[baseRow+col]
		if reduced {
			for j = col; j < cols; j++ {
				data[baseRow+j] /= pivot
			}
			data[baseRow+col] = 1
			for i = 0; i < rows; i++ {
				if i == row {
					continue
				}
				baseI = i * cols
				f = data[baseI+col]
				if f == 0 {
					continue
				}
				for j = col; j < cols; j++ {
					data[baseI+j] -= f * data[baseRow+j]
				}
				data[baseI+col] = 0
			}
		} else {
			for i = row + 1; i < rows; i++ {
				baseI = i * cols
				f = data[baseI+col] / pivot
				if f == 0 {
					continue
				}
				for j = col; j < cols; j++ {
					data[baseI+j] -= f * data[baseRow+j]
				}
				data[baseI+col] = 0
			}
		}

		pivots = append(pivots, col)
		row++
	}

	return pivots, swaps
}

// swapRows exchanges rows a and b of a row-major buffer with the given stride.
func swapRows(data []float64, cols, a, b int) {
	ra, rb := a*cols, b*cols
	for j := 0; j < cols; j++ {
		data[ra+j], data[rb+j] = data[rb+j], data[ra+j]
	}
}

// echelon runs the engine on a private copy of m.
func echelon(m Matrix, reduced bool, opts ...Option) (Echelon, error) {
	o := gatherOptions(opts...)
	work, err := denseCopy(m)
	if err != nil {
		return Echelon{}, err
	}
	pivots, swaps := eliminate(work, o.pivotCols, reduced, o.eps)

	return Echelon{M: work, Pivots: pivots, Swaps: swaps}, nil
}

// RowEchelon reduces a copy of m to row-echelon form with partial pivoting.
//
// Options:
//   - WithEpsilon(eps): pivot threshold (default DefaultEpsilon).
//   - WithPivotColumns(k): pivot only in the first k columns (augmented systems).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (0-row input).
//
// Complexity:
//   - Time O(r·c·min(r,c)), Space O(r·c).
func RowEchelon(m Matrix, opts ...Option) (Echelon, error) {
	if err := validateNonEmpty(m); err != nil {
		return Echelon{}, matrixErrorf(opRowEchelon, err)
	}
	e, err := echelon(m, false, opts...)
	if err != nil {
		return Echelon{}, matrixErrorf(opRowEchelon, err)
	}

	return e, nil
}

// ReducedRowEchelon reduces a copy of m to reduced row-echelon form
// (unit pivots, zeros above and below each pivot) with partial pivoting.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (0-row input).
//
// Complexity:
//   - Time O(r·c·min(r,c)), Space O(r·c).
func ReducedRowEchelon(m Matrix, opts ...Option) (Echelon, error) {
	if err := validateNonEmpty(m); err != nil {
		return Echelon{}, matrixErrorf(opRREF, err)
	}
	e, err := echelon(m, true, opts...)
	if err != nil {
		return Echelon{}, matrixErrorf(opRREF, err)
	}

	return e, nil
}

// Determinant computes det(m) by forward elimination with partial pivoting.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m); copy m.
//   - Stage 2: eliminate (row-echelon); if any column's pivot search failed, return exactly 0.
//   - Stage 3: det = (-1)^swaps · Π pivots.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - det(Aᵀ) == det(A) within eps; use AllClose-style tolerances in tests.
func Determinant(m Matrix, opts ...Option) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	if err := validateNonEmpty(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	e, err := echelon(m, false, opts...)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	n := m.Rows()
	if len(e.Pivots) < n {
		return 0, nil
	}

	det := 1.0
	if e.Swaps%2 == 1 {
		det = -1.0
	}
	for k := 0; k < n; k++ {
		det *= e.M.data[k*n+k]
	}

	return det, nil
}

// Rank returns the number of independent rows of m, counted as the pivot
// rows of its reduced row-echelon form.
//
// Errors:
//   - ErrNilMatrix.
//
// Notes:
//   - A 0-row matrix has rank 0; an all-zero matrix has rank 0.
//
// Complexity:
//   - Time O(r·c·min(r,c)), Space O(r·c).
func Rank(m Matrix, opts ...Option) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opRank, err)
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return 0, nil
	}
	e, err := echelon(m, true, opts...)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}

	return e.Rank(), nil
}

// Inverse computes m⁻¹ by Gauss–Jordan elimination on [m | I] with partial pivoting.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m). Build the n×2n augmented copy [m | I].
//   - Stage 2: reduced elimination pivoting only in the first n columns.
//   - Stage 3: fewer than n pivots → ErrSingular; otherwise the right half is m⁻¹.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - A singular input never yields a matrix; there is no partial result.
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err := validateNonEmpty(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	o := gatherOptions(opts...)
	n := m.Rows()

	aug, err := NewDense(n, 2*n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	src, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	w := 2 * n
	for i := 0; i < n; i++ {
		copy(aug.data[i*w:i*w+n], src.data[i*n:(i+1)*n])
		aug.data[i*w+n+i] = 1
	}

	pivots, _ := eliminate(aug, n, true, o.eps)
	if len(pivots) < n {
		return nil, matrixErrorf(opInverse, fmt.Errorf("rank %d < %d: %w", len(pivots), n, ErrSingular))
	}

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i := 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug.data[i*w+n:(i+1)*w])
	}

	return inv, nil
}

// validateNonEmpty rejects nil and 0-row/0-col inputs.
func validateNonEmpty(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return validatorErrorf("validateNonEmpty", ErrInvalidDimensions)
	}

	return nil
}
