// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Small element-wise and reduction kernels used by the evaluator
//     (hadamard, trace) and by the solver's residual check (MatVec).
//   - Keep loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No hidden allocations beyond the output; O(r*c) time and space.

package matrix

import "fmt"

const (
	opHadamard = "Hadamard"
	opMatVec   = "MatVec"
	opTrace    = "Trace"
)

// Hadamard computes the element-wise product out[i,j] = a[i,j] * b[i,j].
// Time: O(r*c). Space: O(r*c).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	r, c := a.Rows(), a.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			n := r * c
			for idx := 0; idx < n; idx++ {
				out.data[idx] = da.data[idx] * db.data[idx]
			}
			return out, nil
		}
	}

	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			out.data[i*c+j] = av * bv
		}
	}

	return out, nil
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	r, c := m.Rows(), m.Cols()
	if len(x) != c {
		return nil, matrixErrorf(opMatVec, fmt.Errorf("len(x)=%d, cols=%d: %w", len(x), c, ErrDimensionMismatch))
	}
	y := make([]float64, r)

	if d, ok := m.(*Dense); ok {
		var base int
		var sum float64
		for i := 0; i < r; i++ {
			base = i * c
			sum = ZeroSum
			for j := 0; j < c; j++ {
				sum += d.data[base+j] * x[j]
			}
			y[i] = sum
		}
		return y, nil
	}

	var v float64
	var err error
	for i := 0; i < r; i++ {
		sum := ZeroSum
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			sum += v * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// Trace returns Σ m[i,i] for a square m.
// Errors: ErrNilMatrix, ErrNonSquare.
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	var (
		sum = ZeroSum
		v   float64
		err error
	)
	for i := 0; i < m.Rows(); i++ {
		if v, err = m.At(i, i); err != nil {
			return 0, matrixErrorf(opTrace, err)
		}
		sum += v
	}

	return sum, nil
}
