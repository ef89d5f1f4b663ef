// SPDX-License-Identifier: MIT

// Package linsys classifies and solves general m×n linear systems A·x = b
// given as an augmented matrix [A | b].
//
// Under-determined systems are solved symbolically: every variable is
// expressed as a constant plus a linear combination of the free variables,
// so the whole solution family is returned rather than one sample point.
package linsys

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/matcalc/matrix"
)

// ErrNotAugmented is returned when the input has fewer than two columns.
var ErrNotAugmented = errors.New("linsys: augmented matrix needs at least one coefficient column and b")

const (
	opSolve     = "Solve"
	opSolveRows = "SolveRows"
	opResidual  = "Residual"
)

// Solve classifies and solves [A | b] (m rows, n+1 columns).
//
// Implementation:
//   - Stage 1: row-echelon form with partial pivoting; pivots are searched in
//     the n coefficient columns only, row operations span b as well.
//   - Stage 2: rankA = rows with any |a_ij| ≥ eps in A; rankAug = rows with
//     any such entry in A or b. Both are counted row by row, so a row that is
//     zero in A but not in b raises rankAug even when it is not a pivot row.
//   - Stage 3: rankAug > rankA → Inconsistent; rankA == n → Unique (back
//     substitution, bottom-up); otherwise Infinite (symbolic back substitution).
//
// Errors:
//   - ErrNilMatrix, ErrNotAugmented.
//
// Complexity:
//   - Time O(m·n·min(m,n)), Space O(m·n).
func Solve(aug matrix.Matrix, opts ...matrix.Option) (Solution, error) {
	if err := matrix.ValidateNotNil(aug); err != nil {
		return Solution{}, fmt.Errorf("%s: %w", opSolve, err)
	}
	if aug.Rows() < 1 || aug.Cols() < 2 {
		return Solution{}, fmt.Errorf("%s: %dx%d: %w", opSolve, aug.Rows(), aug.Cols(), ErrNotAugmented)
	}
	n := aug.Cols() - 1
	eps := matrix.NewMatrixOptions(opts...).Epsilon()

	echOpts := append(append([]matrix.Option(nil), opts...), matrix.WithPivotColumns(n))
	ech, err := matrix.RowEchelon(aug, echOpts...)
	if err != nil {
		return Solution{}, fmt.Errorf("%s: %w", opSolve, err)
	}
	rows, err := matrix.ToRows(ech.M)
	if err != nil {
		return Solution{}, fmt.Errorf("%s: %w", opSolve, err)
	}

	sol := Solution{}
	pivots := make([]pivot, 0, len(rows))
	for i, row := range rows {
		pc := leadingColumn(row[:n], eps)
		if pc >= 0 {
			sol.RankA++
			sol.RankAug++
			pivots = append(pivots, pivot{row: i, col: pc})
			continue
		}
		if math.Abs(row[n]) >= eps {
			sol.RankAug++
		}
	}

	switch {
	case sol.RankAug > sol.RankA:
		sol.Kind = Inconsistent
	case sol.RankA == n:
		sol.Kind = Unique
		sol.X = backSubstitute(rows, pivots, n, eps)
	default:
		sol.Kind = Infinite
		sol.Free, sol.Exprs = parametrize(rows, pivots, n, eps)
	}

	return sol, nil
}

// SolveRows solves A·x = b given as plain slices.
// Errors: matrix.ErrDimensionMismatch when len(b) != len(a), plus Solve's errors.
func SolveRows(a [][]float64, b []float64, opts ...matrix.Option) (Solution, error) {
	if len(a) != len(b) {
		return Solution{}, fmt.Errorf("%s: %d rows, %d right-hand values: %w", opSolveRows, len(a), len(b), matrix.ErrDimensionMismatch)
	}
	aug := make([][]float64, len(a))
	for i, row := range a {
		aug[i] = append(append(make([]float64, 0, len(row)+1), row...), b[i])
	}
	m, err := matrix.NewDenseFromRows(aug)
	if err != nil {
		return Solution{}, fmt.Errorf("%s: %w", opSolveRows, err)
	}

	return Solve(m, opts...)
}

// Residual returns max_i |(A·x − b)_i| for the augmented matrix [A | b].
func Residual(aug matrix.Matrix, x []float64) (float64, error) {
	if err := matrix.ValidateNotNil(aug); err != nil {
		return 0, fmt.Errorf("%s: %w", opResidual, err)
	}
	if aug.Cols() < 2 {
		return 0, fmt.Errorf("%s: %w", opResidual, ErrNotAugmented)
	}
	rows, err := matrix.ToRows(aug)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opResidual, err)
	}
	n := aug.Cols() - 1
	a := make([][]float64, len(rows))
	for i, row := range rows {
		a[i] = row[:n]
	}
	am, err := matrix.NewDenseFromRows(a)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opResidual, err)
	}
	ax, err := matrix.MatVec(am, x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opResidual, err)
	}

	worst := 0.0
	for i, v := range ax {
		worst = math.Max(worst, math.Abs(v-rows[i][n]))
	}

	return worst, nil
}

// pivot locates the leading entry of a non-zero row of the echelon form.
type pivot struct{ row, col int }

// leadingColumn returns the first j with |row[j]| ≥ eps, or -1.
func leadingColumn(row []float64, eps float64) int {
	for j, v := range row {
		if math.Abs(v) >= eps {
			return j
		}
	}

	return -1
}

// backSubstitute solves the full-rank echelon system from the last pivot row up.
func backSubstitute(rows [][]float64, pivots []pivot, n int, eps float64) []float64 {
	x := make([]float64, n)
	for p := len(pivots) - 1; p >= 0; p-- {
		row, pc := rows[pivots[p].row], pivots[p].col
		sum := row[n]
		for j := pc + 1; j < n; j++ {
			if math.Abs(row[j]) >= eps {
				sum -= row[j] * x[j]
			}
		}
		x[pc] = sum / row[pc]
	}

	return x
}

// parametrize expresses every variable through the free columns.
//
// Free columns start as {0, {self: 1}}. Each pivot row, bottom-up, takes
// b_i, subtracts a_ij·expr_j for every later column j (already resolved),
// then divides by the pivot. Coefficients below eps are dropped.
func parametrize(rows [][]float64, pivots []pivot, n int, eps float64) ([]int, []Expr) {
	isPivot := make([]bool, n)
	for _, p := range pivots {
		isPivot[p.col] = true
	}

	exprs := make([]Expr, n)
	free := make([]int, 0, n-len(pivots))
	for j := 0; j < n; j++ {
		if !isPivot[j] {
			free = append(free, j)
			exprs[j] = Expr{Deps: map[int]float64{j: 1}}
		}
	}

	for p := len(pivots) - 1; p >= 0; p-- {
		row, pc := rows[pivots[p].row], pivots[p].col
		e := Expr{Constant: row[n], Deps: map[int]float64{}}
		for j := pc + 1; j < n; j++ {
			a := row[j]
			if math.Abs(a) < eps {
				continue
			}
			e.Constant -= a * exprs[j].Constant
			for k, c := range exprs[j].Deps {
				e.Deps[k] -= a * c
			}
		}

		lead := row[pc]
		e.Constant /= lead
		for k, c := range e.Deps {
			if c /= lead; math.Abs(c) < eps {
				delete(e.Deps, k)
				continue
			}
			e.Deps[k] = c
		}
		if len(e.Deps) == 0 {
			e.Deps = nil
		}
		exprs[pc] = e
	}

	return free, exprs
}
