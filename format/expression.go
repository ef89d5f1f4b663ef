// SPDX-License-Identifier: MIT

package format

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// VarName is the display name of zero-based column j: x1, x2, ...
func VarName(j int) string {
	return "x" + strconv.Itoa(j+1)
}

// Expression renders constant + Σ deps[j]·x(j+1).
//
//   - The constant comes first and is omitted when it is zero and deps are not.
//   - Variables are printed in ascending index order.
//   - Coefficients ±1 are elided ("x2", "-x2"); others print as "3*x2", "1/2*x3".
//   - Coefficients within tolerance of zero are skipped.
//   - An expression with nothing left prints "0".
func Expression(constant float64, deps map[int]float64, mode Mode, opts ...Option) string {
	o := gatherOptions(opts...)

	keys := make([]int, 0, len(deps))
	for j, c := range deps {
		if math.Abs(c) >= o.tol {
			keys = append(keys, j)
		}
	}
	slices.Sort(keys)

	var b strings.Builder
	if math.Abs(constant) >= o.tol || len(keys) == 0 {
		b.WriteString(number(constant, mode, o))
	}
	for _, j := range keys {
		c := deps[j]
		neg := c < 0
		if neg {
			c = -c
		}
		switch {
		case b.Len() == 0 && neg:
			b.WriteString("-")
		case b.Len() > 0 && neg:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		if math.Abs(c-1) >= o.tol {
			b.WriteString(number(c, mode, o))
			b.WriteString("*")
		}
		b.WriteString(VarName(j))
	}

	return b.String()
}

// Vector renders values as "[a, b, c]".
func Vector(xs []float64, mode Mode, opts ...Option) string {
	o := gatherOptions(opts...)
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = number(x, mode, o)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Matrix renders a grid with right-aligned columns separated by two spaces.
// Each row ends with a newline; an empty grid renders as "".
func Matrix(rows [][]float64, mode Mode, opts ...Option) string {
	o := gatherOptions(opts...)
	if len(rows) == 0 {
		return ""
	}

	cells := make([][]string, len(rows))
	var widths []int
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			s := number(v, mode, o)
			cells[i][j] = s
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], len([]rune(s)))
		}
	}

	var b strings.Builder
	for _, row := range cells {
		for j, s := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			b.WriteString(strings.Repeat(" ", widths[j]-len([]rune(s))))
			b.WriteString(s)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
