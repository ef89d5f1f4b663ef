// SPDX-License-Identifier: MIT

package linsys

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/matcalc/format"
)

// Kind classifies a linear system.
type Kind int

const (
	Unique Kind = iota
	Infinite
	Inconsistent
)

// String returns "unique", "infinite" or "inconsistent".
func (k Kind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Infinite:
		return "infinite"
	case Inconsistent:
		return "inconsistent"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output carries the name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Expr is an affine expression in the free variables:
// Constant + Σ Deps[j]·x_j, keyed by zero-based free column index.
type Expr struct {
	Constant float64         `json:"constant"`
	Deps     map[int]float64 `json:"deps,omitempty"`
}

// Eval substitutes params (free column → value); missing free variables are 0.
func (e Expr) Eval(params map[int]float64) float64 {
	v := e.Constant
	for j, c := range e.Deps {
		v += c * params[j]
	}

	return v
}

// String renders the expression in decimal mode.
func (e Expr) String() string {
	return format.Expression(e.Constant, e.Deps, format.Decimal)
}

// Solution is the tagged result of Solve.
//   - Unique:       X holds the solution; Free and Exprs are nil.
//   - Infinite:     Free lists free columns ascending; Exprs[j] expresses x_j.
//   - Inconsistent: X, Free and Exprs are nil.
//
// RankA and RankAug are set for every kind.
type Solution struct {
	Kind    Kind      `json:"kind"`
	RankA   int       `json:"rank_a"`
	RankAug int       `json:"rank_aug"`
	X       []float64 `json:"x,omitempty"`
	Free    []int     `json:"free,omitempty"`
	Exprs   []Expr    `json:"exprs,omitempty"`
}

// Evaluate returns a concrete point of the solution set.
// Unique returns a copy of X; Infinite substitutes params into each Expr
// (unset free variables are 0); Inconsistent returns nil.
func (s Solution) Evaluate(params map[int]float64) []float64 {
	switch s.Kind {
	case Unique:
		return append([]float64(nil), s.X...)
	case Infinite:
		out := make([]float64, len(s.Exprs))
		for j, e := range s.Exprs {
			out[j] = e.Eval(params)
		}
		return out
	default:
		return nil
	}
}

// Render prints the verdict line, then one line per variable, in the given mode.
func (s Solution) Render(mode format.Mode, opts ...format.Option) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (rank A = %d, rank [A|b] = %d)\n", s.Kind, s.RankA, s.RankAug)
	switch s.Kind {
	case Unique:
		for j, x := range s.X {
			fmt.Fprintf(&b, "%s = %s\n", format.VarName(j), format.Number(x, mode, opts...))
		}
	case Infinite:
		names := make([]string, len(s.Free))
		for i, j := range s.Free {
			names[i] = format.VarName(j)
		}
		fmt.Fprintf(&b, "free: %s\n", strings.Join(names, ", "))
		for j, e := range s.Exprs {
			fmt.Fprintf(&b, "%s = %s\n", format.VarName(j), format.Expression(e.Constant, e.Deps, mode, opts...))
		}
	}

	return b.String()
}

// String is Render in decimal mode.
func (s Solution) String() string { return s.Render(format.Decimal) }
