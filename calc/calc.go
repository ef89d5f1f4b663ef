// SPDX-License-Identifier: MIT

// Package calc evaluates matrix expressions such as "A+4*B", "inv(A)*B" or
// "T(A)^2 - 3*A" over a set of named matrices.
//
// Expressions are compiled with github.com/expr-lang/expr. Arithmetic
// operators are overloaded for matrix operands and routed to the kernels of
// package matrix, so every shape and singularity check lives in one place:
//
//	A + B, A - B    matrix.Add, matrix.Sub
//	A * B           matrix.Mul
//	k * A, A * k    matrix.Scale
//	A / k           matrix.Scale by 1/k
//	A ^ p, A ** p   matrix.Power (integer p; negative p inverts first)
//	-A              matrix.Scale by -1
//
// Functions: det, rank, inv, T (alias transpose), trace, hadamard.
// Scalar sub-expressions ("det(A) * 2", "1/3") follow expr's own arithmetic.
//
// Errors:
//   - ErrUnknownMatrix: an identifier is neither a function nor in env.
//   - ErrUnsupported:   the expression does not type-check (e.g. "A + 1"),
//     yields neither a matrix nor a number, or is empty.
//   - ErrDivisionByZero: "A / 0".
//   - matrix sentinels (ErrDimensionMismatch, ErrSingular, ...) from kernels.
package calc

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"github.com/katalvlaran/matcalc/matrix"
)

var (
	// ErrUnknownMatrix is returned when the expression names a matrix that
	// is not in the environment.
	ErrUnknownMatrix = errors.New("calc: unknown matrix")

	// ErrUnsupported is returned for expressions that cannot be evaluated
	// over matrices and numbers.
	ErrUnsupported = errors.New("calc: unsupported expression")

	// ErrDivisionByZero is returned for a matrix divided by zero.
	ErrDivisionByZero = errors.New("calc: division by zero")
)

const opEval = "Eval"

// Value is the result of Eval: either a matrix or a scalar.
type Value struct {
	Matrix matrix.Matrix
	Scalar float64
}

// IsMatrix reports whether the value holds a matrix.
func (v Value) IsMatrix() bool { return v.Matrix != nil }

// Eval compiles and runs src against env.
// Numeric options (WithEpsilon) apply to det, rank, inv and ^.
func Eval(src string, env map[string]matrix.Matrix, opts ...matrix.Option) (Value, error) {
	if strings.TrimSpace(src) == "" {
		return Value{}, fmt.Errorf("%s: %w: empty expression", opEval, ErrUnsupported)
	}

	tree, err := parser.Parse(src)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w: %w", opEval, ErrUnsupported, err)
	}
	if missing := unknownNames(tree.Node, env); len(missing) > 0 {
		return Value{}, fmt.Errorf("%s: %w: %s", opEval, ErrUnknownMatrix, strings.Join(missing, ", "))
	}

	vars := make(map[string]any, len(env))
	for name, m := range env {
		if err = matrix.ValidateNotNil(m); err != nil {
			return Value{}, fmt.Errorf("%s: %s: %w", opEval, name, err)
		}
		vars[name] = m
	}

	k := kernels{opts: opts}
	program, err := expr.Compile(src, k.compileOptions(vars)...)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w: %w", opEval, ErrUnsupported, err)
	}
	out, err := vm.Run(program, vars)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", opEval, unwrapRuntime(err))
	}

	return toValue(out)
}

// Functions lists the function names available in expressions.
func Functions() []string {
	names := make([]string, 0, len(userFunctions))
	for name := range userFunctions {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// userFunctions are the names callable from expressions, besides the
// operator helpers.
var userFunctions = map[string]struct{}{
	"det": {}, "rank": {}, "inv": {}, "T": {}, "transpose": {}, "trace": {}, "hadamard": {},
}

// unknownNames returns the identifiers of tree that are neither callees nor
// bound in env, sorted and without duplicates.
func unknownNames(root ast.Node, env map[string]matrix.Matrix) []string {
	c := &identCollector{callees: map[*ast.IdentifierNode]bool{}}
	ast.Walk(&root, c)

	var missing []string
	for _, id := range c.idents {
		if c.callees[id] {
			continue
		}
		if _, ok := env[id.Value]; !ok && !slices.Contains(missing, id.Value) {
			missing = append(missing, id.Value)
		}
	}
	slices.Sort(missing)

	return missing
}

type identCollector struct {
	idents  []*ast.IdentifierNode
	callees map[*ast.IdentifierNode]bool
}

func (c *identCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		c.idents = append(c.idents, n)
	case *ast.CallNode:
		if id, ok := n.Callee.(*ast.IdentifierNode); ok {
			c.callees[id] = true
		}
	}
}

// unwrapRuntime drops expr's source-annotated wrapper when it carries a
// kernel error, so callers see "Mul: matrix: dimension mismatch" rather
// than a multi-line listing.
func unwrapRuntime(err error) error {
	var fe *file.Error
	if errors.As(err, &fe) {
		if inner := fe.Unwrap(); inner != nil {
			return inner
		}
	}

	return err
}

func toValue(out any) (Value, error) {
	switch v := out.(type) {
	case matrix.Matrix:
		if v == nil {
			break
		}
		return Value{Matrix: v}, nil
	case int:
		return Value{Scalar: float64(v)}, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Value{}, fmt.Errorf("%s: %w", opEval, matrix.ErrNaNInf)
		}
		return Value{Scalar: v}, nil
	}

	return Value{}, fmt.Errorf("%s: %w: result of type %T", opEval, ErrUnsupported, out)
}
