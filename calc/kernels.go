// SPDX-License-Identifier: MIT

package calc

import (
	"fmt"
	"math"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"

	"github.com/katalvlaran/matcalc/matrix"
)

var matrixType = reflect.TypeOf((*matrix.Matrix)(nil)).Elem()

// kernels binds the matrix package to expr functions, carrying the numeric
// options of one Eval call.
type kernels struct {
	opts []matrix.Option
}

func (k kernels) compileOptions(vars map[string]any) []expr.Option {
	type (
		mm  = func(matrix.Matrix, matrix.Matrix) matrix.Matrix
		m1  = func(matrix.Matrix) matrix.Matrix
		fm  = func(float64, matrix.Matrix) matrix.Matrix
		im  = func(int, matrix.Matrix) matrix.Matrix
		mf  = func(matrix.Matrix, float64) matrix.Matrix
		mi  = func(matrix.Matrix, int) matrix.Matrix
		m2f = func(matrix.Matrix) float64
		m2i = func(matrix.Matrix) int
	)

	return []expr.Option{
		expr.Env(vars),
		expr.DisableAllBuiltins(),

		// operator helpers
		expr.Function("add", k.add, new(mm)),
		expr.Function("sub", k.sub, new(mm)),
		expr.Function("mul", k.mul, new(mm)),
		expr.Function("scale", k.scale, new(fm), new(im), new(mf), new(mi)),
		expr.Function("div", k.div, new(mf), new(mi)),
		expr.Function("pow", k.pow, new(mi), new(mf)),
		expr.Function("neg", k.neg, new(m1)),

		// user functions
		expr.Function("det", k.det, new(m2f)),
		expr.Function("rank", k.rank, new(m2i)),
		expr.Function("inv", k.inv, new(m1)),
		expr.Function("T", k.transpose, new(m1)),
		expr.Function("transpose", k.transpose, new(m1)),
		expr.Function("trace", k.trace, new(m2f)),
		expr.Function("hadamard", k.hadamard, new(mm)),

		expr.Operator("+", "add"),
		expr.Operator("-", "sub"),
		expr.Operator("*", "mul", "scale"),
		expr.Operator("/", "div"),
		expr.Operator("^", "pow"),
		expr.Operator("**", "pow"),
		expr.Patch(floatLiterals{}),
		expr.Patch(&negation{}),
	}
}

func (k kernels) add(params ...any) (any, error) {
	a, b, err := matrixPair(params)
	if err != nil {
		return nil, err
	}

	return matrix.Add(a, b)
}

func (k kernels) sub(params ...any) (any, error) {
	a, b, err := matrixPair(params)
	if err != nil {
		return nil, err
	}

	return matrix.Sub(a, b)
}

func (k kernels) mul(params ...any) (any, error) {
	a, b, err := matrixPair(params)
	if err != nil {
		return nil, err
	}

	return matrix.Mul(a, b)
}

func (k kernels) hadamard(params ...any) (any, error) {
	a, b, err := matrixPair(params)
	if err != nil {
		return nil, err
	}

	return matrix.Hadamard(a, b)
}

// scale accepts the matrix on either side.
func (k kernels) scale(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, arity("scale", 2, len(params))
	}
	m, s := params[0], params[1]
	if _, ok := m.(matrix.Matrix); !ok {
		m, s = s, m
	}
	a, err := asMatrix(m)
	if err != nil {
		return nil, err
	}
	alpha, err := asScalar(s)
	if err != nil {
		return nil, err
	}

	return matrix.Scale(a, alpha)
}

func (k kernels) div(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, arity("div", 2, len(params))
	}
	a, err := asMatrix(params[0])
	if err != nil {
		return nil, err
	}
	d, err := asScalar(params[1])
	if err != nil {
		return nil, err
	}
	if d == 0 {
		return nil, ErrDivisionByZero
	}

	return matrix.Scale(a, 1/d)
}

func (k kernels) neg(params ...any) (any, error) {
	a, err := single(params)
	if err != nil {
		return nil, err
	}

	return matrix.Scale(a, -1)
}

func (k kernels) pow(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, arity("pow", 2, len(params))
	}
	a, err := asMatrix(params[0])
	if err != nil {
		return nil, err
	}
	p, err := exponent(params[1])
	if err != nil {
		return nil, err
	}

	return matrix.Power(a, p, k.opts...)
}

// maxExponent bounds float exponents to the integers float64 holds exactly.
const maxExponent = 1 << 53

// exponent accepts an int, or a float64 with an integral value.
func exponent(v any) (int, error) {
	switch p := v.(type) {
	case int:
		return p, nil
	case float64:
		if p == math.Trunc(p) && math.Abs(p) <= maxExponent {
			return int(p), nil
		}
	}

	return 0, fmt.Errorf("%w: exponent %v is not an integer", ErrUnsupported, v)
}

func (k kernels) det(params ...any) (any, error) {
	a, err := single(params)
	if err != nil {
		return nil, err
	}

	return matrix.Determinant(a, k.opts...)
}

func (k kernels) rank(params ...any) (any, error) {
	a, err := single(params)
	if err != nil {
		return nil, err
	}

	return matrix.Rank(a, k.opts...)
}

func (k kernels) inv(params ...any) (any, error) {
	a, err := single(params)
	if err != nil {
		return nil, err
	}

	return matrix.Inverse(a, k.opts...)
}

func (k kernels) transpose(params ...any) (any, error) {
	a, err := single(params)
	if err != nil {
		return nil, err
	}

	return matrix.Transpose(a)
}

func (k kernels) trace(params ...any) (any, error) {
	a, err := single(params)
	if err != nil {
		return nil, err
	}

	return matrix.Trace(a)
}

func single(params []any) (matrix.Matrix, error) {
	if len(params) != 1 {
		return nil, arity("function", 1, len(params))
	}

	return asMatrix(params[0])
}

func matrixPair(params []any) (matrix.Matrix, matrix.Matrix, error) {
	if len(params) != 2 {
		return nil, nil, arity("operator", 2, len(params))
	}
	a, err := asMatrix(params[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asMatrix(params[1])
	if err != nil {
		return nil, nil, err
	}

	return a, b, nil
}

func asMatrix(v any) (matrix.Matrix, error) {
	m, ok := v.(matrix.Matrix)
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: %T is not a matrix", ErrUnsupported, v)
	}

	return m, nil
}

func asScalar(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", ErrUnsupported, v)
	}
}

func arity(name string, want, got int) error {
	return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrUnsupported, name, want, got)
}

// floatLiterals turns integer literals into floats, so scalar arithmetic
// such as "9223372036854775807 + 1" never wraps around int64.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// negation rewrites unary minus over a matrix operand into neg(x).
// It runs in expr's repeatable patch phase, after operator overloading has
// typed nested sub-expressions such as -(A+B).
type negation struct {
	applied bool
}

func (p *negation) Visit(node *ast.Node) {
	u, ok := (*node).(*ast.UnaryNode)
	if !ok || u.Operator != "-" {
		return
	}
	if t := u.Node.Type(); t == nil || !t.Implements(matrixType) {
		return
	}
	call := &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: "neg"},
		Arguments: []ast.Node{u.Node},
	}
	call.SetType(matrixType)
	ast.Patch(node, call)
	p.applied = true
}

func (p *negation) Reset() { p.applied = false }

func (p *negation) ShouldRepeat() bool { return p.applied }
