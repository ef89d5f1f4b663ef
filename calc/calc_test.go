// SPDX-License-Identifier: MIT

package calc_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/calc"
	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func env() map[string]matrix.Matrix {
	return map[string]matrix.Matrix{
		"A": matrix.MustDenseFromRows([][]float64{{1, 2}, {3, 4}}),
		"B": matrix.MustDenseFromRows([][]float64{{0, 1}, {1, 0}}),
		"C": matrix.MustDenseFromRows([][]float64{{1, 2, 3}}),
		"S": matrix.MustDenseFromRows([][]float64{{1, 2}, {2, 4}}),
	}
}

func requireClose(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, tol)
	require.NoError(t, err)
	require.True(t, ok, "got\n%v\nwant\n%v", got, want)
}

func evalMatrix(t *testing.T, src string) matrix.Matrix {
	t.Helper()
	v, err := calc.Eval(src, env())
	require.NoError(t, err, src)
	require.True(t, v.IsMatrix(), src)

	return v.Matrix
}

func TestEval_AddScaled(t *testing.T) {
	e := env()
	scaled, err := matrix.Scale(e["B"], 4)
	require.NoError(t, err)
	want, err := matrix.Add(e["A"], scaled)
	require.NoError(t, err)

	requireClose(t, want, evalMatrix(t, "A+4*B"))
	requireClose(t, want, evalMatrix(t, "A + B*4.0"))
}

func TestEval_Operators(t *testing.T) {
	e := env()

	prod, err := matrix.Mul(e["A"], e["B"])
	require.NoError(t, err)
	requireClose(t, prod, evalMatrix(t, "A*B"))

	diff, err := matrix.Sub(e["A"], e["B"])
	require.NoError(t, err)
	requireClose(t, diff, evalMatrix(t, "A - B"))

	half, err := matrix.Scale(e["A"], 0.5)
	require.NoError(t, err)
	requireClose(t, half, evalMatrix(t, "A / 2"))

	sq, err := matrix.Mul(e["A"], e["A"])
	require.NoError(t, err)
	requireClose(t, sq, evalMatrix(t, "A^2"))
	requireClose(t, sq, evalMatrix(t, "A**2"))

	neg, err := matrix.Scale(e["A"], -1)
	require.NoError(t, err)
	requireClose(t, neg, evalMatrix(t, "-A"))

	sum, err := matrix.Add(e["A"], e["B"])
	require.NoError(t, err)
	negSum, err := matrix.Scale(sum, -1)
	require.NoError(t, err)
	requireClose(t, negSum, evalMatrix(t, "-(A+B)"))
}

func TestEval_Functions(t *testing.T) {
	e := env()

	inv, err := matrix.Inverse(e["A"])
	require.NoError(t, err)
	requireClose(t, inv, evalMatrix(t, "inv(A)"))
	requireClose(t, inv, evalMatrix(t, "A^-1"))
	requireClose(t, matrix.MustDenseFromRows([][]float64{{1, 0}, {0, 1}}), evalMatrix(t, "A*inv(A)"))

	tr, err := matrix.Transpose(e["C"])
	require.NoError(t, err)
	requireClose(t, tr, evalMatrix(t, "T(C)"))
	requireClose(t, tr, evalMatrix(t, "transpose(C)"))

	had, err := matrix.Hadamard(e["A"], e["B"])
	require.NoError(t, err)
	requireClose(t, had, evalMatrix(t, "hadamard(A, B)"))

	// det(A) = -2
	scaled, err := matrix.Scale(e["B"], -2)
	require.NoError(t, err)
	requireClose(t, scaled, evalMatrix(t, "det(A) * B"))
}

func TestEval_Scalars(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"det(A)", -2},
		{"rank(S)", 1},
		{"trace(A)", 5},
		{"det(A) * 2 + 1", -3},
		{"1/4", 0.25},
		{"2^3", 8},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			v, err := calc.Eval(tc.src, env())
			require.NoError(t, err)
			assert.False(t, v.IsMatrix())
			assert.InDelta(t, tc.want, v.Scalar, tol)
		})
	}
}

func TestEval_LargeIntegerLiterals(t *testing.T) {
	v, err := calc.Eval("9223372036854775807 + 1", nil)
	require.NoError(t, err)
	assert.Equal(t, math.Exp2(63), v.Scalar)

	v, err = calc.Eval("99999999999 * 99999999999", nil)
	require.NoError(t, err)
	assert.InEpsilon(t, 9.9999999998e21, v.Scalar, 1e-12)
}

func TestEval_IntegralExponents(t *testing.T) {
	e := env()
	sq, err := matrix.Mul(e["A"], e["A"])
	require.NoError(t, err)
	requireClose(t, sq, evalMatrix(t, "A ^ 2.0"))
	requireClose(t, sq, evalMatrix(t, "A ^ rank(A)"))

	for _, src := range []string{"A ^ 1e300", "A ^ -2.5", "A ^ (det(A) / 4)"} {
		_, err = calc.Eval(src, e)
		assert.ErrorIs(t, err, calc.ErrUnsupported, src)
	}
}

func TestEval_UnknownMatrix(t *testing.T) {
	_, err := calc.Eval("A + X", env())
	require.ErrorIs(t, err, calc.ErrUnknownMatrix)
	assert.Contains(t, err.Error(), "X")

	_, err = calc.Eval("inv(Y) * Z + Y", nil)
	require.ErrorIs(t, err, calc.ErrUnknownMatrix)
	assert.Contains(t, err.Error(), "Y, Z")
}

func TestEval_Unsupported(t *testing.T) {
	for _, src := range []string{
		"",
		"   ",
		"A + 1",
		"A ^ 0.5",
		"\"text\"",
		"A == B",
		"foo(A)",
		"A +",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := calc.Eval(src, env())
			require.Error(t, err)
			assert.ErrorIs(t, err, calc.ErrUnsupported)
		})
	}
}

func TestEval_KernelErrors(t *testing.T) {
	_, err := calc.Eval("A * C", env())
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = calc.Eval("A + C", env())
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = calc.Eval("inv(S)", env())
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = calc.Eval("det(C)", env())
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = calc.Eval("A / 0", env())
	require.ErrorIs(t, err, calc.ErrDivisionByZero)

	_, err = calc.Eval("det(A) / 0", env())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestEval_Epsilon(t *testing.T) {
	e := map[string]matrix.Matrix{
		"N": matrix.MustDenseFromRows([][]float64{{1, 0}, {0, 1e-6}}),
	}
	v, err := calc.Eval("rank(N)", e)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.Scalar)

	v, err = calc.Eval("rank(N)", e, matrix.WithEpsilon(1e-3))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Scalar)
}

func TestEval_NilMatrix(t *testing.T) {
	_, err := calc.Eval("A", map[string]matrix.Matrix{"A": nil})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestFunctions(t *testing.T) {
	assert.Equal(t, []string{"T", "det", "hadamard", "inv", "rank", "trace", "transpose"}, calc.Functions())
}
