// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers_InterfaceHiding_Fallback(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := FromRows(t, [][]float64{{5, 6}, {7, 8}})

	fast, err := matrix.Add(a, b)
	require.NoError(t, err)
	slow, err := matrix.Add(hide{a}, b)
	require.NoError(t, err)
	RequireClose(t, fast, slow)
}

func TestAdd_Succeeds(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := FromRows(t, [][]float64{{10, 20}, {30, 40}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{11, 22}, {33, 44}}, MustRows(t, sum))

	// operands untouched
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, MustRows(t, a))
}

func TestAdd_DimensionMismatch(t *testing.T) {
	_, err := matrix.Add(MustDense(t, 2, 3), MustDense(t, 3, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Add(nil, MustDense(t, 1, 1))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSub_FastAndFallback(t *testing.T) {
	a := FromRows(t, [][]float64{{5, 5, 5}, {1, 2, 3}})
	b := FromRows(t, [][]float64{{1, 2, 3}, {1, 1, 1}})
	want := [][]float64{{4, 3, 2}, {0, 1, 2}}

	fast, err := matrix.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, want, MustRows(t, fast))

	slow, err := matrix.Sub(hide{a}, hide{b})
	require.NoError(t, err)
	assert.Equal(t, want, MustRows(t, slow))
}

// (A + B) − B ≈ A
func TestAddSub_RoundTrip(t *testing.T) {
	a := RandomDense(t, 4, 5, 7, false)
	b := RandomDense(t, 4, 5, 11, false)

	s, err := matrix.Add(a, b)
	require.NoError(t, err)
	back, err := matrix.Sub(s, b)
	require.NoError(t, err)
	RequireClose(t, a, back)
}

func TestMul_Succeeds(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := FromRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	want := [][]float64{{58, 64}, {139, 154}}

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, want, MustRows(t, p))

	p, err = matrix.Mul(hide{a}, b)
	require.NoError(t, err)
	assert.Equal(t, want, MustRows(t, p))
}

func TestMul_DimensionMismatch(t *testing.T) {
	_, err := matrix.Mul(MustDense(t, 2, 3), MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMul_IdentityNeutral(t *testing.T) {
	a := RandomDense(t, 4, 4, 3, false)
	p, err := matrix.Mul(IdentityDense(t, 4), a)
	require.NoError(t, err)
	RequireClose(t, a, p)
}

func TestTranspose(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	want := [][]float64{{1, 4}, {2, 5}, {3, 6}}

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	assert.Equal(t, want, MustRows(t, tr))

	tr, err = matrix.Transpose(hide{a})
	require.NoError(t, err)
	assert.Equal(t, want, MustRows(t, tr))

	// involution
	back, err := matrix.T(tr)
	require.NoError(t, err)
	assert.Equal(t, MustRows(t, a), MustRows(t, back))
}

func TestTranspose_EmptyAndNil(t *testing.T) {
	_, err := matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	assert.Equal(t, [][]float64{}, matrix.TransposeData(nil))
}

func TestScale(t *testing.T) {
	a := FromRows(t, [][]float64{{1, -2}, {0.5, 4}})

	s, err := matrix.Scale(a, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, -4}, {1, 8}}, MustRows(t, s))

	s, err = matrix.ScaleBy(hide{a}, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, MustRows(t, s))

	_, err = matrix.Scale(a, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestPower(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 1}, {1, 0}})

	p0, err := matrix.Power(a, 0)
	require.NoError(t, err)
	RequireClose(t, IdentityDense(t, 2), p0)

	// Fibonacci: [[1,1],[1,0]]^10 = [[F11,F10],[F10,F9]]
	p10, err := matrix.Power(a, 10)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{89, 55}, {55, 34}}, MustRows(t, p10))

	// A^-1 · A = I
	inv, err := matrix.Power(a, -1)
	require.NoError(t, err)
	prod, err := matrix.Mul(inv, a)
	require.NoError(t, err)
	RequireClose(t, IdentityDense(t, 2), prod)
}

func TestPower_Errors(t *testing.T) {
	_, err := matrix.Power(MustDense(t, 2, 3), 2)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.Power(MustDense(t, 2, 2), -1)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestPower_MinInt(t *testing.T) {
	// diag(2, 1)^MinInt = diag(2^-2^63, 1); the first entry underflows to 0.
	a := FromRows(t, [][]float64{{2, 0}, {0, 1}})
	p, err := matrix.Power(a, math.MinInt)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}}, MustRows(t, p))
}

func TestNewZeros(t *testing.T) {
	z, err := matrix.NewZeros(2, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, MustRows(t, z))

	_, err = matrix.NewZeros(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	like, err := matrix.ZerosLike(FromRows(t, [][]float64{{1, 2}}))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}}, MustRows(t, like))
}

func TestAllClose(t *testing.T) {
	a := FromRows(t, [][]float64{{1, 2}})
	b := FromRows(t, [][]float64{{1 + 1e-12, 2}})

	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(a, FromRows(t, [][]float64{{1.1, 2}}), 0, 1e-9)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 2, 1), 0, 1e-9)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.AllClose(a, b, math.Inf(1), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
