// SPDX-License-Identifier: MIT

package format_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		mode format.Mode
		want string
	}{
		{"tiny negative decimal", -1e-12, format.Decimal, "0"},
		{"tiny negative fraction", -1e-12, format.Fraction, "0"},
		{"near integer fraction", 2.9999999999, format.Fraction, "3"},
		{"near integer decimal", -4.0000000001, format.Decimal, "-4"},
		{"third fraction", 1.0 / 3.0, format.Fraction, "1/3"},
		{"third decimal", 1.0 / 3.0, format.Decimal, "0.3333"},
		{"negative fraction", -2.0 / 3.0, format.Fraction, "-2/3"},
		{"improper fraction", 2.5, format.Fraction, "5/2"},
		{"trimmed decimal", 2.5, format.Decimal, "2.5"},
		{"no small fraction", math.Pi, format.Fraction, "3.1416"},
		{"denominator too big", 1.0 / 1009.0, format.Fraction, "0.001"},
		{"rounds to minus zero", -0.00001, format.Decimal, "0"},
		{"nan", math.NaN(), format.Decimal, "NaN"},
		{"inf", math.Inf(-1), format.Fraction, "-Inf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, format.Number(tc.x, tc.mode))
		})
	}
}

func TestNumber_Options(t *testing.T) {
	assert.Equal(t, "0.33333", format.Number(1.0/3.0, format.Decimal, format.WithPrecision(5)))
	assert.Equal(t, "0.1429", format.Number(1.0/7.0, format.Fraction, format.WithMaxDenominator(5)))
	assert.Equal(t, "1", format.Number(1.001, format.Decimal, format.WithTolerance(0.01)))

	assert.Panics(t, func() { format.WithTolerance(-1) })
	assert.Panics(t, func() { format.WithMaxDenominator(0) })
	assert.Panics(t, func() { format.WithPrecision(18) })
}

func TestParseMode(t *testing.T) {
	m, err := format.ParseMode("Fraction")
	require.NoError(t, err)
	assert.Equal(t, format.Fraction, m)

	m, err = format.ParseMode("dec")
	require.NoError(t, err)
	assert.Equal(t, format.Decimal, m)
	assert.Equal(t, "decimal", m.String())

	_, err = format.ParseMode("latex")
	require.Error(t, err)

	var mm format.Mode
	require.NoError(t, mm.UnmarshalText([]byte("decimal")))
	assert.Equal(t, format.Decimal, mm)
}

func TestExpression(t *testing.T) {
	cases := []struct {
		name     string
		constant float64
		deps     map[int]float64
		want     string
	}{
		{"empty", 0, nil, "0"},
		{"constant only", 2, nil, "2"},
		{"free variable", 0, map[int]float64{1: 1}, "x2"},
		{"constant minus var", 2, map[int]float64{1: -1}, "2 - x2"},
		{"leading negative", 0, map[int]float64{0: -1, 2: 3}, "-x1 + 3*x3"},
		{"fraction coefficient", 0.5, map[int]float64{3: 0.5}, "1/2 + 1/2*x4"},
		{"zero coefficient skipped", 1, map[int]float64{0: 1e-12}, "1"},
		{"sorted", 0, map[int]float64{2: 1, 0: 1, 1: 1}, "x1 + x2 + x3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, format.Expression(tc.constant, tc.deps, format.Fraction))
		})
	}
}

func TestVector(t *testing.T) {
	assert.Equal(t, "[3, 5, 1/4]", format.Vector([]float64{3, 5, 0.25}, format.Fraction))
	assert.Equal(t, "[]", format.Vector(nil, format.Decimal))
}

func TestMatrix(t *testing.T) {
	got := format.Matrix([][]float64{{1, -0.5}, {10, 2}}, format.Fraction)
	assert.Equal(t, " 1  -1/2\n10     2\n", got)
	assert.Equal(t, "", format.Matrix(nil, format.Decimal))
}
