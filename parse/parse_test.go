// SPDX-License-Identifier: MIT

package parse_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/katalvlaran/matcalc/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"3", 3},
		{"-4.5", -4.5},
		{"2,5", 2.5},
		{"1e-3", 0.001},
		{"1/4", 0.25},
		{"-2/3", -2.0 / 3.0},
		{"2*(1+1)", 4},
		{"2^10", 1024},
		{"1,5/3", 0.5},
		{" 7 ", 7},
		{"−3", -3},  // U+2212
		{"１/４", 0.25}, // full-width, NFKC
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parse.ParseCell(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-15)
		})
	}
}

func TestParseCell_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "1/0", "inf", "NaN", "2+", "len(\"ab\")", "x1", "1..2"} {
		t.Run(in, func(t *testing.T) {
			_, err := parse.ParseCell(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, parse.ErrInvalidNumber)

			var ine *parse.InvalidNumberError
			require.True(t, errors.As(err, &ine))
			assert.Equal(t, in, ine.Text)
			assert.Equal(t, -1, ine.Row)
		})
	}
}

func TestParseCell_LargeIntegers(t *testing.T) {
	got, err := parse.ParseCell("9223372036854775807+1")
	require.NoError(t, err)
	assert.Equal(t, math.Exp2(63), got)

	got, err = parse.ParseCell("99999999999*99999999999")
	require.NoError(t, err)
	assert.InEpsilon(t, 9.9999999998e21, got, 1e-12)

	got, err = parse.ParseCell("-9223372036854775807-10")
	require.NoError(t, err)
	assert.Less(t, got, 0.0)
}

func TestParseCell_SingleLineCause(t *testing.T) {
	_, err := parse.ParseCell("1,2,3")
	var ine *parse.InvalidNumberError
	require.ErrorAs(t, err, &ine)
	assert.Equal(t, `parse: invalid number "1,2,3": syntax error`, err.Error())
	assert.NotContains(t, err.Error(), "\n")
	assert.NotContains(t, err.Error(), "1.2.3")
}

func TestParseCellAt_Position(t *testing.T) {
	_, err := parse.ParseCellAt("abc", 1, 2)
	var ine *parse.InvalidNumberError
	require.ErrorAs(t, err, &ine)
	assert.Equal(t, 1, ine.Row)
	assert.Equal(t, 2, ine.Col)
	assert.Contains(t, err.Error(), "row 2, col 3")
}

func TestParseGrid(t *testing.T) {
	rows, warnings, err := parse.ParseGrid("1 2 3\n\n4;5;6\r\n", parse.Strict)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, rows)
}

func TestParseGrid_Ragged(t *testing.T) {
	_, _, err := parse.ParseGrid("1 2\n3", parse.Strict)
	require.ErrorIs(t, err, parse.ErrRaggedRows)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseGrid_Empty(t *testing.T) {
	_, _, err := parse.ParseGrid(" \n\t\n", parse.CoerceZero)
	require.ErrorIs(t, err, parse.ErrEmptyGrid)
}

func TestParseGrid_Policy(t *testing.T) {
	const text = "1 x\n3 4"

	_, _, err := parse.ParseGrid(text, parse.Strict)
	require.ErrorIs(t, err, parse.ErrInvalidNumber)

	rows, warnings, err := parse.ParseGrid(text, parse.CoerceZero)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {3, 4}}, rows)
	require.Len(t, warnings, 1)

	var ine *parse.InvalidNumberError
	require.ErrorAs(t, warnings[0], &ine)
	assert.Equal(t, 0, ine.Row)
	assert.Equal(t, 1, ine.Col)
}

func TestParseMatrix(t *testing.T) {
	m, _, err := parse.ParseMatrix("1 1/2\n0 2,5", parse.Strict)
	require.NoError(t, err)
	rows, err := matrix.ToRows(m)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0.5}, {0, 2.5}}, rows)
}

func TestParseVector(t *testing.T) {
	v, _, err := parse.ParseVector("1 2 3", parse.Strict)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v)

	v, _, err = parse.ParseVector("1\n2\n3", parse.Strict)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v)

	_, _, err = parse.ParseVector("1 2\n3 4", parse.Strict)
	require.ErrorIs(t, err, parse.ErrNotVector)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "strict", parse.Strict.String())
	assert.Equal(t, "coerce-zero", parse.CoerceZero.String())
}
