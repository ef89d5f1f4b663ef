// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matcalc/matrix"
	"github.com/stretchr/testify/assert"
)

// TestDefaultOptions_Documented verifies that NewMatrixOptions() equals documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.NewMatrixOptions()
	assert.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf())
}

// TestNewMatrixOptions_LastWriterWins ensures later setters override earlier ones.
func TestNewMatrixOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewMatrixOptions(matrix.WithEpsilon(1e-3), matrix.WithEpsilon(1e-6))
	assert.Equal(t, 1e-6, o.Epsilon())

	o = matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	assert.True(t, o.ValidateNaNInf())

	o = matrix.NewMatrixOptions(nil, matrix.WithNoValidateNaNInf())
	assert.False(t, o.ValidateNaNInf())
}

// TestOptionPanics checks the stable panic messages for programmer errors.
func TestOptionPanics(t *testing.T) {
	assert.PanicsWithValue(t, "matrix: WithEpsilon: eps must be finite, positive", func() {
		matrix.WithEpsilon(-1)
	})
	assert.PanicsWithValue(t, "matrix: WithEpsilon: eps must be finite, positive", func() {
		matrix.WithEpsilon(0)
	})
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	assert.PanicsWithValue(t, "matrix: WithPivotColumns: k must be non-negative", func() {
		matrix.WithPivotColumns(-2)
	})
	assert.NotPanics(t, func() { matrix.WithEpsilon(math.SmallestNonzeroFloat64) })
}
