// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective policy.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - One epsilon for determinant, rank, inverse, LU and the linear solver, so
//     that results are reproducible across entry points.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the pivot threshold shared by every elimination kernel.
	// A candidate pivot with |v| < DefaultEpsilon marks its column as rank-deficient.
	DefaultEpsilon = 1e-10

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, positive"
	panicPivotColsInvalid = "matrix: WithPivotColumns: k must be non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	pivotCols      int     // > 0 limits the pivot search to the first pivotCols columns; 0 = all
}

// Epsilon reports the resolved pivot threshold.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether ingestion rejects non-finite values.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// WithEpsilon sets the pivot threshold eps used by elimination kernels.
// Implementation:
//   - Stage 1: validate eps is finite and > 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Notes:
//   - Larger eps treats more near-zero pivots as zero (rank drops earlier).
//
// AI-Hints:
//   - Keep the default unless inputs are noisy measurements; 1e-10 suits
//     hand-entered coefficients of moderate magnitude.
func WithEpsilon(eps float64) Option {
	// eps = 0 would accept an exact-zero column as a pivot
	if isNonFinite(eps) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation on ingestion.
// Matrices built this way accept NaN/Inf in Set; kernels then propagate them.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithPivotColumns restricts the elimination pivot search to the first k
// columns while row operations still span every column. This is how an
// augmented matrix [A|b] is reduced without ever pivoting on b.
// k = 0 restores the default (all columns).
func WithPivotColumns(k int) Option {
	if k < 0 {
		panic(panicPivotColsInvalid)
	}

	return func(o *Options) { o.pivotCols = k }
}

// NewMatrixOptions resolves opts on top of the documented defaults.
// Complexity: O(k) for k=len(opts).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided setters on top of defaults
// (last-writer-wins). This is the canonical internal entry for kernels.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
