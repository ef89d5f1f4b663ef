// SPDX-License-Identifier: MIT

// Package format renders numbers, linear expressions and grids as display
// strings. Every function is pure.
//
// Two display modes exist:
//   - Fraction: reduced p/q with q ≤ MaxDenominator when such a fraction lies
//     within tolerance of the value, otherwise the decimal form.
//   - Decimal:  fixed precision with trailing zeros trimmed.
//
// Both modes snap values within tolerance of an integer to that integer and
// never print "-0".
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects fraction or decimal rendering.
type Mode int

const (
	Fraction Mode = iota
	Decimal
)

// Defaults.
const (
	DefaultTolerance      = 1e-9
	DefaultMaxDenominator = 1000
	DefaultPrecision      = 4
)

const (
	panicTolerance      = "format: WithTolerance: tol must be finite, non-negative"
	panicMaxDenominator = "format: WithMaxDenominator: q must be ≥ 1"
	panicPrecision      = "format: WithPrecision: digits must be in [0, 17]"
)

// String returns "fraction" or "decimal".
func (m Mode) String() string {
	switch m {
	case Fraction:
		return "fraction"
	case Decimal:
		return "decimal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "fraction"/"frac" and "decimal"/"dec" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fraction", "frac":
		return Fraction, nil
	case "decimal", "dec":
		return Decimal, nil
	default:
		return 0, fmt.Errorf("format: unknown mode %q (want fraction|decimal)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler (used by config files).
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// Option tunes rendering.
type Option func(*options)

type options struct {
	tol       float64
	maxDen    int64
	precision int
}

// WithTolerance sets the snapping tolerance (zero, integers, fractions).
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolerance)
	}

	return func(o *options) { o.tol = tol }
}

// WithMaxDenominator bounds q in Fraction mode.
func WithMaxDenominator(q int) Option {
	if q < 1 {
		panic(panicMaxDenominator)
	}

	return func(o *options) { o.maxDen = int64(q) }
}

// WithPrecision sets the number of decimal digits.
func WithPrecision(digits int) Option {
	if digits < 0 || digits > 17 {
		panic(panicPrecision)
	}

	return func(o *options) { o.precision = digits }
}

func gatherOptions(opts ...Option) options {
	o := options{
		tol:       DefaultTolerance,
		maxDen:    DefaultMaxDenominator,
		precision: DefaultPrecision,
	}
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// Number renders x in the given mode.
//
// Rules, in order:
//   - NaN and ±Inf print as "NaN", "Inf", "-Inf".
//   - |x| < tol prints "0".
//   - |x − round(x)| < tol prints the integer.
//   - Fraction: p/q with q ≤ max denominator and |x − p/q| < tol, else decimal.
//   - Decimal: fixed precision, trailing zeros trimmed, never "-0".
func Number(x float64, mode Mode, opts ...Option) string {
	return number(x, mode, gatherOptions(opts...))
}

func number(x float64, mode Mode, o options) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	case math.Abs(x) < o.tol:
		return "0"
	}

	if r := math.Round(x); math.Abs(x-r) < o.tol {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}

	if mode == Fraction {
		if p, q := approximate(x, o.maxDen); q > 1 && math.Abs(x-float64(p)/float64(q)) < o.tol {
			return strconv.FormatInt(p, 10) + "/" + strconv.FormatInt(q, 10)
		}
	}

	return decimal(x, o.precision)
}

// decimal formats with fixed digits and trims trailing zeros.
func decimal(x float64, digits int) string {
	s := strconv.FormatFloat(x, 'f', digits, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}

	return s
}

// approximate returns the last continued-fraction convergent p/q of x whose
// denominator does not exceed maxDen. The sign is carried by p.
func approximate(x float64, maxDen int64) (int64, int64) {
	neg := x < 0
	f := math.Abs(x)
	if f >= 1<<53 {
		return 0, 0
	}

	// h/k hold the two previous convergents.
	var h0, h1, k0, k1 int64 = 0, 1, 1, 0
	for i := 0; i < 64; i++ {
		a := math.Floor(f)
		if k1 > 0 && a > float64(maxDen) {
			break
		}
		ai := int64(a)
		h2, k2 := ai*h1+h0, ai*k1+k0
		if k2 > maxDen {
			break
		}
		h0, h1, k0, k1 = h1, h2, k1, k2

		frac := f - a
		if frac < 1e-15 {
			break
		}
		f = 1 / frac
	}
	if neg {
		h1 = -h1
	}

	return h1, k1
}
