// SPDX-License-Identifier: MIT

// Package parse turns user-entered text into float64 values and grids.
//
// A cell is one of:
//   - empty (→ 0),
//   - a decimal number with '.' or ',' as separator ("2.5", "2,5", "-1e-3"),
//   - a small arithmetic expression over numbers with + - * / ^ and
//     parentheses ("1/4", "-2/3", "2*(1+1)", "2^10").
//
// Input is NFKC-normalised first, so full-width digits and operators typed
// on East-Asian keyboards parse like their ASCII forms.
//
// Whether an invalid cell aborts the whole grid or becomes 0 is the caller's
// choice (Policy); ParseCell itself always reports the failure.
package parse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/text/unicode/norm"
)

const (
	noPos = -1

	minusSign = "−" // typographic minus, common in pasted text
)

var (
	errNotFinite     = errors.New("result is not finite")
	errNotNumeric    = errors.New("result is not a number")
	errBadCharacters = errors.New("only numbers, + - * / ^ and parentheses are allowed")
	errSyntax        = errors.New("syntax error")
	errEvaluation    = errors.New("cannot be evaluated")
)

// ParseCell parses a single cell without position information.
func ParseCell(text string) (float64, error) {
	return ParseCellAt(text, noPos, noPos)
}

// ParseCellAt parses a single cell and, on failure, reports row/col
// (zero-based) in the returned *InvalidNumberError.
func ParseCellAt(text string, row, col int) (float64, error) {
	s := normalize(text)
	if s == "" {
		return 0, nil
	}

	s = strings.ReplaceAll(s, ",", ".")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &InvalidNumberError{Text: text, Row: row, Col: col, Err: errNotFinite}
		}
		return v, nil
	}

	v, err := evalArithmetic(s)
	if err != nil {
		return 0, &InvalidNumberError{Text: text, Row: row, Col: col, Err: err}
	}

	return v, nil
}

// normalize applies NFKC, trims space and maps the typographic minus to '-'.
func normalize(text string) string {
	s := norm.NFKC.String(text)
	s = strings.ReplaceAll(s, minusSign, "-")

	return strings.TrimSpace(s)
}

// evalArithmetic evaluates s as an arithmetic expression in float64.
// The character whitelist keeps identifiers, strings and builtins out.
// Errors are reduced to one line; expr's source listing would quote the
// rewritten text rather than what the user typed.
func evalArithmetic(s string) (float64, error) {
	if !arithmeticOnly(s) {
		return 0, errBadCharacters
	}
	program, err := expr.Compile(s, expr.Patch(floatLiterals{}))
	if err != nil {
		return 0, errSyntax
	}
	out, err := vm.Run(program, nil)
	if err != nil {
		return 0, errEvaluation
	}

	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %T", errNotNumeric, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}

	return v, nil
}

// floatLiterals rewrites integer literals as floats, so "9223372036854775807+1" or
// "99999999999*99999999999" never wrap around int64.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

func arithmeticOnly(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune(".+-*/^() \teE", r):
		default:
			return false
		}
	}

	return true
}
