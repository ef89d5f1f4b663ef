// SPDX-License-Identifier: MIT

// Package matcalc is an in-memory calculator for small dense matrices,
// from arithmetic and factorizations to linear systems with symbolic
// solutions for their free variables.
//
// 🚀 What is matcalc?
//
//	A pure-Go library plus a command line that brings together:
//		• Dense matrices: construction, element access, shape checks
//		• Arithmetic: add, sub, mul, scale, Hadamard, integer powers
//		• Elimination: determinant, rank, inverse, REF and RREF
//		• Factorizations: Doolittle LU and LU with partial pivoting
//		• Linear systems: unique, inconsistent or infinite with free variables
//		• Expressions: "A + 4*B", "inv(A) * det(B)", "T(A) ^ 2"
//		• Display: reduced fractions or trimmed decimals
//
// Under the hood, everything is organized into small packages:
//
//	matrix/   — Matrix interface, Dense type, arithmetic and elimination kernels
//	parse/    — cell grammar and whitespace grids with strict or coerce-zero policy
//	linsys/   — solver for A·x = b returning a classified Solution
//	format/   — fraction/decimal rendering of numbers, expressions and grids
//	calc/     — matrix expression evaluator
//	history/  — labelled results of an evaluation session
//	worker/   — timeout-bounded execution of a computation
//	config/   — YAML settings: epsilon, display mode, limits, log level
//	cmd/matcalc — the command line
//
// Quick example:
//
//	m, _, _ := parse.ParseMatrix("1 2 5\n3 4 6", parse.Strict)
//	sol, _ := linsys.Solve(m)
//	fmt.Print(sol.Render(format.Fraction))
//	// unique (rank A = 2, rank [A|b] = 2)
//	// x1 = -4
//	// x2 = 9/2
//
//	go install github.com/katalvlaran/matcalc/cmd/matcalc@latest
package matcalc
