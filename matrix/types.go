// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the kernels.
// This file contains ONLY domain-facing types (the Matrix interface and the
// factorization result pairs). Errors and options live in dedicated files
// (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Kernels never mutate their Matrix arguments; they read through At (or the
// *Dense fast path) and return freshly allocated *Dense results.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// LUResult holds a Doolittle factorization A = L·U.
//   - L is unit lower-triangular (ones on the diagonal).
//   - U is upper-triangular.
type LUResult struct {
	L Matrix
	U Matrix
}

// PLUResult holds a partially pivoted factorization P·A = L·U.
//   - P is a permutation matrix.
//   - Perm[i] is the original row placed at row i (P[i][Perm[i]] = 1).
//   - Swaps counts row exchanges; det(P) = (-1)^Swaps.
type PLUResult struct {
	P     Matrix
	L     Matrix
	U     Matrix
	Perm  []int
	Swaps int
}
