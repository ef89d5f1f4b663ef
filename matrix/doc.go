// SPDX-License-Identifier: MIT

// Package matrix implements dense real-valued matrices and the core
// linear-algebra kernels of matcalc.
//
// The matrix package provides:
//
//   - Dense, a row-major Matrix implementation with bounds-checked At/Set
//     and an optional NaN/Inf guard.
//   - Closed-form kernels: Add, Sub, Mul, Transpose, Scale, Power, Hadamard, Trace.
//   - Elimination kernels sharing one partial-pivoting engine and one epsilon:
//     Determinant, Rank, Inverse, RowEchelon, ReducedRowEchelon.
//   - Factorizations: LU (Doolittle, no pivoting) and PLU (partial pivoting).
//   - Grid conversions (NewDenseFromRows, ToRows) used by parsers and renderers.
//
// All kernels are pure: inputs are never mutated and each call allocates
// its result. Errors are sentinels wrapped with the operation name, so
// callers match them with errors.Is:
//
//	inv, err := matrix.Inverse(a)
//	if errors.Is(err, matrix.ErrSingular) { ... }
//
// Numeric tolerance is configured per call with WithEpsilon; the default
// (DefaultEpsilon) is shared by every elimination-based kernel.
package matrix
