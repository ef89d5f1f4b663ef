// SPDX-License-Identifier: MIT
// Package matrix: LU factorizations.
//
// Two entry points with two explicit pivoting policies:
//   - LU:  Doolittle, NO pivoting. L unit lower-triangular, U upper-triangular, A = L·U.
//     Fails with ErrSingular as soon as |U[i,i]| < eps, even when A itself is
//     invertible but has a vanishing leading principal minor (e.g. [[0,1],[1,0]]).
//   - PLU: partial pivoting, P·A = L·U. Never reorders silently: it is a separate
//     function with a separate result type.

package matrix

import (
	"fmt"
	"math"
)

const (
	opLU  = "LU"
	opPLU = "PLU"
)

// LU computes the Doolittle factorization A = L*U with unit diagonal on L (no pivoting).
//
// Implementation:
//   - Stage 1: Validate m (not nil, square, non-empty); allocate Dense L,U; set diag(L)=1.
//   - Stage 2: For i=0..n-1:
//     U[i,k] = A[i,k] − Σ_{j<i} L[i,j]·U[j,k]  for k ≥ i;
//     guard |U[i,i]| ≥ eps;
//     L[k,i] = (A[k,i] − Σ_{j<i} L[k,j]·U[j,i]) / U[i,i]  for k > i.
//
// Behavior highlights:
//   - Deterministic loops; fast path uses direct flat indexing.
//   - The decomposition is abandoned at the first small pivot; no partial L/U is returned.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrInvalidDimensions, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Use PLU when the leading principal minors of the input may vanish.
func LU(m Matrix, opts ...Option) (LUResult, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return LUResult{}, matrixErrorf(opLU, err)
	}
	if err := validateNonEmpty(m); err != nil {
		return LUResult{}, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)

	a, err := denseCopy(m)
	if err != nil {
		return LUResult{}, matrixErrorf(opLU, err)
	}
	n := a.r
	L, err := NewDense(n, n)
	if err != nil {
		return LUResult{}, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return LUResult{}, matrixErrorf(opLU, err)
	}

	var (
		i, j, k      int
		sum, pivot   float64
		baseI, baseK int
	)
	for i = 0; i < n; i++ {
		baseI = i * n
		L.data[baseI+i] = 1.0

		// Row i of U.
		for k = i; k < n; k++ {
			sum = ZeroSum
			for j = 0; j < i; j++ {
				sum += L.data[baseI+j] * U.data[j*n+k]
			}
			U.data[baseI+k] = a.data[baseI+k] - sum
		}

		pivot = U.data[baseI+i]
		if math.Abs(pivot) < o.eps {
			return LUResult{}, matrixErrorf(opLU, fmt.Errorf("U[%d,%d]=%g: %w", i, i, pivot, ErrSingular))
		}

		// Column i of L.
		for k = i + 1; k < n; k++ {
			baseK = k * n
			sum = ZeroSum
			for j = 0; j < i; j++ {
				sum += L.data[baseK+j] * U.data[j*n+i]
			}
			L.data[baseK+i] = (a.data[baseK+i] - sum) / pivot
		}
	}

	return LUResult{L: L, U: U}, nil
}

// PLU computes P·A = L·U with partial pivoting (largest |value| in the column).
//
// Implementation:
//   - Stage 1: Validate; copy A into U; L = 0; perm = identity.
//   - Stage 2: For each column k pick p = argmax_{i≥k} |U[i,k]|; |U[p,k]| < eps → ErrSingular.
//     Swap rows k,p of U, the already computed part of L (columns < k) and perm.
//   - Stage 3: Eliminate below the pivot storing multipliers in L; set diag(L)=1; build P.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrInvalidDimensions, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func PLU(m Matrix, opts ...Option) (PLUResult, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return PLUResult{}, matrixErrorf(opPLU, err)
	}
	if err := validateNonEmpty(m); err != nil {
		return PLUResult{}, matrixErrorf(opPLU, err)
	}
	o := gatherOptions(opts...)

	U, err := denseCopy(m)
	if err != nil {
		return PLUResult{}, matrixErrorf(opPLU, err)
	}
	n := U.r
	L, err := NewDense(n, n)
	if err != nil {
		return PLUResult{}, matrixErrorf(opPLU, err)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	swaps := 0
	var (
		i, j, k, p int
		best, v, f float64
	)
	for k = 0; k < n; k++ {
		p = k
		best = math.Abs(U.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(U.data[i*n+k]); v > best {
				best, p = v, i
			}
		}
		if best < o.eps {
			return PLUResult{}, matrixErrorf(opPLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			swapRows(U.data, n, p, k)
			for j = 0; j < k; j++ {
				L.data[k*n+j], L.data[p*n+j] = L.data[p*n+j], L.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			swaps++
		}
		for i = k + 1; i < n; i++ {
			f = U.data[i*n+k] / U.data[k*n+k]
			L.data[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k; j < n; j++ {
				U.data[i*n+j] -= f * U.data[k*n+j]
			}
			U.data[i*n+k] = 0
		}
	}
	for i = 0; i < n; i++ {
		L.data[i*n+i] = 1
	}

	P, err := NewDense(n, n)
	if err != nil {
		return PLUResult{}, matrixErrorf(opPLU, err)
	}
	for i = 0; i < n; i++ {
		P.data[i*n+perm[i]] = 1
	}

	return PLUResult{P: P, L: L, U: U, Perm: perm, Swaps: swaps}, nil
}
