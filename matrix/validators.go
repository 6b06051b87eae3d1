// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/symmetry/finiteness checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil, including a typed nil *Dense.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix) // reuse the "nil argument" sentinel
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite scans every element and fails with ErrNaNInf on the first
// NaN or ±Inf. Assumes m is not nil.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	var v float64
	if d, ok := m.(*Dense); ok {
		for _, v = range d.data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
		return nil
	}

	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j) // indices are in range by construction
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Returns ErrNilMatrix/ErrDimensionMismatch on structural issues, ErrNaNInf on
// a non-finite tol, ErrAsymmetry on violation. A negative tol is treated as |tol|.
// Complexity: O(n^2).
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	if n <= 1 {
		return nil // trivially symmetric
	}

	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // upper triangle only
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}
