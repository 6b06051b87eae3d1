// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Algorithms return these sentinels (optionally wrapped with an
// operation tag) and tests check them via errors.Is. No algorithm panics on
// user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for grep-ability.
// Do not wrap these at definition site; attach context with
// fmt.Errorf("ctx: %w", ErrX) at the boundary.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/AddAt) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands
	// (e.g., MatVec with len(x) != Cols, or a non-square input to Eigen).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the requested tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrEigenFailed indicates that the Jacobi routine did not converge
	// under the given tolerance and sweep budget.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)
