// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the spectrum
// solvers: matrix-vector products and symmetric eigen-decomposition.
//
// Notes:
//   - All kernels use the central validators and wrap failures via matrixErrorf.
//   - *Dense inputs take a flat-slice fast path; other Matrix implementations
//     are copied into a Dense once before the hot loop.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opEigen  = "Eigen"
	opMatVec = "MatVec"
)

// Jacobi defaults. DefaultEigenTol bounds the largest off-diagonal entry
// at convergence; DefaultEigenSweeps caps full cyclic sweeps.
const (
	DefaultEigenTol    = 1e-12
	DefaultEigenSweeps = 100
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m·x.
//
// Errors:
//   - ErrNilMatrix (nil m or x), ErrDimensionMismatch (len(x) != m.Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}
		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// toDense copies any Matrix into a fresh *Dense (or clones a *Dense).
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	d, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			d.data[i*d.c+j] = v
		}
	}

	return d, nil
}

// maxOffDiagonal returns max_{i<j} |a[i,j]| for an n×n row-major buffer.
func maxOffDiagonal(a []float64, n int) float64 {
	var i, j, base int
	var off, maxOff float64
	for i = 0; i < n; i++ {
		base = i * n
		for j = i + 1; j < n; j++ {
			off = math.Abs(a[base+j])
			if off > maxOff {
				maxOff = off
			}
		}
	}

	return maxOff
}

// Eigen computes eigenvalues and eigenvectors of a real symmetric matrix via
// cyclic Jacobi sweeps.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Sweep all (p,q), p<q, in fixed row-major order applying a
//     Jacobi rotation that zeroes A[p,q]; accumulate rotations into Q.
//   - Stage 3: Stop once max |A[p,q]| < tol or fail after maxSweeps.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are the matching orthonormal eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry,
//     ErrNaNInf (non-finite input), ErrEigenFailed (no convergence).
//
// Determinism:
//   - Fixed sweep order produces bit-identical results for identical input.
//
// Complexity:
//   - Time O(maxSweeps * n^3), Space O(n^2).
//
// AI-Hints:
//   - tol≈1e-12 and maxSweeps≈50..100 are ample for n≤500; classical
//     cyclic Jacobi converges quadratically after a few sweeps.
func Eigen(m Matrix, tol float64, maxSweeps int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if maxSweeps <= 0 {
		maxSweeps = DefaultEigenSweeps
	}

	a, err := toDense(m) // working copy; input is never mutated
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := a.r
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		sweep, p, r, k     int
		app, aqq, apq      float64 // pivot entries
		akp, akq, qkp, qkq float64 // temporaries
		theta, t, c, s     float64 // rotation parameters
		A, Q               = a.data, q.data
		converged          bool
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		if maxOffDiagonal(A, n) < tol {
			converged = true
			break
		}
		for p = 0; p < n; p++ {
			for r = p + 1; r < n; r++ {
				apq = A[p*n+r]
				if math.Abs(apq) < tol {
					continue // already small enough; skip to avoid blow-ups
				}
				app = A[p*n+p]
				aqq = A[r*n+r]
				// θ = (aqq−app)/(2apq); t = sign(θ)/(|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for k = 0; k < n; k++ {
					if k == p || k == r {
						continue
					}
					akp = A[k*n+p]
					akq = A[k*n+r]
					A[k*n+p] = c*akp - s*akq
					A[p*n+k] = A[k*n+p]
					A[k*n+r] = s*akp + c*akq
					A[r*n+k] = A[k*n+r]
				}
				A[p*n+p] = app - t*apq
				A[r*n+r] = aqq + t*apq
				A[p*n+r], A[r*n+p] = 0, 0

				for k = 0; k < n; k++ {
					qkp = Q[k*n+p]
					qkq = Q[k*n+r]
					Q[k*n+p] = c*qkp - s*qkq
					Q[k*n+r] = s*qkp + c*qkq
				}
			}
		}
	}
	if !converged && maxOffDiagonal(A, n) >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
	}

	eigs := make([]float64, n)
	for k = 0; k < n; k++ {
		eigs[k] = A[k*n+k]
	}

	return eigs, q, nil
}
