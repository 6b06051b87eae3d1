// SPDX-License-Identifier: MIT

// Package spectrum turns a symmetric dynamical matrix into vibrational
// frequencies and mode shapes.
//
// A Solver combines a decomposition Backend with a Strategy:
//
//   - GonumBackend uses gonum.org/v1/gonum/mat.EigenSym (LAPACK-style
//     tridiagonal QL). It is the default.
//   - JacobiBackend uses the pure-Go cyclic Jacobi kernel in package matrix.
//     It is deterministic bit-for-bit and slow for large matrices.
//
//   - Full keeps every eigenpair.
//   - Truncated keeps the k eigenpairs of smallest |λ|. It still performs a
//     dense decomposition and then selects.
//
// SelectStrategy picks Full when k ≤ 0 or k ≥ dim and Truncated otherwise.
//
// Eigenvalues are clamped to zero before the square root, so every
// frequency is non-negative even when round-off produces a tiny negative λ.
// Frequencies below ZeroTol are flagged as zero modes. Nothing is removed;
// the flags are informational.
package spectrum
