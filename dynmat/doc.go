// SPDX-License-Identifier: MIT

// Package dynmat assembles the dynamical (stiffness) matrix of a unit-mass
// periodic spring network.
//
// For N nodes the matrix is 2N×2N, indexed by (2·node + axis). Each spring
// (i, j) with stiffness k and minimum-image unit direction n̂ contributes the
// 2×2 block K = k·n̂n̂ᵀ:
//
//	D[ii] += K   D[jj] += K   D[ij] -= K   D[ji] -= K
//
// The result is symmetric and positive-semidefinite: each spring adds the
// rank-1 quadratic form k·(n̂·(u_j − u_i))².
//
// The matrix is rebuilt from scratch on every evaluation and never cached.
package dynmat
