// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra primitives used by the
// spring-network packages.
//
// What & Why:
//
//	Dense is a row-major float64 matrix behind the small Matrix interface.
//	Public accessors (At/Set/AddAt) never panic and return sentinel errors,
//	while hot kernels operate on the flat buffer directly. The Jacobi
//	eigen kernel (Eigen) gives a pure-Go, deterministic decomposition of
//	real symmetric matrices such as the dynamical matrix of a spring
//	network.
//
// Complexity:
//
//	NewDense O(r*c); At/Set/AddAt O(1); Clone O(r*c);
//	MatVec O(r*c); Eigen O(sweeps * n^3).
//
// Errors:
//
//	All failures are package sentinels (errors.go) wrapped with an
//	operation tag; match them with errors.Is.
package matrix
