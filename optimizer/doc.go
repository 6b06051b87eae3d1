// SPDX-License-Identifier: MIT

// Package optimizer runs finite-difference gradient descent on the
// stiffnesses and node positions of a periodic spring network so that a
// chosen spectral gap grows, or approaches a target.
//
// One iteration:
//
//  1. Evaluate the gap Δ and loss L of the current State.
//  2. Snapshot the State and estimate dΔ/dp for every stiffness and every
//     node coordinate by central differences. Each estimate works on its own
//     clone of the snapshot, so estimates may run concurrently.
//  3. Apply all updates at once:
//     k ← max(0, k − η_k·dL/dΔ·dΔ/dk) and r ← r − η_r·dL/dΔ·dΔ/dr,
//     then fold positions back into the periodic box.
//
// An iteration costs 1 + 2·(E + 2N) assemblies and eigen-solves; see
// EvaluationsPerStep.
//
// Run repeats Step until |L_t − L_{t−1}| < Tol (from the second iteration)
// or MaxIter is reached, calling an optional Observer after every iteration.
// Steps emit OpenTelemetry spans and prometheus metrics, and log through
// log/slog.
package optimizer
