// SPDX-License-Identifier: MIT

// Package objective scores a spectrum by the gap between two consecutive
// frequencies.
//
// With a 1-based gap index n the gap is Δ = ω[n+1] − ω[n]. Two modes turn
// Δ into a loss to minimise together with dLoss/dΔ:
//
//	maximise  L = −Δ          dL/dΔ = −1
//	target    L = (Δ − Δ*)²   dL/dΔ = 2(Δ − Δ*)
//
// The optimizer combines dL/dΔ with finite-difference estimates of dΔ/dp.
package objective
