// SPDX-License-Identifier: MIT
// Package: springnet/objective
//
// gap.go — Δ = ω[n+1] − ω[n] with 1-based n.

package objective

import "fmt"

// Gap returns freqs[n] − freqs[n-1] (ω[n+1] − ω[n] in 1-based terms).
// Never reads outside freqs; returns ErrGapIndex instead.
func Gap(freqs []float64, n int) (float64, error) {
	if n < 1 || n+1 > len(freqs) {
		return 0, fmt.Errorf("Gap(n=%d, len=%d): %w", n, len(freqs), ErrGapIndex)
	}

	return freqs[n] - freqs[n-1], nil
}

// RequiredModes is the number of lowest modes Gap needs for index n.
func RequiredModes(n int) int { return n + 1 }
