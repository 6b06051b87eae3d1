// SPDX-License-Identifier: MIT
// Package: springnet/geometry
//
// sample.go — uniform (Poisson) point sampling in the periodic box.
//
// Determinism:
//   • A fixed seed yields identical coordinates; draws are taken in node
//     order, x before y.

package geometry

import (
	"fmt"
	"math/rand"
)

// Sample returns n points drawn uniformly in box using a seeded source.
//
// Errors:
//   - ErrTooFewPoints (n ≤ 0), ErrInvalidBox.
//
// Complexity:
//   - Time O(n), Space O(n).
func Sample(n int, seed int64, box Box) (*PositionSet, error) {
	return sample(n, rand.New(rand.NewSource(seed)), box)
}

func sample(n int, rng *rand.Rand, box Box) (*PositionSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Sample: n=%d: %w", n, ErrTooFewPoints)
	}
	if err := box.Validate(); err != nil {
		return nil, fmt.Errorf("Sample: %w", err)
	}

	coords := make([]Vec, n)
	for i := range coords {
		coords[i] = Vec{WrapCoord(rng.Float64()*box.W, box.W), WrapCoord(rng.Float64()*box.H, box.H)}
	}

	return &PositionSet{Coords: coords, Box: box}, nil
}
