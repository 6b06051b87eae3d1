// SPDX-License-Identifier: MIT

// Package geometry holds node positions of a 2D spring network living in a
// rectangular periodic box.
//
// A PositionSet couples the ordered coordinates with the Box. Distances are
// measured with the minimum-image convention: each axis component of a
// displacement is shifted by the nearest multiple of the box length so it
// lies in [-L/2, L/2]. Wrap folds coordinates back into [0, L) after an
// update.
//
// Sampling is deterministic for a fixed seed (math/rand with an explicit
// source), mirroring the seeding policy of the builder constructors.
package geometry
