// SPDX-License-Identifier: MIT
// Package: springnet/geometry
//
// errors.go — sentinel errors for the geometry package.
// Callers MUST use errors.Is(err, ErrX) to branch on semantics.

package geometry

import "errors"

// ErrInvalidBox indicates a box side that is not finite and strictly positive.
var ErrInvalidBox = errors.New("geometry: box sides must be finite and > 0")

// ErrTooFewPoints indicates a non-positive point count for sampling.
var ErrTooFewPoints = errors.New("geometry: point count must be > 0")

// ErrOutOfBox indicates a coordinate outside [0, L) or a non-finite coordinate.
var ErrOutOfBox = errors.New("geometry: coordinate outside periodic box")
