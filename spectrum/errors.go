// SPDX-License-Identifier: MIT
// Package: springnet/spectrum
//
// errors.go — sentinel errors. Structural validation failures surface the
// matrix package sentinels, re-exported here for convenience.

package spectrum

import (
	"errors"

	"github.com/katalvlaran/springnet/matrix"
)

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = matrix.ErrNilMatrix

	// ErrNonSquare indicates a non-square input matrix.
	ErrNonSquare = matrix.ErrDimensionMismatch

	// ErrNonFinite indicates a NaN or ±Inf entry in the input matrix.
	ErrNonFinite = errors.New("spectrum: matrix has non-finite entries")

	// ErrDecomposition indicates the backend failed to factorise the matrix.
	ErrDecomposition = errors.New("spectrum: eigen decomposition failed")

	// ErrUnknownBackend indicates an unrecognised backend name.
	ErrUnknownBackend = errors.New("spectrum: unknown backend")
)
