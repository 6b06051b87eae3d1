// SPDX-License-Identifier: MIT
// Package: springnet/objective
//
// errors.go — sentinel errors for gap extraction and loss construction.

package objective

import "errors"

// ErrGapIndex indicates n < 1 or n+1 beyond the available frequencies.
var ErrGapIndex = errors.New("objective: gap index out of range")

// ErrUnknownMode indicates a mode other than maximise or target.
var ErrUnknownMode = errors.New("objective: unknown mode")

// ErrMissingTarget indicates target mode without a target gap Δ*.
var ErrMissingTarget = errors.New("objective: target mode requires a target gap")

// ErrInvalidTarget indicates a non-finite target gap.
var ErrInvalidTarget = errors.New("objective: target gap must be finite")
