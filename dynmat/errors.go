// SPDX-License-Identifier: MIT
// Package: springnet/dynmat
//
// errors.go — sentinel errors for the assembler. Edge and stiffness
// contract violations reuse topology.ErrEdgeIndex and
// topology.ErrMissingStiffness so callers branch on one sentinel.

package dynmat

import "errors"

// ErrNilPositions indicates a nil PositionSet.
var ErrNilPositions = errors.New("dynmat: positions are nil")

// ErrEmptyNetwork indicates a PositionSet with no nodes.
var ErrEmptyNetwork = errors.New("dynmat: network has no nodes")
