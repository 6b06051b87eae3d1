// SPDX-License-Identifier: MIT
// Package: springnet/topology
//
// errors.go — sentinel errors for the topology package.

package topology

import "errors"

// ErrSelfLoop indicates an edge whose endpoints coincide (i == j).
var ErrSelfLoop = errors.New("topology: self-loop edge")

// ErrInvalidCutoff indicates a non-positive or non-finite cutoff radius.
var ErrInvalidCutoff = errors.New("topology: cutoff must be finite and > 0")

// ErrEdgeIndex indicates an edge endpoint outside [0, N).
var ErrEdgeIndex = errors.New("topology: edge index out of range")

// ErrNegativeStiffness indicates a stiffness value < 0 or non-finite.
var ErrNegativeStiffness = errors.New("topology: stiffness must be finite and >= 0")

// ErrMissingStiffness indicates an edge with no stiffness entry, or an entry
// for an edge outside the edge list.
var ErrMissingStiffness = errors.New("topology: stiffness map does not match edge list")

// ErrDuplicateEdge indicates the same unordered pair listed twice.
var ErrDuplicateEdge = errors.New("topology: duplicate edge")
