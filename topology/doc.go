// SPDX-License-Identifier: MIT

// Package topology builds and describes the fixed spring topology of a
// periodic network: the edge list, its stiffness map, adjacency and
// connected components.
//
// Edges are unordered node pairs normalised to I < J. BuildEdges connects
// every pair whose minimum-image distance is within a cutoff, iterating
// i ascending then j ascending so the output order is deterministic. The
// edge set does not change during an optimisation run; only the
// Stiffness values do.
//
// Components runs a breadth-first search over the adjacency list. A
// connected 2D spring network carries two rigid translational zero modes
// per component, which callers use to pick a gap index outside the
// zero-mode region.
package topology
