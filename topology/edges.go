// SPDX-License-Identifier: MIT
// Package: springnet/topology
//
// edges.go — Edge, Stiffness and cutoff-based edge construction.
//
// Contract:
//   • Edge{I, J} always satisfies I < J (NewEdge normalises).
//   • Stiffness holds exactly one finite, non-negative value per edge.
//   • BuildEdges emits pairs in (i asc, j asc) order.
//
// Complexity:
//   • BuildEdges O(N²) distance checks; Validate O(E).

package topology

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/springnet/geometry"
)

// Edge is an unordered node pair stored with I < J.
type Edge struct {
	I int `json:"i" yaml:"i"`
	J int `json:"j" yaml:"j"`
}

// NewEdge normalises (a, b) into an Edge with I < J.
// Returns ErrSelfLoop when a == b.
func NewEdge(a, b int) (Edge, error) {
	if a == b {
		return Edge{}, fmt.Errorf("NewEdge(%d,%d): %w", a, b, ErrSelfLoop)
	}
	if a > b {
		a, b = b, a
	}

	return Edge{I: a, J: b}, nil
}

// String renders the edge as "(i,j)".
func (e Edge) String() string { return fmt.Sprintf("(%d,%d)", e.I, e.J) }

// Stiffness maps each edge to its spring constant.
type Stiffness map[Edge]float64

// Clone returns an independent copy.
func (s Stiffness) Clone() Stiffness {
	cp := make(Stiffness, len(s))
	for e, k := range s {
		cp[e] = k
	}

	return cp
}

// UniformStiffness assigns k to every edge.
func UniformStiffness(edges []Edge, k float64) Stiffness {
	s := make(Stiffness, len(edges))
	for _, e := range edges {
		s[e] = k
	}

	return s
}

// BuildEdges returns every pair (i, j), i < j, whose minimum-image distance
// is ≤ cutoff.
//
// Errors:
//   - ErrInvalidCutoff.
//
// Complexity:
//   - Time O(N²), Space O(E).
func BuildEdges(pos *geometry.PositionSet, cutoff float64) ([]Edge, error) {
	if !(cutoff > 0) || math.IsInf(cutoff, 0) {
		return nil, fmt.Errorf("BuildEdges: cutoff=%g: %w", cutoff, ErrInvalidCutoff)
	}
	n := pos.Len()
	edges := make([]Edge, 0, n)
	var i, j int
	for i = 0; i < n-1; i++ {
		for j = i + 1; j < n; j++ {
			if pos.Distance(i, j) <= cutoff {
				edges = append(edges, Edge{I: i, J: j})
			}
		}
	}

	return edges, nil
}

// SortEdges orders edges by (I, J) in place.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].I != edges[b].I {
			return edges[a].I < edges[b].I
		}
		return edges[a].J < edges[b].J
	})
}

// ValidateEdges checks I < J, both endpoints in [0, n) and no duplicates.
// Complexity: O(E).
func ValidateEdges(edges []Edge, n int) error {
	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if e.I == e.J {
			return fmt.Errorf("edge %s: %w", e, ErrSelfLoop)
		}
		if e.I < 0 || e.J >= n || e.I > e.J {
			return fmt.Errorf("edge %s with n=%d: %w", e, n, ErrEdgeIndex)
		}
		if _, dup := seen[e]; dup {
			return fmt.Errorf("edge %s: %w", e, ErrDuplicateEdge)
		}
		seen[e] = struct{}{}
	}

	return nil
}

// ValidateStiffness checks one finite, non-negative entry per edge and no
// entries for unknown edges.
// Complexity: O(E).
func ValidateStiffness(edges []Edge, k Stiffness) error {
	if len(k) != len(edges) {
		return fmt.Errorf("%d entries for %d edges: %w", len(k), len(edges), ErrMissingStiffness)
	}
	for _, e := range edges {
		v, ok := k[e]
		if !ok {
			return fmt.Errorf("edge %s: %w", e, ErrMissingStiffness)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("edge %s k=%g: %w", e, v, ErrNegativeStiffness)
		}
	}

	return nil
}
