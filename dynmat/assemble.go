// SPDX-License-Identifier: MIT
// Package: springnet/dynmat
//
// assemble.go — dense 2N×2N assembly from positions, edges and stiffness.
//
// Determinism:
//   • Edges are scattered in slice order; the result depends only on inputs.

package dynmat

import (
	"fmt"
	"math"

	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/matrix"
	"github.com/katalvlaran/springnet/topology"
)

// DOF is the number of degrees of freedom per node.
const DOF = 2

const opAssemble = "Assemble"

// SpringBlock returns the 2×2 block k·n̂n̂ᵀ for a unit direction n̂.
func SpringBlock(k float64, nhat geometry.Vec) [2][2]float64 {
	xy := k * nhat[0] * nhat[1] // computed once so the block is exactly symmetric

	return [2][2]float64{
		{k * nhat[0] * nhat[0], xy},
		{xy, k * nhat[1] * nhat[1]},
	}
}

// Assemble builds the 2N×2N dynamical matrix from positions, edges and
// stiffnesses. Zero-length springs (coincident endpoints under the minimum
// image) contribute nothing.
//
// Implementation:
//   - Stage 1: validate positions and every edge index; each edge must have
//     a stiffness entry.
//   - Stage 2: per edge, scatter ±K into the four node blocks.
//
// Errors:
//   - ErrNilPositions, ErrEmptyNetwork, topology.ErrEdgeIndex,
//     topology.ErrMissingStiffness, matrix.ErrNaNInf (non-finite block).
//
// Complexity:
//   - Time O(N² + E) (zero-fill dominates), Space O(N²).
func Assemble(pos *geometry.PositionSet, edges []topology.Edge, k topology.Stiffness) (*matrix.Dense, error) {
	if pos == nil {
		return nil, fmt.Errorf("%s: %w", opAssemble, ErrNilPositions)
	}
	n := pos.Len()
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", opAssemble, ErrEmptyNetwork)
	}
	d, err := matrix.NewDense(DOF*n, DOF*n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAssemble, err)
	}

	var (
		delta     geometry.Vec
		dist, kij float64
		block     [2][2]float64
		ok        bool
	)
	for _, e := range edges {
		if e.I < 0 || e.J < 0 || e.I >= n || e.J >= n || e.I == e.J {
			return nil, fmt.Errorf("%s: edge %s with n=%d: %w", opAssemble, e, n, topology.ErrEdgeIndex)
		}
		if kij, ok = k[e]; !ok {
			return nil, fmt.Errorf("%s: edge %s: %w", opAssemble, e, topology.ErrMissingStiffness)
		}
		delta = pos.Delta(e.I, e.J)
		dist = math.Hypot(delta[0], delta[1])
		if dist == 0 {
			continue // degenerate spring
		}
		block = SpringBlock(kij, geometry.Vec{delta[0] / dist, delta[1] / dist})
		if err = scatter(d, e.I, e.J, block); err != nil {
			return nil, fmt.Errorf("%s: edge %s: %w", opAssemble, e, err)
		}
	}

	return d, nil
}

// scatter adds block onto (i,i) and (j,j) and subtracts it from (i,j) and (j,i).
func scatter(d *matrix.Dense, i, j int, block [2][2]float64) error {
	var a, b int
	var v float64
	for a = 0; a < DOF; a++ {
		for b = 0; b < DOF; b++ {
			v = block[a][b]
			if err := d.AddAt(DOF*i+a, DOF*i+b, v); err != nil {
				return err
			}
			if err := d.AddAt(DOF*j+a, DOF*j+b, v); err != nil {
				return err
			}
			if err := d.AddAt(DOF*i+a, DOF*j+b, -v); err != nil {
				return err
			}
			if err := d.AddAt(DOF*j+a, DOF*i+b, -v); err != nil {
				return err
			}
		}
	}

	return nil
}
