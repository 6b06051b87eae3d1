// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// state.go — the mutable network state owned by a run.
//
// Contract:
//   • Edges are fixed for a run; Stiffness has exactly one entry per edge.
//   • After every Step: stiffness ≥ 0 and every coordinate lies in the box.

package optimizer

import (
	"fmt"

	"github.com/katalvlaran/springnet/dynmat"
	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/topology"
)

// State is the network being optimised. Step mutates Positions and
// Stiffness in place.
type State struct {
	Positions *geometry.PositionSet
	Edges     []topology.Edge
	Stiffness topology.Stiffness
}

// NewState connects every pair within cutoff and sets every stiffness to k0.
// The positions are copied.
func NewState(pos *geometry.PositionSet, cutoff, k0 float64) (*State, error) {
	if pos == nil {
		return nil, ErrNilState
	}
	edges, err := topology.BuildEdges(pos, cutoff)
	if err != nil {
		return nil, err
	}
	s := &State{
		Positions: pos.Clone(),
		Edges:     edges,
		Stiffness: topology.UniformStiffness(edges, k0),
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Len returns the node count.
func (s *State) Len() int { return s.Positions.Len() }

// Clone returns a deep copy.
func (s *State) Clone() *State {
	edges := make([]topology.Edge, len(s.Edges))
	copy(edges, s.Edges)

	return &State{
		Positions: s.Positions.Clone(),
		Edges:     edges,
		Stiffness: s.Stiffness.Clone(),
	}
}

// Validate checks positions, edge indices and one finite, non-negative
// stiffness per edge.
func (s *State) Validate() error {
	if s == nil || s.Positions == nil {
		return ErrNilState
	}
	if err := s.Positions.Validate(); err != nil {
		return fmt.Errorf("state positions: %w", err)
	}
	if err := topology.ValidateEdges(s.Edges, s.Positions.Len()); err != nil {
		return fmt.Errorf("state edges: %w", err)
	}
	if err := topology.ValidateStiffness(s.Edges, s.Stiffness); err != nil {
		return fmt.Errorf("state stiffness: %w", err)
	}

	return nil
}

// EvaluationsPerStep is the assemble+solve count of one Step:
// one evaluation plus two per free parameter (E stiffnesses, 2N coordinates).
func EvaluationsPerStep(s *State) int {
	return 1 + 2*NumParams(s)
}

// NumParams is E + 2N.
func NumParams(s *State) int {
	return len(s.Edges) + dynmat.DOF*s.Positions.Len()
}
