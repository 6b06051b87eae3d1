// SPDX-License-Identifier: MIT
// Package: springnet/checkpoint
//
// snapshot.go — Snapshot and conversion to and from optimizer.State.

package checkpoint

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/springnet/config"
	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/optimizer"
	"github.com/katalvlaran/springnet/topology"
)

// Spring is one edge with its stiffness.
type Spring struct {
	I int     `json:"i"`
	J int     `json:"j"`
	K float64 `json:"k"`
}

// Snapshot is the resumable state of a run after Iteration completed
// iterations.
type Snapshot struct {
	RunID     string         `json:"run_id"`
	Iteration int            `json:"iteration"`
	SavedAt   time.Time      `json:"saved_at"`
	Box       geometry.Box   `json:"box"`
	Positions []geometry.Vec `json:"positions"`
	Stiffness []Spring       `json:"stiffness"`
	Config    config.Config  `json:"config"`
	Gap       float64        `json:"gap"`
	Loss      float64        `json:"loss"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string { return uuid.NewString() }

// FromState captures s. Springs follow s.Edges order.
func FromState(runID string, iteration int, s *optimizer.State, cfg config.Config, gap, loss float64) (Snapshot, error) {
	if err := s.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		return Snapshot{}, fmt.Errorf("%w: run id %q: %w", ErrInvalidSnapshot, runID, err)
	}
	coords := make([]geometry.Vec, s.Len())
	copy(coords, s.Positions.Coords)
	springs := make([]Spring, len(s.Edges))
	for i, e := range s.Edges {
		springs[i] = Spring{I: e.I, J: e.J, K: s.Stiffness[e]}
	}

	return Snapshot{
		RunID:     runID,
		Iteration: iteration,
		SavedAt:   time.Now().UTC(),
		Box:       s.Positions.Box,
		Positions: coords,
		Stiffness: springs,
		Config:    cfg,
		Gap:       gap,
		Loss:      loss,
	}, nil
}

// ToState rebuilds a validated optimizer.State. Edges come back in (I, J)
// order regardless of their order in the file.
func (s Snapshot) ToState() (*optimizer.State, error) {
	pos, err := geometry.New(s.Positions, s.Box)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	edges := make([]topology.Edge, len(s.Stiffness))
	k := make(topology.Stiffness, len(s.Stiffness))
	for i, sp := range s.Stiffness {
		edges[i] = topology.Edge{I: sp.I, J: sp.J}
		k[edges[i]] = sp.K
	}
	topology.SortEdges(edges)
	st := &optimizer.State{Positions: pos, Edges: edges, Stiffness: k}
	if err = st.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	return st, nil
}
