// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// gradient.go — central-difference estimates of dΔ/dp.
//
// Determinism:
//   • Every estimate is a pure function of (snapshot, Param) and is stored
//     at the parameter's index, so worker count and scheduling never change
//     the result.
//
// Complexity:
//   • 2·(E + 2N) assemble+solve calls, O(N³) each.

package optimizer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/springnet/dynmat"
	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/topology"
)

// ParamKind distinguishes stiffness from coordinate parameters.
type ParamKind uint8

// Parameter kinds.
const (
	ParamStiffness ParamKind = iota
	ParamPosition
)

// String implements fmt.Stringer.
func (k ParamKind) String() string {
	if k == ParamStiffness {
		return "stiffness"
	}

	return "position"
}

// Param identifies one free parameter. Edge is set for ParamStiffness;
// Node and Axis for ParamPosition.
type Param struct {
	Kind ParamKind
	Edge topology.Edge
	Node int
	Axis int
}

// String renders the parameter for logs, e.g. "k(0,3)" or "r[4].y".
func (p Param) String() string {
	if p.Kind == ParamStiffness {
		return "k" + p.Edge.String()
	}
	axis := "x"
	if p.Axis == geometry.AxisY {
		axis = "y"
	}

	return fmt.Sprintf("r[%d].%s", p.Node, axis)
}

// Parameters lists every free parameter: stiffnesses in edge order, then
// (node, x) and (node, y) for each node.
func Parameters(s *State) []Param {
	out := make([]Param, 0, NumParams(s))
	for _, e := range s.Edges {
		out = append(out, Param{Kind: ParamStiffness, Edge: e})
	}
	var node, axis int
	for node = 0; node < s.Positions.Len(); node++ {
		for axis = 0; axis < dynmat.DOF; axis++ {
			out = append(out, Param{Kind: ParamPosition, Node: node, Axis: axis})
		}
	}

	return out
}

// Gradient holds dΔ/dp. Stiffness follows State.Edges order.
type Gradient struct {
	Stiffness   []float64
	Positions   []geometry.Vec
	Evaluations int
}

// Gradient estimates dΔ/dp for every parameter of s by central differences.
// s is read, never written.
//
// Errors:
//   - ErrNilState, ctx.Err() on cancellation, evaluation errors.
func (o *Optimizer) Gradient(ctx context.Context, s *State) (Gradient, error) {
	if s == nil || s.Positions == nil {
		return Gradient{}, ErrNilState
	}
	params := Parameters(s)
	partials := make([]float64, len(params))

	if o.workers <= 1 {
		for idx, p := range params {
			if err := ctx.Err(); err != nil {
				return Gradient{}, err
			}
			d, err := o.partial(s, p)
			if err != nil {
				return Gradient{}, err
			}
			partials[idx] = d
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.workers)
		for idx, p := range params {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				d, err := o.partial(s, p)
				if err != nil {
					return err
				}
				partials[idx] = d // distinct index per task
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Gradient{}, err
		}
	}

	out := Gradient{
		Stiffness:   partials[:len(s.Edges)],
		Positions:   make([]geometry.Vec, s.Positions.Len()),
		Evaluations: 2 * len(params),
	}
	rest := partials[len(s.Edges):]
	for node := range out.Positions {
		out.Positions[node] = geometry.Vec{rest[dynmat.DOF*node], rest[dynmat.DOF*node+1]}
	}

	return out, nil
}

// partial returns (Δ(p+h) − Δ(p−h)) / 2h. Only the perturbed component is
// cloned; the rest of snap is shared read-only.
func (o *Optimizer) partial(snap *State, p Param) (float64, error) {
	h := o.params.DeltaFD
	probe := &State{Positions: snap.Positions, Edges: snap.Edges, Stiffness: snap.Stiffness}

	var set func(v float64)
	var orig float64
	switch p.Kind {
	case ParamStiffness:
		probe.Stiffness = snap.Stiffness.Clone()
		orig = snap.Stiffness[p.Edge]
		set = func(v float64) { probe.Stiffness[p.Edge] = v }
	default:
		probe.Positions = snap.Positions.Clone()
		orig = snap.Positions.Coords[p.Node][p.Axis]
		set = func(v float64) { probe.Positions.Coords[p.Node][p.Axis] = v }
	}

	set(orig + h)
	plus, _, err := o.gap(probe)
	if err != nil {
		return 0, fmt.Errorf("%s +h: %w", p, err)
	}
	set(orig - h)
	minus, _, err := o.gap(probe)
	if err != nil {
		return 0, fmt.Errorf("%s -h: %w", p, err)
	}

	return (plus - minus) / (2 * h), nil
}
