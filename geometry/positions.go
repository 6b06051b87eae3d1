// SPDX-License-Identifier: MIT
// Package: springnet/geometry
//
// positions.go — PositionSet, Box and the minimum-image convention.
//
// Contract:
//   • Box sides are finite and > 0; they never change during a run.
//   • After Wrap every coordinate lies in [0, W) × [0, H).
//   • Delta(i, j) is the shortest periodic vector from node i to node j.
//
// Complexity:
//   • Delta/Distance O(1); Wrap/Clone/Validate O(N).

package geometry

import (
	"fmt"
	"math"
)

// Axis enumerates coordinate components.
const (
	AxisX = 0
	AxisY = 1
)

// Vec is a 2D vector (x, y).
type Vec = [2]float64

// Box is the rectangular periodic cell [0, W) × [0, H).
type Box struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// UnitBox is the default 1×1 cell.
var UnitBox = Box{W: 1, H: 1}

// Validate reports ErrInvalidBox unless both sides are finite and > 0.
func (b Box) Validate() error {
	if !(b.W > 0) || !(b.H > 0) || math.IsInf(b.W, 0) || math.IsInf(b.H, 0) {
		return fmt.Errorf("Box{%g,%g}: %w", b.W, b.H, ErrInvalidBox)
	}

	return nil
}

// Side returns the box length along axis (AxisX or AxisY).
func (b Box) Side(axis int) float64 {
	if axis == AxisX {
		return b.W
	}

	return b.H
}

// MinImage maps one displacement component onto [-L/2, L/2] by subtracting
// the nearest multiple of L.
func MinImage(d, l float64) float64 {
	return d - l*math.Round(d/l)
}

// WrapCoord folds x into [0, l).
func WrapCoord(x, l float64) float64 {
	w := x - l*math.Floor(x/l)
	if w >= l { // x/l rounding can land exactly on l for tiny negative x
		w = 0
	}

	return w
}

// PositionSet is the ordered node coordinates plus the periodic box.
// It is owned by the optimisation loop and mutated in place.
type PositionSet struct {
	Coords []Vec
	Box    Box
}

// New builds a PositionSet from coordinates (copied) and a box.
// Coordinates are not wrapped; call Validate or Wrap as required.
func New(coords []Vec, box Box) (*PositionSet, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	cp := make([]Vec, len(coords))
	copy(cp, coords)

	return &PositionSet{Coords: cp, Box: box}, nil
}

// Len returns the node count N.
func (p *PositionSet) Len() int { return len(p.Coords) }

// Delta returns the minimum-image displacement from node i to node j, each
// component in [-L/2, L/2]. Indices must be in [0, N); callers validate.
func (p *PositionSet) Delta(i, j int) Vec {
	return Vec{
		MinImage(p.Coords[j][AxisX]-p.Coords[i][AxisX], p.Box.W),
		MinImage(p.Coords[j][AxisY]-p.Coords[i][AxisY], p.Box.H),
	}
}

// Distance returns |Delta(i, j)|.
func (p *PositionSet) Distance(i, j int) float64 {
	d := p.Delta(i, j)

	return math.Hypot(d[AxisX], d[AxisY])
}

// Wrap folds every coordinate back into the box.
// Complexity: O(N).
func (p *PositionSet) Wrap() {
	for i := range p.Coords {
		p.Coords[i][AxisX] = WrapCoord(p.Coords[i][AxisX], p.Box.W)
		p.Coords[i][AxisY] = WrapCoord(p.Coords[i][AxisY], p.Box.H)
	}
}

// Clone returns a deep copy.
func (p *PositionSet) Clone() *PositionSet {
	cp := make([]Vec, len(p.Coords))
	copy(cp, p.Coords)

	return &PositionSet{Coords: cp, Box: p.Box}
}

// Validate checks the box and that every coordinate is finite and in [0, L).
// Complexity: O(N).
func (p *PositionSet) Validate() error {
	if err := p.Box.Validate(); err != nil {
		return err
	}
	var axis int
	var x float64
	for i, c := range p.Coords {
		for axis = AxisX; axis <= AxisY; axis++ {
			x = c[axis]
			if math.IsNaN(x) || x < 0 || x >= p.Box.Side(axis) {
				return fmt.Errorf("node %d axis %d = %g: %w", i, axis, x, ErrOutOfBox)
			}
		}
	}

	return nil
}

// InBox reports whether every coordinate is finite and inside the box.
func (p *PositionSet) InBox() bool { return p.Validate() == nil }
