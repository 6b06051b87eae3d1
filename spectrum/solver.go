// SPDX-License-Identifier: MIT
// Package: springnet/spectrum
//
// solver.go — Solver, Spectrum and options.
//
// Contract:
//   • Frequencies are ascending and ≥ 0; negative eigenvalues clamp to 0.
//   • Modes column c pairs with Frequencies[c].
//   • ZeroModes[c] ⇔ Frequencies[c] < ZeroTol.

package spectrum

import (
	"fmt"
	"math"

	"github.com/katalvlaran/springnet/matrix"
)

const opSolve = "Solve"

// Defaults for Solver.
const (
	DefaultZeroTol     = 1e-9
	DefaultSymmetryTol = 1e-9
)

// Spectrum is the result of one solve.
type Spectrum struct {
	Frequencies []float64
	Modes       *matrix.Dense
	ZeroModes   []bool
}

// ZeroModeCount returns how many frequencies were flagged as zero modes.
func (s *Spectrum) ZeroModeCount() int {
	c := 0
	for _, z := range s.ZeroModes {
		if z {
			c++
		}
	}

	return c
}

// Solver is stateless after construction and safe for concurrent use.
type Solver struct {
	backend     Backend
	zeroTol     float64
	symmetryTol float64
}

// Option configures a Solver.
type Option func(*Solver)

// WithBackend selects the decomposition backend. Panics on nil.
func WithBackend(b Backend) Option {
	if b == nil {
		panic("spectrum: WithBackend(nil)")
	}
	return func(s *Solver) { s.backend = b }
}

// WithZeroTol sets the zero-mode threshold. Non-positive values keep the
// default.
func WithZeroTol(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.zeroTol = tol
		}
	}
}

// WithSymmetryTol sets the tolerance of the symmetry check. Non-positive
// values keep the default.
func WithSymmetryTol(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.symmetryTol = tol
		}
	}
}

// NewSolver returns a Solver with GonumBackend and DefaultZeroTol unless
// overridden.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		backend:     GonumBackend{},
		zeroTol:     DefaultZeroTol,
		symmetryTol: DefaultSymmetryTol,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Backend reports the configured backend.
func (s *Solver) Backend() Backend { return s.backend }

// ZeroTol reports the zero-mode threshold.
func (s *Solver) ZeroTol() float64 { return s.zeroTol }

// SymmetryTol reports the tolerance of the symmetry check.
func (s *Solver) SymmetryTol() float64 { return s.symmetryTol }

// Solve computes frequencies and modes of the symmetric matrix m. k ≤ 0
// requests every mode; 0 < k < dim requests the k modes of smallest |λ|.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, matrix.ErrAsymmetry, ErrNonFinite,
//     ErrDecomposition.
//
// Complexity:
//   - Time O(n³) for both strategies, Space O(n²).
func (s *Solver) Solve(m matrix.Matrix, k int) (*Spectrum, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, ErrNonFinite)
	}
	if err := matrix.ValidateSymmetric(m, s.symmetryTol); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}

	strategy := SelectStrategy(k, m.Rows())
	values, vecs, err := strategy.Eigenpairs(s.backend, m)
	if err != nil {
		return nil, fmt.Errorf("%s(%s/%s): %w", opSolve, s.backend.Name(), strategy.Name(), err)
	}

	freqs := make([]float64, len(values))
	zero := make([]bool, len(values))
	for i, lambda := range values {
		if lambda < 0 {
			lambda = 0
		}
		freqs[i] = math.Sqrt(lambda)
		zero[i] = freqs[i] < s.zeroTol
	}

	return &Spectrum{Frequencies: freqs, Modes: vecs, ZeroModes: zero}, nil
}
