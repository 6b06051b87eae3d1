// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// optimizer.go — Optimizer construction and single-state evaluation.

package optimizer

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/springnet/dynmat"
	"github.com/katalvlaran/springnet/objective"
	"github.com/katalvlaran/springnet/spectrum"
)

// Optimizer holds validated parameters and collaborators. It carries no
// per-run state; concurrent Steps on distinct States are safe, concurrent
// Steps on one State are not.
type Optimizer struct {
	params   Params
	solver   *spectrum.Solver
	log      *slog.Logger
	metrics  *Metrics
	workers  int
	observer Observer
}

// New validates params and applies opts. Defaults: GonumBackend solver,
// slog.Default, unregistered metrics, one worker.
func New(params Params, opts ...Option) (*Optimizer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("optimizer.New: %w", err)
	}
	o := &Optimizer{
		params:  params,
		solver:  spectrum.NewSolver(),
		log:     slog.Default(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o, nil
}

// Params returns the validated parameters.
func (o *Optimizer) Params() Params { return o.params }

// Workers reports the resolved worker count.
func (o *Optimizer) Workers() int { return o.workers }

// Evaluation is the objective at one State.
type Evaluation struct {
	Gap       float64
	Loss      float64
	DLossDGap float64
	Spectrum  *spectrum.Spectrum
}

// Evaluate assembles, solves for the lowest n+1 modes and scores the gap.
//
// Errors:
//   - ErrNilState, assembly and solver errors, objective.ErrGapIndex when
//     the network has fewer than n+1 modes.
func (o *Optimizer) Evaluate(s *State) (Evaluation, error) {
	if s == nil || s.Positions == nil {
		return Evaluation{}, ErrNilState
	}
	gap, spec, err := o.gap(s)
	if err != nil {
		return Evaluation{}, err
	}
	loss, sign := o.params.Objective.LossAndSign(gap)

	return Evaluation{Gap: gap, Loss: loss, DLossDGap: sign, Spectrum: spec}, nil
}

// gap is the shared assemble → solve → Δ pipeline. It only reads s.
func (o *Optimizer) gap(s *State) (float64, *spectrum.Spectrum, error) {
	d, err := dynmat.Assemble(s.Positions, s.Edges, s.Stiffness)
	if err != nil {
		return 0, nil, err
	}
	spec, err := o.solver.Solve(d, objective.RequiredModes(o.params.NGap))
	if err != nil {
		return 0, nil, err
	}
	o.metrics.Evaluations.Inc()
	g, err := objective.Gap(spec.Frequencies, o.params.NGap)
	if err != nil {
		return 0, nil, err
	}

	return g, spec, nil
}
