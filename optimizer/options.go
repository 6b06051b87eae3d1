// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// options.go — functional options for New.
//
// Contract:
//   • Option constructors panic on meaningless inputs (nil logger, nil
//     solver, negative workers). Optimisation itself never panics.

package optimizer

import (
	"log/slog"

	"github.com/katalvlaran/springnet/spectrum"
)

// Option customises an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("optimizer: WithLogger(nil)")
	}
	return func(o *Optimizer) { o.log = l }
}

// WithSolver sets the eigen solver. Panics on nil.
func WithSolver(s *spectrum.Solver) Option {
	if s == nil {
		panic("optimizer: WithSolver(nil)")
	}
	return func(o *Optimizer) { o.solver = s }
}

// WithMetrics attaches prometheus collectors built by NewMetrics.
// Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("optimizer: WithMetrics(nil)")
	}
	return func(o *Optimizer) { o.metrics = m }
}

// WithWorkers bounds concurrent derivative estimates: 1 is serial, 0 means
// runtime.GOMAXPROCS(0). Panics on n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("optimizer: WithWorkers(n < 0)")
	}
	return func(o *Optimizer) { o.workers = n }
}

// WithObserver registers a callback invoked after every Run iteration.
// Panics on nil.
func WithObserver(fn Observer) Option {
	if fn == nil {
		panic("optimizer: WithObserver(nil)")
	}
	return func(o *Optimizer) { o.observer = fn }
}
