// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// run.go — the iteration loop with convergence and observer hooks.

package optimizer

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Iteration is passed to the Observer after each completed Step.
// Index is 1-based and counts iterations across resumed runs.
type Iteration struct {
	Index  int
	Result StepResult
	State  *State
}

// Observer is called synchronously after every iteration. A non-nil error
// stops the run and is returned wrapped from Run.
type Observer func(ctx context.Context, it Iteration) error

// StopReason explains why Run returned.
type StopReason string

// Stop reasons.
const (
	StopConverged StopReason = "converged"
	StopMaxIter   StopReason = "max_iter"
)

// RunResult summarises a run. Final is evaluated on the state after the last
// update.
type RunResult struct {
	Iterations int
	Reason     StopReason
	Last       StepResult
	Final      Evaluation
}

// Converged reports whether the loss change fell below Tol.
func (r RunResult) Converged() bool { return r.Reason == StopConverged }

// Run iterates Step from iteration 1. See RunFrom.
func (o *Optimizer) Run(ctx context.Context, s *State) (RunResult, error) {
	return o.RunFrom(ctx, s, 0)
}

// RunFrom continues a run that has already completed done iterations, up to
// MaxIter in total. It stops early when |L_t − L_{t−1}| < Tol for t ≥ 2 of
// this call. ctx is checked between iterations; a cancelled run returns
// ctx.Err() with the state as of the last completed iteration.
func (o *Optimizer) RunFrom(ctx context.Context, s *State, done int) (RunResult, error) {
	ctx, span := tracer.Start(ctx, "optimizer.Run", trace.WithAttributes(
		attribute.Int("springnet.start_iteration", done),
		attribute.Int("springnet.max_iter", o.params.MaxIter),
	))
	defer span.End()

	res, err := o.run(ctx, s, done)
	span.SetAttributes(
		attribute.Int("springnet.iterations", res.Iterations),
		attribute.String("springnet.stop_reason", string(res.Reason)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return res, err
}

func (o *Optimizer) run(ctx context.Context, s *State, done int) (RunResult, error) {
	if err := s.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("optimizer.Run: %w", err)
	}
	if done < 0 {
		done = 0
	}
	o.log.Info("optimizer run start",
		"nodes", s.Len(),
		"edges", len(s.Edges),
		"objective", o.params.Objective.String(),
		"n_gap", o.params.NGap,
		"start_iteration", done,
		"max_iter", o.params.MaxIter,
		"evaluations_per_step", EvaluationsPerStep(s),
		"workers", o.workers,
	)

	res := RunResult{Iterations: done, Reason: StopMaxIter}
	prevLoss := math.NaN()
	for t := done + 1; t <= o.params.MaxIter; t++ {
		if err := ctx.Err(); err != nil {
			o.log.Warn("optimizer run cancelled", "iteration", res.Iterations, "err", err)
			return res, err
		}
		step, err := o.Step(ctx, s)
		if err != nil {
			return res, fmt.Errorf("iteration %d: %w", t, err)
		}
		res.Iterations = t
		res.Last = step

		if o.observer != nil {
			if err = o.observer(ctx, Iteration{Index: t, Result: step, State: s}); err != nil {
				return res, fmt.Errorf("iteration %d: observer: %w", t, err)
			}
		}
		if !math.IsNaN(prevLoss) && math.Abs(step.Loss-prevLoss) < o.params.Tol {
			res.Reason = StopConverged
			break
		}
		prevLoss = step.Loss
	}

	final, err := o.Evaluate(s)
	if err != nil {
		return res, fmt.Errorf("final evaluation: %w", err)
	}
	res.Final = final
	o.log.Info("optimizer run stop",
		"reason", res.Reason,
		"iterations", res.Iterations,
		"gap", final.Gap,
		"loss", final.Loss,
	)

	return res, nil
}
