// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// step.go — one gradient-descent iteration.

package optimizer

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StepResult reports the gap and loss realised at the top of the iteration,
// before the update was applied.
type StepResult struct {
	Gap         float64
	Loss        float64
	DLossDGap   float64
	ZeroModes   int
	Evaluations int
	Duration    time.Duration
}

// Step evaluates s, estimates the gradient on a snapshot and applies the
// stiffness and position updates in place.
//
// Implementation:
//   - Stage 1: Evaluate → (Δ, L, dL/dΔ).
//   - Stage 2: Gradient against s as it stands now.
//   - Stage 3: k ← max(0, k − η_k·dL/dΔ·dΔ/dk); r ← r − η_r·dL/dΔ·dΔ/dr; Wrap.
//
// On error s is left untouched.
func (o *Optimizer) Step(ctx context.Context, s *State) (StepResult, error) {
	ctx, span := tracer.Start(ctx, "optimizer.Step")
	defer span.End()

	start := time.Now()
	res, err := o.step(ctx, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StepResult{}, err
	}
	res.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Float64("springnet.gap", res.Gap),
		attribute.Float64("springnet.loss", res.Loss),
		attribute.Int("springnet.evaluations", res.Evaluations),
	)
	o.metrics.Iterations.Inc()
	o.metrics.Gap.Set(res.Gap)
	o.metrics.Loss.Set(res.Loss)
	o.metrics.ZeroModes.Set(float64(res.ZeroModes))
	o.metrics.StepDuration.Observe(res.Duration.Seconds())
	o.log.Debug("optimizer step",
		"gap", res.Gap,
		"loss", res.Loss,
		"zero_modes", res.ZeroModes,
		"evaluations", res.Evaluations,
		"duration", res.Duration,
	)

	return res, nil
}

func (o *Optimizer) step(ctx context.Context, s *State) (StepResult, error) {
	if err := s.Validate(); err != nil {
		return StepResult{}, fmt.Errorf("optimizer.Step: %w", err)
	}
	eval, err := o.Evaluate(s)
	if err != nil {
		return StepResult{}, fmt.Errorf("optimizer.Step: evaluate: %w", err)
	}
	trace.SpanFromContext(ctx).AddEvent("evaluated")

	grad, err := o.Gradient(ctx, s)
	if err != nil {
		return StepResult{}, fmt.Errorf("optimizer.Step: gradient: %w", err)
	}

	sign := eval.DLossDGap
	for i, e := range s.Edges {
		s.Stiffness[e] = math.Max(0, s.Stiffness[e]-o.params.EtaK*sign*grad.Stiffness[i])
	}
	coords := s.Positions.Coords
	for node := range coords {
		coords[node][0] -= o.params.EtaR * sign * grad.Positions[node][0]
		coords[node][1] -= o.params.EtaR * sign * grad.Positions[node][1]
	}
	s.Positions.Wrap()

	return StepResult{
		Gap:         eval.Gap,
		Loss:        eval.Loss,
		DLossDGap:   sign,
		ZeroModes:   eval.Spectrum.ZeroModeCount(),
		Evaluations: 1 + grad.Evaluations,
	}, nil
}
