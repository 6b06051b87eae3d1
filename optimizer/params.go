// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// params.go — validated optimiser parameters.

package optimizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/springnet/objective"
)

// GradientMethod names how dΔ/dp is estimated.
type GradientMethod string

// Supported gradient methods.
const (
	FiniteDifference GradientMethod = "finite-difference"
	Analytic         GradientMethod = "analytic"
)

// ParseGradientMethod maps a configuration value onto a GradientMethod.
// The empty string selects FiniteDifference.
func ParseGradientMethod(s string) (GradientMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FiniteDifference), "fd":
		return FiniteDifference, nil
	case string(Analytic):
		return Analytic, nil
	default:
		return "", fmt.Errorf("gradient %q: %w", s, ErrUnknownGradient)
	}
}

// Params drives one optimisation run.
type Params struct {
	NGap      int                 // 1-based gap index n; Δ = ω[n+1] − ω[n]
	EtaK      float64             // stiffness learning rate
	EtaR      float64             // position learning rate
	DeltaFD   float64             // central-difference step
	Objective objective.Objective // maximise or target
	Tol       float64             // convergence threshold on |ΔL|
	MaxIter   int
	Gradient  GradientMethod
}

// DefaultParams returns the stock run parameters with a maximise objective.
func DefaultParams() Params {
	obj, _ := objective.New(objective.Maximise, nil) // cannot fail

	return Params{
		NGap:      3,
		EtaK:      1e-2,
		EtaR:      1e-3,
		DeltaFD:   1e-4,
		Objective: obj,
		Tol:       1e-6,
		MaxIter:   500,
		Gradient:  FiniteDifference,
	}
}

// Validate checks every field. Analytic gradients are rejected with
// ErrAnalyticGradient.
func (p Params) Validate() error {
	switch {
	case p.NGap < 1:
		return fmt.Errorf("NGap=%d must be ≥ 1: %w", p.NGap, ErrInvalidParams)
	case !finitePos(p.EtaK):
		return fmt.Errorf("EtaK=%g must be > 0: %w", p.EtaK, ErrInvalidParams)
	case !finitePos(p.EtaR):
		return fmt.Errorf("EtaR=%g must be > 0: %w", p.EtaR, ErrInvalidParams)
	case !finitePos(p.DeltaFD):
		return fmt.Errorf("DeltaFD=%g must be > 0: %w", p.DeltaFD, ErrInvalidParams)
	case !finiteNonNeg(p.Tol):
		return fmt.Errorf("Tol=%g: %w", p.Tol, ErrInvalidParams)
	case p.MaxIter < 1:
		return fmt.Errorf("MaxIter=%d must be ≥ 1: %w", p.MaxIter, ErrInvalidParams)
	case p.Objective.Mode() == "":
		return fmt.Errorf("objective unset: %w", ErrInvalidParams)
	}

	switch p.Gradient {
	case FiniteDifference, "":
	case Analytic:
		return ErrAnalyticGradient
	default:
		return fmt.Errorf("gradient %q: %w", string(p.Gradient), ErrUnknownGradient)
	}

	return nil
}

func finiteNonNeg(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func finitePos(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
