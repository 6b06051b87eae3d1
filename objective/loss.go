// SPDX-License-Identifier: MIT
// Package: springnet/objective
//
// loss.go — Mode, Objective and the loss/sign pair.

package objective

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how the gap is scored.
type Mode string

// Supported modes.
const (
	Maximise Mode = "maximise"
	Target   Mode = "target"
)

// ParseMode accepts "maximise" (or "maximize") and "target", case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Maximise), "maximize":
		return Maximise, nil
	case string(Target):
		return Target, nil
	default:
		return "", fmt.Errorf("mode %q: %w", s, ErrUnknownMode)
	}
}

// Objective is an immutable, validated scoring rule.
type Objective struct {
	mode   Mode
	target float64
}

// New validates mode and target. Target mode needs a finite target; the
// target is ignored in maximise mode.
func New(mode Mode, target *float64) (Objective, error) {
	switch mode {
	case Maximise:
		return Objective{mode: Maximise}, nil
	case Target:
		if target == nil {
			return Objective{}, fmt.Errorf("New(%s): %w", mode, ErrMissingTarget)
		}
		if math.IsNaN(*target) || math.IsInf(*target, 0) {
			return Objective{}, fmt.Errorf("New(%s, %g): %w", mode, *target, ErrInvalidTarget)
		}
		return Objective{mode: Target, target: *target}, nil
	default:
		return Objective{}, fmt.Errorf("New(%q): %w", string(mode), ErrUnknownMode)
	}
}

// Mode reports the scoring mode.
func (o Objective) Mode() Mode { return o.mode }

// Target reports Δ* and whether the objective uses one.
func (o Objective) Target() (float64, bool) { return o.target, o.mode == Target }

// LossAndSign returns the loss for gap and dLoss/dgap.
func (o Objective) LossAndSign(gap float64) (loss, dLdGap float64) {
	if o.mode == Target {
		diff := gap - o.target
		return diff * diff, 2 * diff
	}

	return -gap, -1
}

// String renders the objective for logs.
func (o Objective) String() string {
	if o.mode == Target {
		return fmt.Sprintf("%s(%g)", o.mode, o.target)
	}

	return string(o.mode)
}

// LossAndSign parses mode, builds the objective and scores gap in one call.
func LossAndSign(gap float64, mode string, target *float64) (loss, dLdGap float64, err error) {
	m, err := ParseMode(mode)
	if err != nil {
		return 0, 0, err
	}
	o, err := New(m, target)
	if err != nil {
		return 0, 0, err
	}
	loss, dLdGap = o.LossAndSign(gap)

	return loss, dLdGap, nil
}
