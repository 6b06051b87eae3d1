// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// errors.go — sentinel errors for parameters, state and gradient methods.

package optimizer

import "errors"

// ErrInvalidParams indicates an out-of-range optimiser parameter.
var ErrInvalidParams = errors.New("optimizer: invalid parameters")

// ErrNilState indicates a nil State or a State without positions.
var ErrNilState = errors.New("optimizer: state is nil")

// ErrAnalyticGradient is returned when the analytic (Hellmann–Feynman)
// gradient is requested. Only finite differences are implemented.
var ErrAnalyticGradient = errors.New("optimizer: analytic gradient is not implemented")

// ErrUnknownGradient indicates an unrecognised gradient method.
var ErrUnknownGradient = errors.New("optimizer: unknown gradient method")
