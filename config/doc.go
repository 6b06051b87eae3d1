// SPDX-License-Identifier: MIT

// Package config holds the run configuration of a spring-network
// optimisation: network size and cutoff, objective, learning rates,
// finite-difference step, convergence, logging and checkpoint cadence.
//
// Files are YAML. Load starts from Default and overlays the file, so a
// partial file is valid; unknown keys are rejected. Field constraints are
// declared as go-playground/validator tags and checked by Validate.
package config
