// SPDX-License-Identifier: MIT

// Package springnet optimises the vibrational spectrum of 2D spring networks
// under periodic boundary conditions.
//
// A network is N point masses in a rectangular periodic box, joined by
// Hookean springs wherever the minimum-image distance is within a cutoff.
// The optimiser adjusts spring constants and node positions by gradient
// descent on a loss built from the gap between consecutive low-lying
// vibrational frequencies.
//
// Subpackages:
//
//	geometry/     periodic box, positions, minimum-image displacement
//	topology/     edges, stiffness maps, connected components
//	matrix/       dense matrix, validators, Jacobi eigen kernel
//	dynmat/       2N×2N dynamical matrix assembly
//	spectrum/     eigensolver backends, frequencies, zero modes
//	objective/    spectral gap and loss modes (maximise, target)
//	optimizer/    finite-difference gradient, step, run loop, metrics
//	config/       YAML configuration with validation
//	checkpoint/   JSON checkpoints and badger-backed run history
//
// The springnet command (cmd/springnet) wires these together:
//
//	springnet init               write a default springnet.yaml
//	springnet run                sample a network and optimise it
//	springnet resume             continue from a checkpoint
//	springnet spectrum           print the low-lying frequencies
//	springnet history [run-id]   inspect recorded iterations
package springnet
