// SPDX-License-Identifier: MIT
// Package: springnet/checkpoint
//
// errors.go — sentinel errors for snapshot files and history.

package checkpoint

import "errors"

// ErrNotFound indicates no checkpoint exists at the path.
var ErrNotFound = errors.New("checkpoint: not found")

// ErrCorrupt indicates an unparsable file or a checksum mismatch.
var ErrCorrupt = errors.New("checkpoint: corrupt")

// ErrVersionMismatch indicates a file written by an incompatible format version.
var ErrVersionMismatch = errors.New("checkpoint: version mismatch")

// ErrInvalidSnapshot indicates a snapshot that does not describe a valid state.
var ErrInvalidSnapshot = errors.New("checkpoint: invalid snapshot")
