// SPDX-License-Identifier: MIT

// Package checkpoint persists optimisation runs.
//
// A Snapshot is the resumable state of a run: positions, box, springs with
// their stiffness, the configuration, and the gap and loss at the iteration
// it was taken. Save writes it as versioned JSON with a SHA-256 checksum,
// atomically (temp file, fsync, rename), so a crash mid-write leaves the
// previous checkpoint intact. Load tells a missing file (ErrNotFound) apart
// from an unreadable one (ErrCorrupt).
//
// History is an append-only per-iteration log of gap and loss kept in a
// badger key-value store, keyed by run id and zero-padded iteration so a
// prefix scan returns records in iteration order.
package checkpoint
