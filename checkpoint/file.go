// SPDX-License-Identifier: MIT
// Package: springnet/checkpoint
//
// file.go — atomic, checksummed JSON snapshot files.
//
// Format:
//   {"version": "1", "checksum": "<sha256 hex of snapshot JSON>", "snapshot": {...}}

package checkpoint

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Version is the current file format version.
const Version = "1"

type envelope struct {
	Version  string          `json:"version"`
	Checksum string          `json:"checksum"`
	Snapshot json.RawMessage `json:"snapshot"`
}

func checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Save writes snap to path atomically. The parent directory must exist.
func Save(path string, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("checkpoint.Save: marshal: %w", err)
	}
	data, err := json.MarshalIndent(envelope{
		Version:  Version,
		Checksum: checksum(payload),
		Snapshot: payload,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint.Save: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".checkpoint-*.tmp")
	if err != nil {
		return fmt.Errorf("checkpoint.Save: %w", err)
	}
	tmpPath := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("checkpoint.Save: write: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("checkpoint.Save: sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("checkpoint.Save: close: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("checkpoint.Save: rename: %w", err)
	}
	ok = true

	return nil
}

// Load reads and verifies the checkpoint at path.
//
// Errors:
//   - ErrNotFound when path does not exist.
//   - ErrCorrupt for unparsable content or a checksum mismatch.
//   - ErrVersionMismatch for another format version.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Snapshot{}, fmt.Errorf("checkpoint.Load: %w", err)
	}

	var env envelope
	if err = json.Unmarshal(data, &env); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if env.Version != Version {
		return Snapshot{}, fmt.Errorf("%w: got %q, want %q", ErrVersionMismatch, env.Version, Version)
	}
	var compact bytes.Buffer // MarshalIndent re-indents the embedded payload
	if err = json.Compact(&compact, env.Snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if checksum(compact.Bytes()) != env.Checksum {
		return Snapshot{}, fmt.Errorf("%w: %s: checksum mismatch", ErrCorrupt, path)
	}

	var snap Snapshot
	if err = json.Unmarshal(env.Snapshot, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	return snap, nil
}
