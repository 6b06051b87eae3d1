// SPDX-License-Identifier: MIT
// Package: springnet/checkpoint
//
// history.go — badger-backed per-iteration run log.
//
// Keys:
//   run/<run id>/<iteration, 10-digit zero-padded> → JSON Record

package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "run/"

// Record is one iteration of one run.
type Record struct {
	RunID     string    `json:"run_id"`
	Iteration int       `json:"iteration"`
	Gap       float64   `json:"gap"`
	Loss      float64   `json:"loss"`
	ZeroModes int       `json:"zero_modes"`
	At        time.Time `json:"at"`
}

// History is safe for concurrent use.
type History struct {
	db *badger.DB
}

// OpenHistory opens (creating if needed) a persistent store under dir.
// badger's internal logs go to logger at matching levels; nil silences them.
func OpenHistory(dir string, logger *slog.Logger) (*History, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("checkpoint.OpenHistory: %w", err)
	}

	return openHistory(badger.DefaultOptions(dir), logger)
}

// OpenExistingHistory opens the store under dir without creating it.
// A missing dir yields ErrNotFound.
func OpenExistingHistory(dir string, logger *slog.Logger) (*History, error) {
	fi, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: history %s", ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("checkpoint.OpenExistingHistory: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: history %s is not a directory", ErrNotFound, dir)
	}

	return openHistory(badger.DefaultOptions(dir), logger)
}

// OpenInMemoryHistory opens a store that lives until Close.
func OpenInMemoryHistory() (*History, error) {
	return openHistory(badger.DefaultOptions("").WithInMemory(true), nil)
}

func openHistory(opts badger.Options, logger *slog.Logger) (*History, error) {
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{l: logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open history: %w", err)
	}

	return &History{db: db}, nil
}

// Close releases the store.
func (h *History) Close() error { return h.db.Close() }

func recordKey(runID string, iteration int) []byte {
	return []byte(fmt.Sprintf("%s%s/%010d", keyPrefix, runID, iteration))
}

// Append stores r, replacing any record with the same run and iteration.
func (h *History) Append(r Record) error {
	if r.RunID == "" || r.Iteration < 0 {
		return fmt.Errorf("%w: record run=%q iteration=%d", ErrInvalidSnapshot, r.RunID, r.Iteration)
	}
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}
	val, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("checkpoint.Append: %w", err)
	}

	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(r.RunID, r.Iteration), val)
	})
}

// List returns every record of runID in iteration order.
func (h *History) List(runID string) ([]Record, error) {
	prefix := []byte(keyPrefix + runID + "/")
	var out []Record
	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r Record
			if err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &r)
			}); err != nil {
				return fmt.Errorf("%w: key %s: %v", ErrCorrupt, it.Item().Key(), err)
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Runs returns the distinct run ids in key order.
func (h *History) Runs() ([]string, error) {
	prefix := []byte(keyPrefix)
	var runs []string
	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var last string
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, _, _ := strings.Cut(string(it.Item().Key()[len(prefix):]), "/")
			if id != last {
				runs = append(runs, id)
				last = id
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct{ l *slog.Logger }

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Info(fmt.Sprintf(format, args...), "component", "badger")
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
