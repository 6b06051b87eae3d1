// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/AddAt return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (rejection of NaN/Inf on writes) from a single flag.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see impl_linear_algebra.go).
//   - RawData exposes the backing slice for zero-copy hand-off to other
//     linear-algebra libraries; treat it as read-only unless you own the matrix.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/AddAt: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxAddAt = "AddAt" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf rejects NaN/Inf in Set/AddAt when true (default).
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf on writes when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// DefaultValidateNaNInf toggles strict finite-value validation on Set/AddAt.
const DefaultValidateNaNInf = true

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and set the default numeric policy.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills the buffer deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           buf,
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewIdentity returns the n×n identity matrix.
// Complexity: O(n^2).
func NewIdentity(n int) (*Dense, error) {
	d, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 1.0
	}

	return d, nil
}

// NewDenseFrom builds an r×c Dense from a row-major slice (copied).
// Returns ErrInvalidDimensions for bad shapes and ErrDimensionMismatch when
// len(vals) != rows*cols.
// Complexity: O(r*c).
func NewDenseFrom(rows, cols int, vals []float64) (*Dense, error) {
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(vals) != rows*cols {
		return nil, ErrDimensionMismatch
	}
	copy(d.data, vals)

	return d, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods wrap the sentinel with coordinates and method name.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite values under policy.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// AddAt accumulates v onto the element at (row, col): m[row,col] += v.
// Used by assemblers that scatter local blocks into a global operator.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf if v or the sum is non-finite under policy.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) AddAt(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxAddAt, row, col, err)
	}
	sum := m.data[off] + v
	if m.validateNaNInf && (math.IsNaN(sum) || math.IsInf(sum, 0)) {
		return denseErrorf(ctxAddAt, row, col, ErrNaNInf)
	}
	m.data[off] = sum

	return nil
}

// RawData returns the row-major backing slice without copying.
// Mutations through the slice are visible in m and bypass the numeric policy.
// Complexity: O(1).
func (m *Dense) RawData() []float64 { return m.data }

// Col returns a copy of column j, or ErrOutOfRange.
// Complexity: O(r).
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxAt, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf, // preserve guard policy
	}
}

// String renders a HUMAN-READABLE dump of rows for diagnostics.
// Not for hot paths; intended for logs and debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
