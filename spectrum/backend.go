// SPDX-License-Identifier: MIT
// Package: springnet/spectrum
//
// backend.go — dense symmetric eigen-decomposition backends.
//
// Contract:
//   • Decompose returns eigenvalues in ascending order and a dim×dim matrix
//     whose column c is the unit eigenvector for value c.
//   • The input is never mutated.

package spectrum

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/springnet/matrix"
)

// Backend names accepted by ParseBackend.
const (
	BackendGonum  = "gonum"
	BackendJacobi = "jacobi"
)

// Backend factorises a real symmetric matrix.
type Backend interface {
	Name() string
	Decompose(m matrix.Matrix) ([]float64, *matrix.Dense, error)
}

// ParseBackend maps a configuration name onto a Backend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case BackendGonum, "":
		return GonumBackend{}, nil
	case BackendJacobi:
		return JacobiBackend{}, nil
	default:
		return nil, fmt.Errorf("backend %q: %w", name, ErrUnknownBackend)
	}
}

// GonumBackend delegates to mat.EigenSym.
type GonumBackend struct{}

// Name implements Backend.
func (GonumBackend) Name() string { return BackendGonum }

// Decompose implements Backend.
// Complexity: O(n³) time, O(n²) space.
func (GonumBackend) Decompose(m matrix.Matrix) ([]float64, *matrix.Dense, error) {
	n := m.Rows()
	sym := mat.NewSymDense(n, denseData(m)) // EigenSym reads the upper triangle

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("%s: %w", BackendGonum, ErrDecomposition)
	}
	values := es.Values(nil)

	var ev mat.Dense
	es.VectorsTo(&ev)
	vecs, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, err
	}
	raw := vecs.RawData()
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			raw[i*n+j] = ev.At(i, j)
		}
	}

	return values, vecs, nil
}

// denseData returns a fresh row-major copy of m.
func denseData(m matrix.Matrix) []float64 {
	n, c := m.Rows(), m.Cols()
	out := make([]float64, n*c)
	if d, ok := m.(*matrix.Dense); ok {
		copy(out, d.RawData())
		return out
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < c; j++ {
			out[i*c+j], _ = m.At(i, j)
		}
	}

	return out
}

// JacobiBackend delegates to matrix.Eigen. Zero fields select the matrix
// package defaults.
type JacobiBackend struct {
	Tol       float64
	MaxSweeps int
}

// Name implements Backend.
func (JacobiBackend) Name() string { return BackendJacobi }

// Decompose implements Backend. Jacobi yields eigenpairs in pivot order, so
// they are sorted ascending here.
// Complexity: O(sweeps · n³) time, O(n²) space.
func (b JacobiBackend) Decompose(m matrix.Matrix) ([]float64, *matrix.Dense, error) {
	tol := b.Tol
	if tol <= 0 {
		tol = matrix.DefaultEigenTol
	}
	values, q, err := matrix.Eigen(m, tol, b.MaxSweeps)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %w", BackendJacobi, ErrDecomposition, err)
	}
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool { return values[order[a]] < values[order[c]] })

	sorted, vecs, err := pick(values, q, order)
	if err != nil {
		return nil, nil, err
	}

	return sorted, vecs, nil
}

// pick gathers the eigenpairs listed in order into new slices.
func pick(values []float64, vecs *matrix.Dense, order []int) ([]float64, *matrix.Dense, error) {
	rows := vecs.Rows()
	out, err := matrix.NewDense(rows, len(order))
	if err != nil {
		return nil, nil, err
	}
	src, dst := vecs.RawData(), out.RawData()
	vals := make([]float64, len(order))
	srcCols, dstCols := vecs.Cols(), len(order)
	var r int
	for c, idx := range order {
		vals[c] = values[idx]
		for r = 0; r < rows; r++ {
			dst[r*dstCols+c] = src[r*srcCols+idx]
		}
	}

	return vals, out, nil
}
