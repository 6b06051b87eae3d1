// SPDX-License-Identifier: MIT
// Package: springnet/spectrum
//
// strategy.go — full versus truncated eigenpair selection.
//
// Determinism:
//   • Ties in |λ| keep the backend's ascending order (stable sort).

package spectrum

import (
	"math"
	"sort"

	"github.com/katalvlaran/springnet/matrix"
)

// Strategy decides which eigenpairs of a decomposition to keep.
type Strategy interface {
	Name() string
	Eigenpairs(b Backend, m matrix.Matrix) ([]float64, *matrix.Dense, error)
}

// SelectStrategy returns Full for k ≤ 0 or k ≥ dim, otherwise Truncated{K: k}.
func SelectStrategy(k, dim int) Strategy {
	if k <= 0 || k >= dim {
		return Full{}
	}

	return Truncated{K: k}
}

// Full keeps every eigenpair in ascending order.
type Full struct{}

// Name implements Strategy.
func (Full) Name() string { return "full" }

// Eigenpairs implements Strategy.
func (Full) Eigenpairs(b Backend, m matrix.Matrix) ([]float64, *matrix.Dense, error) {
	return b.Decompose(m)
}

// Truncated keeps the K eigenpairs of smallest |λ|, reported in ascending
// order of λ.
type Truncated struct{ K int }

// Name implements Strategy.
func (Truncated) Name() string { return "truncated" }

// Eigenpairs implements Strategy.
// Complexity: a full decomposition plus O(n log n) selection.
func (t Truncated) Eigenpairs(b Backend, m matrix.Matrix) ([]float64, *matrix.Dense, error) {
	values, vecs, err := b.Decompose(m)
	if err != nil {
		return nil, nil, err
	}
	if t.K <= 0 || t.K >= len(values) {
		return values, vecs, nil
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool {
		return math.Abs(values[order[a]]) < math.Abs(values[order[c]])
	})
	order = order[:t.K]
	sort.SliceStable(order, func(a, c int) bool { return values[order[a]] < values[order[c]] })

	return pick(values, vecs, order)
}
