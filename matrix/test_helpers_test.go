// SPDX-License-Identifier: MIT
// Package matrix_test: shared helpers for matrix tests and benchmarks.
package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/springnet/matrix"
	"github.com/stretchr/testify/require"
)

// MustDense allocates an r×c Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandSymmetric returns a deterministic random symmetric n×n matrix.
func RandSymmetric(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, n, n)
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v = rng.Float64()*2 - 1
			require.NoError(t, m.Set(i, j, v))
			require.NoError(t, m.Set(j, i, v))
		}
	}

	return m
}

// hide wraps a Matrix to hide its concrete type and force interface fallbacks.
type hide struct{ matrix.Matrix }
