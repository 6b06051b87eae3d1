package dynmat_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/springnet/dynmat"
	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/matrix"
	"github.com/katalvlaran/springnet/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func mustPositions(t testing.TB, coords ...geometry.Vec) *geometry.PositionSet {
	t.Helper()
	pos, err := geometry.New(coords, geometry.UnitBox)
	require.NoError(t, err)

	return pos
}

// expectDense compares d against a row-major expectation.
func expectDense(t *testing.T, d *matrix.Dense, want [][]float64) {
	t.Helper()
	require.Equal(t, len(want), d.Rows())
	for i := range want {
		for j := range want[i] {
			v, err := d.At(i, j)
			require.NoError(t, err)
			assert.InDelta(t, want[i][j], v, eps, "D[%d][%d]", i, j)
		}
	}
}

func TestAssembleNoEdgesIsZero(t *testing.T) {
	pos := mustPositions(t, geometry.Vec{0.1, 0.2}, geometry.Vec{0.3, 0.4}, geometry.Vec{0.5, 0.6})
	d, err := dynmat.Assemble(pos, nil, topology.Stiffness{})
	require.NoError(t, err)
	require.Equal(t, 6, d.Rows())
	require.Equal(t, 6, d.Cols())
	for _, v := range d.RawData() {
		require.Zero(t, v)
	}
}

func TestAssembleSingleEdgeClosedForm(t *testing.T) {
	e := topology.Edge{I: 0, J: 1}
	cases := []struct {
		name string
		a, b geometry.Vec
		k    float64
		want [][]float64
	}{
		{
			name: "x-axis",
			a:    geometry.Vec{0.2, 0.5},
			b:    geometry.Vec{0.5, 0.5},
			k:    2,
			want: [][]float64{
				{2, 0, -2, 0},
				{0, 0, 0, 0},
				{-2, 0, 2, 0},
				{0, 0, 0, 0},
			},
		},
		{
			// separation 0.1 through the boundary, direction (-1, 0)
			name: "periodic x-axis",
			a:    geometry.Vec{0.05, 0.5},
			b:    geometry.Vec{0.95, 0.5},
			k:    1,
			want: [][]float64{
				{1, 0, -1, 0},
				{0, 0, 0, 0},
				{-1, 0, 1, 0},
				{0, 0, 0, 0},
			},
		},
		{
			name: "y-axis",
			a:    geometry.Vec{0.5, 0.1},
			b:    geometry.Vec{0.5, 0.3},
			k:    3,
			want: [][]float64{
				{0, 0, 0, 0},
				{0, 3, 0, -3},
				{0, 0, 0, 0},
				{0, -3, 0, 3},
			},
		},
		{
			name: "diagonal",
			a:    geometry.Vec{0.1, 0.1},
			b:    geometry.Vec{0.2, 0.2},
			k:    1,
			want: [][]float64{
				{0.5, 0.5, -0.5, -0.5},
				{0.5, 0.5, -0.5, -0.5},
				{-0.5, -0.5, 0.5, 0.5},
				{-0.5, -0.5, 0.5, 0.5},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustPositions(t, tc.a, tc.b)
			d, err := dynmat.Assemble(pos, []topology.Edge{e}, topology.Stiffness{e: tc.k})
			require.NoError(t, err)
			expectDense(t, d, tc.want)
		})
	}
}

func TestAssembleSkipsZeroLengthEdge(t *testing.T) {
	pos := mustPositions(t, geometry.Vec{0.3, 0.3}, geometry.Vec{0.3, 0.3})
	e := topology.Edge{I: 0, J: 1}
	d, err := dynmat.Assemble(pos, []topology.Edge{e}, topology.Stiffness{e: 5})
	require.NoError(t, err)
	for _, v := range d.RawData() {
		require.Zero(t, v)
	}
}

func TestSpringBlock(t *testing.T) {
	b := dynmat.SpringBlock(4, geometry.Vec{0.6, 0.8})
	assert.InDelta(t, 1.44, b[0][0], eps)
	assert.InDelta(t, 1.92, b[0][1], eps)
	assert.InDelta(t, 1.92, b[1][0], eps)
	assert.InDelta(t, 2.56, b[1][1], eps)
}

func TestAssembleSymmetricPSDRandomNetwork(t *testing.T) {
	pos, err := geometry.Sample(30, 7, geometry.UnitBox)
	require.NoError(t, err)
	edges, err := topology.BuildEdges(pos, 0.3)
	require.NoError(t, err)
	require.NotEmpty(t, edges)

	rng := rand.New(rand.NewSource(11))
	k := make(topology.Stiffness, len(edges))
	for _, e := range edges {
		k[e] = rng.Float64() * 3
	}

	d, err := dynmat.Assemble(pos, edges, k)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(d, 1e-12))

	dim := d.Rows()
	x := make([]float64, dim)
	for trial := 0; trial < 20; trial++ {
		for i := range x {
			x[i] = rng.Float64()*2 - 1
		}
		y, err := matrix.MatVec(d, x)
		require.NoError(t, err)
		var q float64
		for i := range x {
			q += x[i] * y[i]
		}
		require.GreaterOrEqual(t, q, -1e-10, "xᵀDx must be non-negative")
	}

	// rigid translations are zero modes
	for axis := 0; axis < dynmat.DOF; axis++ {
		for i := range x {
			x[i] = 0
		}
		for node := 0; node < pos.Len(); node++ {
			x[dynmat.DOF*node+axis] = 1
		}
		y, err := matrix.MatVec(d, x)
		require.NoError(t, err)
		for i := range y {
			require.InDelta(t, 0, y[i], 1e-10)
		}
	}
}

func TestAssembleDoesNotMutateInputs(t *testing.T) {
	pos := mustPositions(t, geometry.Vec{0.2, 0.5}, geometry.Vec{0.5, 0.7})
	before := pos.Clone()
	e := topology.Edge{I: 0, J: 1}
	k := topology.Stiffness{e: 1.5}
	_, err := dynmat.Assemble(pos, []topology.Edge{e}, k)
	require.NoError(t, err)
	require.Equal(t, before.Coords, pos.Coords)
	require.Equal(t, 1.5, k[e])
}

func TestAssembleErrors(t *testing.T) {
	pos := mustPositions(t, geometry.Vec{0.2, 0.5}, geometry.Vec{0.5, 0.5})
	e := topology.Edge{I: 0, J: 1}

	_, err := dynmat.Assemble(nil, nil, nil)
	require.ErrorIs(t, err, dynmat.ErrNilPositions)

	empty := mustPositions(t)
	_, err = dynmat.Assemble(empty, nil, nil)
	require.ErrorIs(t, err, dynmat.ErrEmptyNetwork)

	_, err = dynmat.Assemble(pos, []topology.Edge{{I: 0, J: 2}}, topology.Stiffness{{I: 0, J: 2}: 1})
	require.ErrorIs(t, err, topology.ErrEdgeIndex)

	_, err = dynmat.Assemble(pos, []topology.Edge{e}, topology.Stiffness{})
	require.ErrorIs(t, err, topology.ErrMissingStiffness)

	_, err = dynmat.Assemble(pos, []topology.Edge{e}, topology.Stiffness{e: math.Inf(1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
