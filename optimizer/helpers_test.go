package optimizer_test

import (
	"testing"

	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/objective"
	"github.com/katalvlaran/springnet/optimizer"
	"github.com/katalvlaran/springnet/topology"
	"github.com/stretchr/testify/require"
)

// dimer is two nodes joined by one spring of stiffness k along x.
// Its spectrum is {0, 0, 0, √(2k)}.
func dimer(t testing.TB, k float64) *optimizer.State {
	t.Helper()
	pos, err := geometry.New([]geometry.Vec{{0.2, 0.5}, {0.5, 0.5}}, geometry.UnitBox)
	require.NoError(t, err)
	e := topology.Edge{I: 0, J: 1}

	return &optimizer.State{
		Positions: pos,
		Edges:     []topology.Edge{e},
		Stiffness: topology.Stiffness{e: k},
	}
}

func sampled(t testing.TB, n int, seed int64, cutoff float64) *optimizer.State {
	t.Helper()
	pos, err := geometry.Sample(n, seed, geometry.UnitBox)
	require.NoError(t, err)
	s, err := optimizer.NewState(pos, cutoff, 1)
	require.NoError(t, err)
	require.NotEmpty(t, s.Edges)

	return s
}

func params(mut func(*optimizer.Params)) optimizer.Params {
	p := optimizer.DefaultParams()
	p.DeltaFD = 1e-3
	p.MaxIter = 5
	if mut != nil {
		mut(&p)
	}

	return p
}

func mustNew(t testing.TB, p optimizer.Params, opts ...optimizer.Option) *optimizer.Optimizer {
	t.Helper()
	o, err := optimizer.New(p, opts...)
	require.NoError(t, err)

	return o
}

func targetObjective(t testing.TB, v float64) objective.Objective {
	t.Helper()
	o, err := objective.New(objective.Target, &v)
	require.NoError(t, err)

	return o
}
