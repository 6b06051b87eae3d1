package optimizer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/objective"
	"github.com/katalvlaran/springnet/optimizer"
	"github.com/katalvlaran/springnet/spectrum"
)

func TestParamsValidate(t *testing.T) {
	require.NoError(t, optimizer.DefaultParams().Validate())

	cases := map[string]func(*optimizer.Params){
		"n_gap":    func(p *optimizer.Params) { p.NGap = 0 },
		"eta_k":    func(p *optimizer.Params) { p.EtaK = -1 },
		"eta_k=0":  func(p *optimizer.Params) { p.EtaK = 0 },
		"eta_r":    func(p *optimizer.Params) { p.EtaR = math.Inf(1) },
		"eta_r=0":  func(p *optimizer.Params) { p.EtaR = 0 },
		"delta_fd": func(p *optimizer.Params) { p.DeltaFD = 0 },
		"tol":      func(p *optimizer.Params) { p.Tol = math.NaN() },
		"max_it":   func(p *optimizer.Params) { p.MaxIter = 0 },
		"obj":      func(p *optimizer.Params) { p.Objective = objective.Objective{} },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := optimizer.New(params(mut))
			require.ErrorIs(t, err, optimizer.ErrInvalidParams)
		})
	}

	_, err := optimizer.New(params(func(p *optimizer.Params) { p.Gradient = optimizer.Analytic }))
	require.ErrorIs(t, err, optimizer.ErrAnalyticGradient)

	_, err = optimizer.New(params(func(p *optimizer.Params) { p.Gradient = "newton" }))
	require.ErrorIs(t, err, optimizer.ErrUnknownGradient)
}

func TestParseGradientMethod(t *testing.T) {
	m, err := optimizer.ParseGradientMethod("")
	require.NoError(t, err)
	assert.Equal(t, optimizer.FiniteDifference, m)
	m, err = optimizer.ParseGradientMethod("analytic")
	require.NoError(t, err)
	assert.Equal(t, optimizer.Analytic, m)
	_, err = optimizer.ParseGradientMethod("adjoint")
	require.ErrorIs(t, err, optimizer.ErrUnknownGradient)
}

func TestOptionsPanicOnNil(t *testing.T) {
	assert.Panics(t, func() { optimizer.WithLogger(nil) })
	assert.Panics(t, func() { optimizer.WithSolver(nil) })
	assert.Panics(t, func() { optimizer.WithMetrics(nil) })
	assert.Panics(t, func() { optimizer.WithObserver(nil) })
	assert.Panics(t, func() { optimizer.WithWorkers(-1) })
}

func TestWorkersZeroResolvesToGOMAXPROCS(t *testing.T) {
	o := mustNew(t, params(nil), optimizer.WithWorkers(0))
	assert.GreaterOrEqual(t, o.Workers(), 1)
}

func TestEvaluationsPerStep(t *testing.T) {
	s := dimer(t, 1)
	assert.Equal(t, 1+2*(1+4), optimizer.EvaluationsPerStep(s))
	assert.Len(t, optimizer.Parameters(s), 5)
}

func TestEvaluateDimer(t *testing.T) {
	o := mustNew(t, params(nil))
	ev, err := o.Evaluate(dimer(t, 2))
	require.NoError(t, err)
	assert.InDelta(t, 2, ev.Gap, 1e-6) // √(2·2) − 0
	assert.InDelta(t, -2, ev.Loss, 1e-6)
	assert.Equal(t, -1.0, ev.DLossDGap)
	require.Len(t, ev.Spectrum.Frequencies, 4)
}

func TestEvaluateGapIndexTooLarge(t *testing.T) {
	pos, err := geometry.New([]geometry.Vec{{0.5, 0.5}}, geometry.UnitBox)
	require.NoError(t, err)
	o := mustNew(t, params(nil))
	_, err = o.Evaluate(&optimizer.State{Positions: pos})
	require.ErrorIs(t, err, objective.ErrGapIndex)

	_, err = o.Evaluate(nil)
	require.ErrorIs(t, err, optimizer.ErrNilState)
}

func TestGradientDimerClosedForm(t *testing.T) {
	o := mustNew(t, params(nil))
	g, err := o.Gradient(context.Background(), dimer(t, 1))
	require.NoError(t, err)
	require.Len(t, g.Stiffness, 1)
	assert.InDelta(t, 1/math.Sqrt2, g.Stiffness[0], 1e-4) // d√(2k)/dk at k=1
	for _, v := range g.Positions {
		assert.InDelta(t, 0, v[0], 1e-4)
		assert.InDelta(t, 0, v[1], 1e-4)
	}
	assert.Equal(t, 10, g.Evaluations)
}

func TestGradientSerialMatchesParallel(t *testing.T) {
	s := sampled(t, 8, 4, 0.5)
	serial := mustNew(t, params(nil), optimizer.WithWorkers(1))
	parallel := mustNew(t, params(nil), optimizer.WithWorkers(4))

	gs, err := serial.Gradient(context.Background(), s)
	require.NoError(t, err)
	gp, err := parallel.Gradient(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, gs, gp)
}

func TestGradientDoesNotMutateState(t *testing.T) {
	s := sampled(t, 6, 2, 0.5)
	before := s.Clone()
	o := mustNew(t, params(nil), optimizer.WithWorkers(3))
	_, err := o.Gradient(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, before, s)
}

func TestGradientCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, w := range []int{1, 4} {
		o := mustNew(t, params(nil), optimizer.WithWorkers(w))
		_, err := o.Gradient(ctx, sampled(t, 6, 1, 0.5))
		require.ErrorIs(t, err, context.Canceled)
	}
}

func TestStepInvariants(t *testing.T) {
	s := sampled(t, 8, 6, 0.5)
	edges := append(s.Edges[:0:0], s.Edges...)
	o := mustNew(t, params(func(p *optimizer.Params) {
		p.EtaK = 0.5
		p.EtaR = 0.05
	}), optimizer.WithWorkers(2))

	for i := 0; i < 3; i++ {
		res, err := o.Step(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, optimizer.EvaluationsPerStep(s), res.Evaluations)
		require.NoError(t, s.Validate())
	}
	assert.Equal(t, edges, s.Edges)
	for _, c := range s.Positions.Coords {
		assert.True(t, c[0] >= 0 && c[0] < 1 && c[1] >= 0 && c[1] < 1, "coord %v", c)
	}
}

func TestStepClampsStiffnessAtZero(t *testing.T) {
	// target far below the current gap pushes k down hard
	s := dimer(t, 1)
	o := mustNew(t, params(func(p *optimizer.Params) {
		p.Objective = targetObjective(t, -10)
		p.EtaK = 1e6
	}))
	res, err := o.Step(context.Background(), s)
	require.NoError(t, err)
	assert.Greater(t, res.DLossDGap, 0.0)
	assert.Zero(t, s.Stiffness[s.Edges[0]])
}

func TestStepLeavesStateOnError(t *testing.T) {
	s := dimer(t, 1)
	s.Stiffness[s.Edges[0]] = -1
	before := s.Clone()
	o := mustNew(t, params(nil))
	_, err := o.Step(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, before, s)
}

func TestStepEnsembleIncreasesGap(t *testing.T) {
	o := mustNew(t, params(func(p *optimizer.Params) {
		p.EtaK = 1e-3
		p.EtaR = 1e-4
	}), optimizer.WithWorkers(0))

	var improved int
	var total float64
	seeds := []int64{1, 2, 3, 4, 5}
	for _, seed := range seeds {
		s := sampled(t, 6, seed, 0.6)
		before, err := o.Evaluate(s)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err = o.Step(context.Background(), s)
			require.NoError(t, err)
		}
		after, err := o.Evaluate(s)
		require.NoError(t, err)
		total += after.Gap - before.Gap
		if after.Gap >= before.Gap-1e-9 {
			improved++
		}
	}
	assert.Greater(t, total, 0.0)
	assert.GreaterOrEqual(t, improved, 3)
}

func TestStepEnsembleDimersIncreaseGap(t *testing.T) {
	o := mustNew(t, params(nil))
	const cutoff = 0.35

	for seed := int64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a := geometry.Vec{rng.Float64(), rng.Float64()}
		r := 0.05 + 0.25*rng.Float64()
		phi := 2 * math.Pi * rng.Float64()
		b := geometry.Vec{
			geometry.WrapCoord(a[0]+r*math.Cos(phi), 1),
			geometry.WrapCoord(a[1]+r*math.Sin(phi), 1),
		}
		pos, err := geometry.New([]geometry.Vec{a, b}, geometry.UnitBox)
		require.NoError(t, err)
		s, err := optimizer.NewState(pos, cutoff, 0.5+1.5*rng.Float64())
		require.NoError(t, err)
		require.Len(t, s.Edges, 1, "seed %d", seed)

		res, err := o.Step(context.Background(), s)
		require.NoError(t, err)
		after, err := o.Evaluate(s)
		require.NoError(t, err)
		assert.Greater(t, after.Gap, res.Gap, "seed %d", seed)
	}
}

func TestRunConvergesOnFlatLoss(t *testing.T) {
	var seen []int
	o := mustNew(t, params(func(p *optimizer.Params) {
		// a dimer's gap depends on k alone; a tiny rate moves L by ~1e-9 per step
		p.EtaK, p.EtaR = 1e-9, 1e-9
		p.Tol = 1e-6
		p.MaxIter = 50
	}), optimizer.WithObserver(func(_ context.Context, it optimizer.Iteration) error {
		seen = append(seen, it.Index)
		return nil
	}), optimizer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	res, err := o.Run(context.Background(), dimer(t, 1))
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, []int{1, 2}, seen)
	assert.InDelta(t, math.Sqrt2, res.Final.Gap, 1e-6)
}

func TestRunStopsAtMaxIter(t *testing.T) {
	o := mustNew(t, params(func(p *optimizer.Params) {
		p.MaxIter = 2
		p.Tol = 0
	}))
	res, err := o.Run(context.Background(), dimer(t, 1))
	require.NoError(t, err)
	assert.Equal(t, optimizer.StopMaxIter, res.Reason)
	assert.Equal(t, 2, res.Iterations)
}

func TestRunFromResumesIterationCount(t *testing.T) {
	var seen []int
	o := mustNew(t, params(func(p *optimizer.Params) {
		p.MaxIter = 4
		p.Tol = 0
	}), optimizer.WithObserver(func(_ context.Context, it optimizer.Iteration) error {
		seen = append(seen, it.Index)
		return nil
	}))
	res, err := o.RunFrom(context.Background(), dimer(t, 1), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, seen)
	assert.Equal(t, 4, res.Iterations)

	seen = nil
	res, err = o.RunFrom(context.Background(), dimer(t, 1), 4)
	require.NoError(t, err)
	assert.Empty(t, seen)
	assert.Equal(t, 4, res.Iterations)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := mustNew(t, params(nil))
	res, err := o.Run(ctx, dimer(t, 1))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Iterations)
}

func TestRunObserverErrorStops(t *testing.T) {
	boom := errors.New("boom")
	o := mustNew(t, params(func(p *optimizer.Params) { p.Tol = 0 }),
		optimizer.WithObserver(func(_ context.Context, it optimizer.Iteration) error {
			if it.Index == 2 {
				return boom
			}
			return nil
		}))
	res, err := o.Run(context.Background(), dimer(t, 1))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, res.Iterations)
}

func TestMetricsRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := optimizer.NewMetrics(reg)
	s := dimer(t, 1)
	o := mustNew(t, params(nil), optimizer.WithMetrics(m))

	res, err := o.Step(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Iterations))
	assert.Equal(t, float64(optimizer.EvaluationsPerStep(s)), testutil.ToFloat64(m.Evaluations))
	assert.Equal(t, res.Gap, testutil.ToFloat64(m.Gap))
	assert.Equal(t, res.Loss, testutil.ToFloat64(m.Loss))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestWithSolverJacobiMatchesGonum(t *testing.T) {
	s := sampled(t, 6, 8, 0.5)
	g := mustNew(t, params(nil))
	j := mustNew(t, params(nil), optimizer.WithSolver(
		spectrum.NewSolver(spectrum.WithBackend(spectrum.JacobiBackend{}))))
	eg, err := g.Evaluate(s)
	require.NoError(t, err)
	ej, err := j.Evaluate(s)
	require.NoError(t, err)
	assert.InDelta(t, eg.Gap, ej.Gap, 1e-6)
}

func TestStateCloneAndValidate(t *testing.T) {
	s := sampled(t, 5, 3, 0.6)
	c := s.Clone()
	c.Positions.Coords[0][0] = 0.99
	c.Stiffness[c.Edges[0]] = 42
	assert.NotEqual(t, c.Positions.Coords[0], s.Positions.Coords[0])
	assert.NotEqual(t, 42.0, s.Stiffness[s.Edges[0]])

	var nilState *optimizer.State
	require.ErrorIs(t, nilState.Validate(), optimizer.ErrNilState)

	bad := s.Clone()
	bad.Positions.Coords[1] = geometry.Vec{1.5, 0.1}
	require.ErrorIs(t, bad.Validate(), geometry.ErrOutOfBox)
}
