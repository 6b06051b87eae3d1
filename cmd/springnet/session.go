// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/springnet/checkpoint"
	"github.com/katalvlaran/springnet/config"
	"github.com/katalvlaran/springnet/optimizer"
	"github.com/katalvlaran/springnet/topology"
)

// sinkFlags are the output destinations shared by run and resume.
type sinkFlags struct {
	checkpointPath string
	historyDir     string
	metricsAddr    string
}

func (f *sinkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.checkpointPath, "checkpoint", "springnet.ckpt.json", "checkpoint file (empty disables)")
	cmd.Flags().StringVar(&f.historyDir, "history", "", "badger directory for per-iteration history (empty disables)")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
}

// session is one run, fresh or resumed.
type session struct {
	cfg   config.Config
	runID string
	state *optimizer.State
	done  int
}

// execute runs s to completion and writes checkpoints, history and a
// summary. A final checkpoint is written even when ctx is cancelled.
func (a *app) execute(ctx context.Context, cmd *cobra.Command, s session, sinks sinkFlags) error {
	params, err := s.cfg.OptimizerParams()
	if err != nil {
		return err
	}
	solver, err := s.cfg.NewSolver()
	if err != nil {
		return err
	}
	log := a.log.With("run_id", s.runID)

	reg := prometheus.NewRegistry()
	metrics := optimizer.NewMetrics(reg)
	if sinks.metricsAddr != "" {
		stop, err := serveMetrics(sinks.metricsAddr, reg, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	var hist *checkpoint.History
	if sinks.historyDir != "" {
		if hist, err = checkpoint.OpenHistory(sinks.historyDir, log); err != nil {
			return err
		}
		defer func() {
			if cerr := hist.Close(); cerr != nil {
				log.Warn("close history", "err", cerr)
			}
		}()
	}

	_, components := topology.Components(s.state.Edges, s.state.Len())
	minDeg, maxDeg, isolated := degreeSummary(topology.Degrees(s.state.Edges, s.state.Len()))
	log.Info("network",
		"nodes", s.state.Len(),
		"edges", len(s.state.Edges),
		"components", components,
		"rigid_zero_modes", 2*components,
		"min_degree", minDeg,
		"max_degree", maxDeg,
		"isolated", isolated,
	)

	save := func(iteration int, gap, loss float64) error {
		if sinks.checkpointPath == "" {
			return nil
		}
		snap, err := checkpoint.FromState(s.runID, iteration, s.state, s.cfg, gap, loss)
		if err != nil {
			return err
		}
		if err = checkpoint.Save(sinks.checkpointPath, snap); err != nil {
			return err
		}
		log.Info("checkpoint saved", "path", sinks.checkpointPath, "iteration", iteration)
		return nil
	}

	observer := func(_ context.Context, it optimizer.Iteration) error {
		if hist != nil {
			if err := hist.Append(checkpoint.Record{
				RunID:     s.runID,
				Iteration: it.Index,
				Gap:       it.Result.Gap,
				Loss:      it.Result.Loss,
				ZeroModes: it.Result.ZeroModes,
			}); err != nil {
				return err
			}
		}
		if s.cfg.LogEvery > 0 && it.Index%s.cfg.LogEvery == 0 {
			log.Info("iteration",
				"t", it.Index,
				"gap", it.Result.Gap,
				"loss", it.Result.Loss,
				"zero_modes", it.Result.ZeroModes,
				"duration", it.Result.Duration,
			)
		}
		if s.cfg.CheckpointEvery > 0 && it.Index%s.cfg.CheckpointEvery == 0 {
			return save(it.Index, it.Result.Gap, it.Result.Loss)
		}
		return nil
	}

	opt, err := optimizer.New(params,
		optimizer.WithLogger(log),
		optimizer.WithSolver(solver),
		optimizer.WithMetrics(metrics),
		optimizer.WithWorkers(s.cfg.Workers),
		optimizer.WithObserver(observer),
	)
	if err != nil {
		return err
	}

	res, runErr := opt.RunFrom(ctx, s.state, s.done)
	if res.Iterations > s.done {
		gap, loss := res.Last.Gap, res.Last.Loss
		if runErr == nil {
			gap, loss = res.Final.Gap, res.Final.Loss
		}
		if err = save(res.Iterations, gap, loss); err != nil {
			return errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %s after %d iterations, gap=%.6g loss=%.6g\n",
		s.runID, res.Reason, res.Iterations, res.Final.Gap, res.Final.Loss)

	return nil
}

// serveMetrics exposes reg on addr/metrics until the returned stop is called.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", "err", err)
		}
	}()
	log.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// degreeSummary returns the smallest and largest degree and the number of
// nodes without springs.
func degreeSummary(deg []int) (lo, hi, isolated int) {
	for i, d := range deg {
		if i == 0 || d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
		if d == 0 {
			isolated++
		}
	}

	return lo, hi, isolated
}
