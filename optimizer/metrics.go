// SPDX-License-Identifier: MIT
// Package: springnet/optimizer
//
// metrics.go — prometheus collectors and the package tracer.

package optimizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("springnet.optimizer")

const (
	metricsNamespace = "springnet"
	metricsSubsystem = "optimizer"
)

// Metrics groups the optimiser collectors.
type Metrics struct {
	Iterations   prometheus.Counter
	Evaluations  prometheus.Counter
	Gap          prometheus.Gauge
	Loss         prometheus.Gauge
	ZeroModes    prometheus.Gauge
	StepDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// creates unregistered collectors, which is what tests and library callers
// without a metrics endpoint want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Iterations: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "iterations_total",
			Help:      "Completed optimisation iterations",
		}),
		Evaluations: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "evaluations_total",
			Help:      "Dynamical matrix assemble+solve evaluations",
		}),
		Gap: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "gap",
			Help:      "Spectral gap at the start of the latest iteration",
		}),
		Loss: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "loss",
			Help:      "Loss at the start of the latest iteration",
		}),
		ZeroModes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "zero_modes",
			Help:      "Zero modes among the requested lowest modes",
		}),
		StepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "step_duration_seconds",
			Help:      "Wall time of one optimisation iteration",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}
