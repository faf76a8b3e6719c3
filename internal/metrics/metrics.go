// Package metrics provides Prometheus metrics for the optimizer service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Requests counts API requests by endpoint and outcome (ok, invalid, error).
var Requests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "requests_total",
	Help:      "Total optimizer API requests.",
}, []string{"endpoint", "outcome"})

// SolveDuration tracks how long a full optimization takes, block search included.
var SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "optimizer",
	Name:      "solve_seconds",
	Help:      "Optimization duration in seconds.",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
})

// SolverRuns counts rate-solver invocations across all optimizations.
var SolverRuns = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "solver_runs_total",
	Help:      "Total rate-solver invocations.",
})

// CacheHits counts optimizations answered from the result cache.
var CacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "cache_hits_total",
	Help:      "Total optimizations served from cache.",
})

// SweepPoints counts grid points evaluated by sweeps.
var SweepPoints = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "optimizer",
	Name:      "sweep_points_total",
	Help:      "Total sweep grid points evaluated.",
})
