// Package telemetry exposes the Prometheus metrics a run emits:
// step counts and timings per KDK phase, tree size, adaptive dt, and
// snapshot write outcomes.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "next_steps_total",
			Help: "Total number of KDK steps completed",
		},
	)

	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "next_step_duration_seconds",
			Help:    "Duration of each KDK phase in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"phase"}, // build_a, kick1, drift, build_b, kick2
	)

	TreeNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "next_tree_nodes",
			Help: "Number of octree nodes in the most recently built tree",
		},
	)

	AdaptiveDt = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "next_adaptive_dt",
			Help: "Timestep chosen by the adaptive controller for the current step",
		},
	)

	SnapshotWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "next_snapshot_writes_total",
			Help: "Total number of snapshot writes, by outcome",
		},
		[]string{"outcome"}, // success, failed
	)
)

// ServeHTTP starts a blocking Prometheus /metrics endpoint on addr.
// Callers run it in its own goroutine.
func ServeHTTP(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
