package wizard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "swnetcfg_run_duration_seconds",
			Help:    "Time taken by a complete configuration run, prompts included",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
	)

	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swnetcfg_runs_total",
			Help: "Total number of configuration runs",
		},
		[]string{"status"}, // success, dry-run, or the lowercased error code
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swnetcfg_stage_duration_seconds",
			Help:    "Time taken by individual run stages",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"stage"},
	)

	interfaceCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swnetcfg_active_interfaces",
			Help: "Number of active interfaces offered in the last run",
		},
	)

	probeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swnetcfg_probes_total",
			Help: "Total number of interface reachability probes",
		},
		[]string{"outcome"}, // reachable, unreachable, error
	)
)

// WriteMetrics writes the process metrics to path in the node-exporter
// textfile format.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
