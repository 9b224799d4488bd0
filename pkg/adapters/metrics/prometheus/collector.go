package prometheus

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements patcher.Metrics using Prometheus
type Collector struct {
	registry *prometheus.Registry

	resources     *prometheus.CounterVec
	codecsRemoved prometheus.Counter
	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	lastRun       prometheus.Gauge
}

// NewCollector creates a collector with its own registry, exported with
// WriteTextfile.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		resources: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confpatch_resources_total",
				Help: "Total number of hadoop resource files considered, by outcome",
			},
			[]string{"resource", "outcome"},
		),
		codecsRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "confpatch_codecs_removed_total",
				Help: "Total number of codecs removed from io.compression.codecs",
			},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confpatch_runs_total",
				Help: "Total number of patch runs",
			},
			[]string{"mode", "outcome"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "confpatch_run_duration_seconds",
				Help:    "Patch run duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"mode"},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "confpatch_last_run_timestamp_seconds",
				Help: "Unix time of the last patch run",
			},
		),
	}
}

// RecordResource counts one resource file with its outcome
func (c *Collector) RecordResource(name, outcome string) {
	c.resources.WithLabelValues(name, outcome).Inc()
}

// RecordCodecsRemoved adds n removed codecs
func (c *Collector) RecordCodecsRemoved(n int) {
	c.codecsRemoved.Add(float64(n))
}

// RecordRun records a finished patch run
func (c *Collector) RecordRun(mode, outcome string, duration time.Duration) {
	c.runs.WithLabelValues(mode, outcome).Inc()
	c.runDuration.WithLabelValues(mode).Observe(duration.Seconds())
	c.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all metrics to path in the text exposition format,
// for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
