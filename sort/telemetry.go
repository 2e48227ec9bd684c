package main

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rlaau/sortio/kvdb"
)

const (
	namespace = "sortio"
	subsystem = "bench"
)

var benchLabels = []string{"algorithm", "mode", "pattern", "storage"}

type telemetry struct {
	registry    *prometheus.Registry
	duration    *prometheus.HistogramVec
	comparisons *prometheus.CounterVec
	swaps       *prometheus.CounterVec
	skipped     *prometheus.CounterVec
}

func newTelemetry() *telemetry {
	t := &telemetry{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sort_duration_seconds",
			Help:      "Wall time of one measured sort.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, benchLabels),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "comparisons_total",
			Help:      "Ordering calls made by measured sorts.",
		}, benchLabels),
		swaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "swaps_total",
			Help:      "Element exchanges and moves made by measured sorts.",
		}, benchLabels),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "skipped_total",
			Help:      "Benchmark cells not measured.",
		}, []string{"algorithm", "mode", "reason"}),
	}
	t.registry.MustRegister(t.duration, t.comparisons, t.swaps, t.skipped)
	return t
}

func (t *telemetry) observe(rec kvdb.Record) {
	if rec.Skipped != "" {
		t.skipped.WithLabelValues(rec.Algorithm, rec.Mode, rec.Skipped).Inc()
		return
	}
	labels := []string{rec.Algorithm, rec.Mode, rec.Pattern, rec.StorageType}
	t.duration.WithLabelValues(labels...).Observe(rec.Duration.Seconds())
	t.comparisons.WithLabelValues(labels...).Add(float64(rec.Comparisons))
	t.swaps.WithLabelValues(labels...).Add(float64(rec.Swaps))
}

// writeTextfile dumps the registry in the node_exporter textfile format.
func (t *telemetry) writeTextfile(path string) error {
	return errors.Wrap(prometheus.WriteToTextfile(path, t.registry), "write metrics textfile")
}
