// Package metrics collects per-run counters and writes them as a Prometheus
// textfile for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spotify2yt"

// Metrics holds the collectors of one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	SongsReadTotal      *prometheus.CounterVec
	SongsSkippedTotal   *prometheus.CounterVec
	DuplicatesTotal     prometheus.Counter
	BatchSize           prometheus.Gauge
	DependencyAvailable *prometheus.GaugeVec
	ProcessingTime      *prometheus.HistogramVec
	LastRunTimestamp    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SongsReadTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "songs_read_total",
				Help:      "Total number of songs read from input",
			},
			[]string{"source"},
		),
		SongsSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "songs_skipped_total",
				Help:      "Total number of input songs not added to the batch",
			},
			[]string{"reason"},
		),
		DuplicatesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "duplicates_total",
				Help:      "Total number of duplicate songs dropped within the run",
			},
		),
		BatchSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "batch_size",
				Help:      "Number of search directives in the batch file",
			},
		),
		DependencyAvailable: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dependency_available",
				Help:      "Whether an external tool was available (1) or not (0)",
			},
			[]string{"name"},
		),
		ProcessingTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "processing_duration_seconds",
				Help:      "Time spent in each stage of a run",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the metrics were written",
			},
		),
	}

	m.registry.MustRegister(
		m.SongsReadTotal,
		m.SongsSkippedTotal,
		m.DuplicatesTotal,
		m.BatchSize,
		m.DependencyAvailable,
		m.ProcessingTime,
		m.LastRunTimestamp,
	)
	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordSongsRead(source string, count int) {
	m.SongsReadTotal.WithLabelValues(source).Add(float64(count))
}

func (m *Metrics) RecordSkipped(reason string, count int) {
	if count <= 0 {
		return
	}
	m.SongsSkippedTotal.WithLabelValues(reason).Add(float64(count))
}

func (m *Metrics) RecordDuplicates(count int) {
	m.DuplicatesTotal.Add(float64(count))
}

func (m *Metrics) SetBatchSize(size int) {
	m.BatchSize.Set(float64(size))
}

func (m *Metrics) SetDependency(name string, available bool) {
	value := 0.0
	if available {
		value = 1
	}
	m.DependencyAvailable.WithLabelValues(name).Set(value)
}

func (m *Metrics) RecordProcessingTime(stage string, duration time.Duration) {
	m.ProcessingTime.WithLabelValues(stage).Observe(duration.Seconds())
}

// WriteTextfile stamps the run time and writes every metric to path.
func (m *Metrics) WriteTextfile(path string, now time.Time) error {
	m.LastRunTimestamp.Set(float64(now.Unix()))
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
