package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics for one pipeline run. zonekit is a
// batch process, so instead of serving a scrape endpoint the collected
// registry is flushed with WriteTextfile for the node-exporter textfile
// collector to pick up.
type Metrics struct {
	registry *prometheus.Registry

	// Schema extraction metrics
	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	ExtractionCacheHits prometheus.Counter

	// Client generation metrics
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	GeneratedBytes     *prometheus.CounterVec

	// Archive metrics
	ArchivesTotal    prometheus.Counter
	ArchiveSizeBytes prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ExtractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zonekit_extractions_total",
				Help: "Total number of schema extractions by zone and outcome",
			},
			[]string{"zone", "outcome"},
		),
		ExtractionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zonekit_extraction_duration_seconds",
				Help:    "Schema extraction duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"zone"},
		),
		ExtractionCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "zonekit_extraction_cache_hits_total",
				Help: "Schema extractions skipped because the route projection was unchanged",
			},
		),

		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zonekit_generations_total",
				Help: "Total number of client generation tasks by zone, language and outcome",
			},
			[]string{"zone", "language", "outcome"},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zonekit_generation_duration_seconds",
				Help:    "Client generation task duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"zone", "language"},
		),
		GeneratedBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zonekit_generated_bytes_total",
				Help: "Bytes of generated client code by zone and language",
			},
			[]string{"zone", "language"},
		),

		ArchivesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "zonekit_archives_total",
				Help: "Total number of archives written",
			},
		),
		ArchiveSizeBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "zonekit_archive_size_bytes",
				Help: "Size of the most recently written archive in bytes",
			},
		),
	}

	m.registry.MustRegister(
		m.ExtractionsTotal,
		m.ExtractionDuration,
		m.ExtractionCacheHits,
		m.GenerationsTotal,
		m.GenerationDuration,
		m.GeneratedBytes,
		m.ArchivesTotal,
		m.ArchiveSizeBytes,
	)

	return m
}

// WriteTextfile flushes the registry to path in the Prometheus text
// exposition format. Writing is atomic (write-then-rename inside the
// client library).
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
