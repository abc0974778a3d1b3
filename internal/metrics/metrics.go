// Package metrics exposes Prometheus counters for catalog runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the counters of one run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	RecordsAdapted   *prometheus.CounterVec
	SourceFailures   *prometheus.CounterVec
	PricesUnresolved prometheus.Counter
	DefaultsFilled   *prometheus.CounterVec
	RecordsWritten   *prometheus.CounterVec
}

// NewRecorder creates and registers the run counters.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		RecordsAdapted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_records_adapted_total",
				Help: "Records produced by each source adapter",
			},
			[]string{"source"},
		),
		SourceFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_source_failures_total",
				Help: "Source feeds that could not be read or adapted",
			},
			[]string{"source"},
		),
		PricesUnresolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_prices_unresolved_total",
				Help: "Records whose price could not be coerced to a number",
			},
		),
		DefaultsFilled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_defaults_filled_total",
				Help: "Fields filled with their default value",
			},
			[]string{"field"},
		),
		RecordsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_records_written_total",
				Help: "Records written per output format",
			},
			[]string{"format"},
		),
	}

	r.registry.MustRegister(r.RecordsAdapted, r.SourceFailures, r.PricesUnresolved, r.DefaultsFilled, r.RecordsWritten)

	return r
}

// Registry returns the registry holding the run counters.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile dumps the counters in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
