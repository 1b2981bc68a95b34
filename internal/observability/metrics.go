package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "uranium_map"

// Metrics holds the Prometheus counters, gauges, and histograms for one run.
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsRejected    *prometheus.CounterVec // labels: reason={missing_coordinates,invalid_concentration,out_of_range}
	RowsClamped     prometheus.Counter
	PointsRendered  prometheus.Gauge
	MetadataFailure prometheus.Counter
	RunDuration     *prometheus.HistogramVec // labels: stage={extract,transform,load,annotate}

	registry *prometheus.Registry
}

// NewMetrics creates run metrics registered on a private registry. Batch runs
// export the registry once with WriteTextfile instead of serving it.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Total CSV rows read from the input file.",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Rows dropped during cleaning, by reason.",
		}, []string{"reason"}),
		RowsClamped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_clamped_total",
			Help:      "Rows whose non-positive concentration was raised to the floor value.",
		}),
		PointsRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "points_rendered",
			Help:      "Columns drawn on the map.",
		}),
		MetadataFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_patch_failures_total",
			Help:      "Failed attempts to inject the metadata overlay.",
		}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RowsRejected,
		m.RowsClamped,
		m.PointsRendered,
		m.MetadataFailure,
		m.RunDuration,
	)

	return m
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
