// Package metrics exposes Prometheus metrics for scans.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/dataquality/internal/core"
)

// Metrics holds the scan collectors. It implements core.Observer.
type Metrics struct {
	registry *prometheus.Registry

	// Field values by field and outcome
	Values *prometheus.CounterVec

	// Anomalies by field and kind
	Anomalies *prometheus.CounterVec

	// Records scanned across all scans
	Records prometheus.Counter

	// Rows whose validation panicked
	FailedRows prometheus.Counter

	// Wall time of a full scan
	ScanDuration prometheus.Histogram

	// Scans holding a limiter slot
	ActiveScans prometheus.Gauge
}

// New creates Metrics on a fresh registry that also carries the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Values: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataquality_field_values_total",
			Help: "Validated field values by field and outcome",
		}, []string{"field", "outcome"}),

		Anomalies: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dataquality_anomalies_total",
			Help: "Reported anomalies by field and kind",
		}, []string{"field", "kind"}),

		Records: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataquality_records_total",
			Help: "Records scanned",
		}),

		FailedRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataquality_failed_rows_total",
			Help: "Records whose validation was aborted by a panic",
		}),

		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataquality_scan_duration_seconds",
			Help:    "Duration of a full table scan",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),

		ActiveScans: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dataquality_active_scans",
			Help: "Scans currently running",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveValue counts one validated value.
func (m *Metrics) ObserveValue(f core.Field, o core.Outcome) {
	if m != nil {
		m.Values.WithLabelValues(f.String(), o.String()).Inc()
	}
}

// ObserveAnomaly counts one anomaly.
func (m *Metrics) ObserveAnomaly(a core.Anomaly) {
	if m != nil {
		m.Anomalies.WithLabelValues(a.Field.String(), string(a.Kind)).Inc()
	}
}

// ObserveScan records the totals of a finished scan.
func (m *Metrics) ObserveScan(r *core.Report) {
	if m == nil {
		return
	}
	m.Records.Add(float64(r.Records))
	m.FailedRows.Add(float64(len(r.FailedRows)))
	m.ScanDuration.Observe(r.Duration.Seconds())
}

// ScanStarted and ScanFinished track in-flight scans.
func (m *Metrics) ScanStarted() {
	if m != nil {
		m.ActiveScans.Inc()
	}
}

func (m *Metrics) ScanFinished() {
	if m != nil {
		m.ActiveScans.Dec()
	}
}
