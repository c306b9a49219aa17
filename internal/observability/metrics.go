package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis pipeline and the chart API.
type Metrics struct {
	AnalysisRuns     *prometheus.CounterVec // labels: source={remote,synthetic}, outcome={success,error}
	AnalysisDuration prometheus.Histogram
	ObservationRows  prometheus.Gauge
	LastRunTimestamp prometheus.Gauge

	ChartRequests *prometheus.CounterVec // labels: chart, outcome={success,error}
	TableRequests *prometheus.CounterVec // labels: table, outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AnalysisRuns,
		m.AnalysisDuration,
		m.ObservationRows,
		m.LastRunTimestamp,
		m.ChartRequests,
		m.TableRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AnalysisRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "analysis_runs_total",
			Help:      "Completed analysis pipeline runs by data source and outcome.",
		}, []string{"source", "outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete load-aggregate-persist cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ObservationRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate",
			Name:      "observation_rows",
			Help:      "Number of station-month observations in the latest run.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the latest successful analysis run.",
		}),
		ChartRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "chart_requests_total",
			Help:      "Chart spec requests by chart name and outcome.",
		}, []string{"chart", "outcome"}),
		TableRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate",
			Name:      "table_requests_total",
			Help:      "Table requests by table name and outcome.",
		}, []string{"table", "outcome"}),
	}
}
