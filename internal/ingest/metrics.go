package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus counters for the ingestion pipeline.
type Metrics struct {
	ItemsRead         *prometheus.CounterVec
	BooksWritten      *prometheus.CounterVec
	DuplicatesSkipped *prometheus.CounterVec
	LogsConsumed      *prometheus.CounterVec
	RunsTotal         *prometheus.CounterVec
}

// NewMetrics registers the ingestion metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ItemsRead: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "ingest",
			Name:      "items_read_total",
			Help:      "Items read from external sources, by job.",
		}, []string{"job"}),
		BooksWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "ingest",
			Name:      "books_written_total",
			Help:      "Books inserted into the catalog, by job.",
		}, []string{"job"}),
		DuplicatesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "ingest",
			Name:      "duplicates_skipped_total",
			Help:      "Items skipped as duplicates or filtered, by job.",
		}, []string{"job"}),
		LogsConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "ingest",
			Name:      "search_logs_consumed_total",
			Help:      "Search logs replayed by the keyword job.",
		}, []string{"job"}),
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookhive",
			Subsystem: "ingest",
			Name:      "runs_total",
			Help:      "Job runs by job and terminal status.",
		}, []string{"job", "status"}),
	}
}

// Record applies a finished run's counters.
func (m *Metrics) Record(job, status string, stats Stats) {
	m.ItemsRead.WithLabelValues(job).Add(float64(stats.Read))
	m.BooksWritten.WithLabelValues(job).Add(float64(stats.Written))
	m.DuplicatesSkipped.WithLabelValues(job).Add(float64(stats.Skipped))
	m.LogsConsumed.WithLabelValues(job).Add(float64(stats.LogsConsumed))
	m.RunsTotal.WithLabelValues(job, status).Inc()
}
