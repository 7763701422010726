package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RenameMetrics holds the collectors for rename batches.
type RenameMetrics struct {
	registry *prometheus.Registry

	batchesTotal  *prometheus.CounterVec
	filesTotal    *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec
}

func NewRenameMetrics(service string) *RenameMetrics {
	registry := prometheus.NewRegistry()

	batchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "tds",
			Subsystem:   "rename",
			Name:        "batches_total",
			Help:        "Total rename batches by output mode and result.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"mode", "result"},
	)
	filesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "tds",
			Subsystem:   "rename",
			Name:        "files_total",
			Help:        "Total files processed by outcome.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"outcome"},
	)
	batchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "tds",
			Subsystem:   "rename",
			Name:        "batch_duration_seconds",
			Help:        "Rename batch duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"mode"},
	)

	registry.MustRegister(
		batchesTotal,
		filesTotal,
		batchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &RenameMetrics{
		registry:      registry,
		batchesTotal:  batchesTotal,
		filesTotal:    filesTotal,
		batchDuration: batchDuration,
	}
}

// ObserveBatch records one finished batch. outcomes maps an outcome label
// ("renamed", "no_pan", ...) to its count.
func (m *RenameMetrics) ObserveBatch(mode, result string, outcomes map[string]int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.batchesTotal.WithLabelValues(mode, result).Inc()
	m.batchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	for outcome, n := range outcomes {
		if n > 0 {
			m.filesTotal.WithLabelValues(outcome).Add(float64(n))
		}
	}
}

func (m *RenameMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *RenameMetrics) Registry() *prometheus.Registry {
	return m.registry
}
