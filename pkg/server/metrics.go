package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	jobsTotal   *prometheus.CounterVec
	jobsRunning prometheus.Gauge
	jobDuration *prometheus.HistogramVec
	outputBytes *prometheus.HistogramVec
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "framegrid",
			Name:      "jobs_total",
			Help:      "Finished jobs by kind and state.",
		}, []string{"kind", "state"}),
		jobsRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "framegrid",
			Name:      "jobs_running",
			Help:      "Jobs currently holding a worker slot.",
		}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "framegrid",
			Name:      "job_duration_seconds",
			Help:      "Job run time by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"kind"}),
		outputBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "framegrid",
			Name:      "output_bytes",
			Help:      "Size of produced documents and animations.",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 8),
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		m.jobsTotal,
		m.jobsRunning,
		m.jobDuration,
		m.outputBytes,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) jobStarted() {
	m.jobsRunning.Inc()
}

func (m *Metrics) jobFinished(kind JobKind, state JobState, seconds float64, size int) {
	m.jobsRunning.Dec()
	m.jobsTotal.WithLabelValues(string(kind), string(state)).Inc()
	m.jobDuration.WithLabelValues(string(kind)).Observe(seconds)
	if state == JobDone {
		m.outputBytes.WithLabelValues(string(kind)).Observe(float64(size))
	}
}
