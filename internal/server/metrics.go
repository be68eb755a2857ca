package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/content-toolkit/internal/toolkit"
	"github.com/jonathan/content-toolkit/internal/types"
)

// metrics is a per-server registry so that several servers (or tests) never
// collide on registration.
type metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	writeFailures prometheus.Counter
	progress      prometheus.Gauge
	contentItems  *prometheus.GaugeVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toolkit_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		writeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toolkit_storage_write_failures_total",
			Help: "Mutations applied in memory but not persisted.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "toolkit_progress_percentage",
			Help: "Percentage of framework steps completed.",
		}),
		contentItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "toolkit_content_items",
			Help: "Content items per funnel stage.",
		}, []string{"stage"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.writeFailures,
		m.progress,
		m.contentItems,
		collectors.NewGoCollector(),
	)
	return m
}

// observe refreshes the state gauges from tk. Callers hold the server lock.
func (m *metrics) observe(tk *toolkit.Toolkit) {
	m.progress.Set(float64(tk.Metrics().ProgressPercentage))

	counts := map[string]int{types.Unassigned.String(): 0}
	for _, key := range types.StageKeys() {
		counts[key.String()] = 0
	}
	for _, item := range tk.AllContent() {
		counts[item.Stage.String()]++
	}
	for stage, n := range counts {
		m.contentItems.WithLabelValues(stage).Set(float64(n))
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
