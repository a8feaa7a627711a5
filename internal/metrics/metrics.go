// Package metrics collects and exposes Prometheus metrics for the HTTP
// surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
	registry *prometheus.Registry
}

func NewCollector() *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spaces_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spaces_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		registry: prometheus.NewRegistry(),
	}

	c.registry.MustRegister(c.requests, c.latency)
	return c
}

// Handler serves the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Instrument records request counts and latency around the wrapped handler.
func (c *Collector) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		c.requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).Inc()
		c.latency.Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
