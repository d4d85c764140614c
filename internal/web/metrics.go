package web

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP server's Prometheus collectors. Each server owns its
// registry so several servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// RequestCounter counts HTTP requests.
	// Labels: pattern (mux pattern, "unmatched" for 404s), code
	RequestCounter *prometheus.CounterVec

	// LookupCounter counts route lookups and chat turns by outcome.
	// Labels: source (resolve|chat), status (resolved|redirected|unknown|help|message)
	LookupCounter *prometheus.CounterVec

	// CustomRouteErrors counts rejected custom route creations.
	// Labels: code (ROUTE_RESERVED|ROUTE_ALREADY_EXISTS|LIMIT_EXCEEDED|...)
	CustomRouteErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slashhub_http_requests_total",
			Help: "Total HTTP requests by mux pattern and status code",
		}, []string{"pattern", "code"}),
		LookupCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slashhub_route_lookups_total",
			Help: "Total route lookups by source and outcome",
		}, []string{"source", "status"}),
		CustomRouteErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slashhub_custom_route_errors_total",
			Help: "Total rejected custom route creations by error code",
		}, []string{"code"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordLookup counts one lookup outcome.
func (m *Metrics) RecordLookup(source, status string) {
	if m == nil {
		return
	}
	m.LookupCounter.WithLabelValues(source, status).Inc()
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts every request by the pattern the mux matched.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		m.RequestCounter.WithLabelValues(pattern, strconv.Itoa(rec.status)).Inc()
	})
}
