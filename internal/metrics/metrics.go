// Package metrics exposes Prometheus counters for HTTP traffic, auth events
// and prediction outcomes.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction outcomes.
const (
	PredictionOK             = "ok"
	PredictionUpstreamError  = "upstream_error"
	PredictionUnavailable    = "unavailable"
	PredictionInvalidRequest = "invalid"
)

// Auth events.
const (
	EventRegister         = "register"
	EventRegisterConflict = "register_conflict"
	EventLogin            = "login"
	EventLoginFailed      = "login_failed"
)

// Metrics contains the application's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	PredictionsTotal *prometheus.CounterVec
	AuthEventsTotal  *prometheus.CounterVec
	UpstreamUp       prometheus.Gauge
}

// New creates a private registry with Go/process collectors and the app metrics.
func New() *Metrics {
	// Create a new registry to avoid polluting the global one
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edu2job_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		PredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edu2job_predictions_total",
				Help: "Total number of prediction requests by outcome",
			},
			[]string{"outcome"},
		),
		AuthEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edu2job_auth_events_total",
				Help: "Total number of registration and login events",
			},
			[]string{"event"},
		),
		UpstreamUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "edu2job_upstream_up",
			Help: "1 if the last keep-warm ping reached the prediction service",
		}),
	}

	registry.MustRegister(m.RequestsTotal, m.PredictionsTotal, m.AuthEventsTotal, m.UpstreamUp)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Prediction records a prediction outcome. Safe on a nil receiver.
func (m *Metrics) Prediction(outcome string) {
	if m == nil {
		return
	}
	m.PredictionsTotal.WithLabelValues(outcome).Inc()
}

// AuthEvent records an auth event. Safe on a nil receiver.
func (m *Metrics) AuthEvent(event string) {
	if m == nil {
		return
	}
	m.AuthEventsTotal.WithLabelValues(event).Inc()
}

// SetUpstreamUp records the keep-warm result. Safe on a nil receiver.
func (m *Metrics) SetUpstreamUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.UpstreamUp.Set(1)
	} else {
		m.UpstreamUp.Set(0)
	}
}

// Middleware counts requests by chi route pattern so path parameters do not
// explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
