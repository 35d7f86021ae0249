package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for _, path := range []string{"/items/1", "/items/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusAccepted, rec.Code)
	}

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "202"))
	assert.Equal(t, float64(2), got)
}

func TestRecorders(t *testing.T) {
	m := New()
	m.Prediction(PredictionOK)
	m.Prediction(PredictionOK)
	m.AuthEvent(EventLoginFailed)
	m.SetUpstreamUp(true)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.PredictionsTotal.WithLabelValues(PredictionOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthEventsTotal.WithLabelValues(EventLoginFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UpstreamUp))

	m.SetUpstreamUp(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.UpstreamUp))
}

func TestNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Prediction(PredictionOK)
		m.AuthEvent(EventLogin)
		m.SetUpstreamUp(true)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.AuthEvent(EventRegister)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `edu2job_auth_events_total{event="register"} 1`)
}
