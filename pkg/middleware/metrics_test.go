package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/api/services/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	series := httpRequestsTotal.WithLabelValues("GET", "/api/services/{id}", "200")
	before := testutil.ToFloat64(series)

	for _, path := range []string{"/api/services/123", "/api/services/456"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	// both requests land on one series for the route pattern
	assert.Equal(t, 2.0, testutil.ToFloat64(series)-before)

	// raw paths never become label values
	raw := httpRequestsTotal.WithLabelValues("GET", "/api/services/123", "200")
	assert.Equal(t, 0.0, testutil.ToFloat64(raw))
}
