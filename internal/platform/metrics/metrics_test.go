package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/activities/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/activities/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	count := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/activities/{id}", "404"))
	assert.Equal(t, float64(3), count)
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.IncRegistrations()
	m.IncPlaysRecorded()
	m.IncPlaysRecorded()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.registrations))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.playsRecorded))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "quickrecap_gameplay_plays_recorded_total 2"))
}
