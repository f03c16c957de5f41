package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tenability/internal/fed"
	"tenability/internal/metrics"
	"tenability/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	if w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrSimulationNotFound, http.StatusNotFound},
		{fmt.Errorf("store: %w", fed.ErrRoomNotFound), http.StatusNotFound},
		{fmt.Errorf("3 rooms with 0 transition times: %w", fed.ErrInvalidPath), http.StatusBadRequest},
		{fed.ErrOutOfRange, http.StatusBadRequest},
		{service.ErrInvalidRequest, http.StatusBadRequest},
		{service.ErrUnknownModel, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Fatalf("statusFor(%v)=%d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	for _, path := range []string{
		"/api/v1/simulations",
		"/api/v1/simulations/s1",
		"/api/v1/simulations/s1/events",
		"/api/v1/simulations/s1/fed/rooms",
		"/api/v1/simulations/s1/rooms/Lounge/series",
		"/api/v1/me",
		"/ws/replay?simulation=s1&room=Lounge",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without auth, got %d", path, w.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsWith(reg, reg)

	gin.SetMode(gin.TestMode)
	r := NewHandler(&service.Service{}, nil, WithMetrics(m)).InitRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", w.Code)
	}
	if want := `http_requests_total{route="/health",status="200"} 1`; !strings.Contains(w.Body.String(), want) {
		t.Fatalf("missing %q in:\n%s", want, w.Body.String())
	}
}
