package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/progsquare/internal/config"
	"github.com/agbru/progsquare/internal/logging"
	"github.com/agbru/progsquare/internal/progressive"
	"github.com/agbru/progsquare/pkg/models"
)

// fakeService implements service.Service with canned responses.
type fakeService struct {
	sols     *progressive.SolutionSet
	duration time.Duration
	err      error
}

func (f *fakeService) Search(ctx context.Context, strategy string) (*progressive.SolutionSet, time.Duration, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.sols, f.duration, nil
}

func (f *fakeService) Strategies() []string {
	return []string{"parallel", "sequential"}
}

func knownSolutions() *progressive.SolutionSet {
	sols := progressive.NewSolutionSet()
	sols.Add(9)
	sols.Add(10404)
	sols.Add(16900)
	sols.Add(97344)
	return sols
}

func newTestServer(t *testing.T, svc *fakeService) *Server {
	t.Helper()
	logger := logging.NewLogger(&strings.Builder{}, "test")
	return NewServer(progressive.GlobalFactory(), config.AppConfig{Port: "0"},
		WithService(svc), WithLogger(logger))
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &fakeService{sols: knownSolutions()})

	rec := doRequest(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestHandleStrategies(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &fakeService{sols: knownSolutions()})

	rec := doRequest(t, s, http.MethodGet, "/strategies")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Strategies []string `json:"strategies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Strategies) != 2 {
		t.Errorf("strategies = %v, want 2 entries", body.Strategies)
	}
}

func TestHandleSearch(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &fakeService{sols: knownSolutions(), duration: time.Second})

	rec := doRequest(t, s, http.MethodGet, "/search?strategy=parallel")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var summary models.SearchSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.Strategy != "parallel" {
		t.Errorf("strategy = %q, want parallel", summary.Strategy)
	}
	if summary.Sum != 124657 {
		t.Errorf("sum = %d, want 124657", summary.Sum)
	}
	if summary.Count != 4 || len(summary.Roots) != 4 {
		t.Errorf("count = %d, roots = %v; want 4 of each", summary.Count, summary.Roots)
	}
	if summary.Roots[0] != 3 || summary.Roots[3] != 312 {
		t.Errorf("roots = %v, want ascending [3 102 130 312]", summary.Roots)
	}
	if summary.Bound != progressive.Bound {
		t.Errorf("bound = %d, want %d", summary.Bound, progressive.Bound)
	}
}

func TestHandleSearchUnknownStrategy(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &fakeService{err: fmt.Errorf("%w: %q", progressive.ErrUnknownStrategy, "simd")})

	rec := doRequest(t, s, http.MethodGet, "/search?strategy=simd")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(errResp.Message, "simd") {
		t.Errorf("message = %q, should name the bad strategy", errResp.Message)
	}
}

func TestHandleSearchServiceFailure(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &fakeService{err: context.DeadlineExceeded})

	rec := doRequest(t, s, http.MethodGet, "/search")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &fakeService{sols: knownSolutions()})

	for _, target := range []string{"/search", "/health", "/strategies", "/metrics"} {
		rec := doRequest(t, s, http.MethodPost, target)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s: status = %d, want 405", target, rec.Code)
		}
	}
}

func TestHandleMetricsExposesPrometheus(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &fakeService{sols: knownSolutions()})

	rec := doRequest(t, s, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "progsquare_requests_total") {
		t.Error("metrics output missing the request counter")
	}
}

func TestServerOptions(t *testing.T) {
	t.Parallel()
	timeouts := Timeouts{
		RequestTimeout:  time.Minute,
		ShutdownTimeout: time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
	}
	s := NewServer(progressive.GlobalFactory(), config.AppConfig{Port: "0"}, WithTimeouts(timeouts))
	if s.timeouts.RequestTimeout != time.Minute {
		t.Errorf("RequestTimeout = %v, want 1m", s.timeouts.RequestTimeout)
	}
	if s.service == nil {
		t.Error("default service should be initialized")
	}
}
