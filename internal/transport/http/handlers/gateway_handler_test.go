package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	gatewaysvc "github.com/Beabadoobee-Fanclub/backend-api/internal/services/gateway"
)

type fakeRegistry struct {
	records []gatewaysvc.InstanceRecord
	err     error
}

func (r *fakeRegistry) List(ctx context.Context) ([]gatewaysvc.InstanceRecord, error) {
	return r.records, r.err
}

func newGatewayRouter(registry gatewaysvc.Registry) chi.Router {
	service := gatewaysvc.NewService(registry, gatewaysvc.Config{}, nil)
	handler := NewGatewayHandler(service, 5*time.Second, nil)
	r := chi.NewRouter()
	r.HandleFunc("/guild/gateway/{id}", handler.Forward)
	return r
}

func TestGatewayForwardReachesResolvedInstance(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", "one")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, r.URL.Path)
	}))
	defer backend.Close()

	backendURL, err := url.Parse(backend.URL)
	if err != nil {
		t.Fatalf("parse backend url: %v", err)
	}
	registry := &fakeRegistry{records: []gatewaysvc.InstanceRecord{
		{ID: "instance-a", Addr: backendURL.Host, LastSeen: time.Now()},
	}}
	router := newGatewayRouter(registry)

	req := httptest.NewRequest(http.MethodGet, "/guild/gateway/123456789", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Backend"); got != "one" {
		t.Fatalf("expected backend response headers relayed, got %q", got)
	}
	if got := rec.Body.String(); got != "/guild/gateway/123456789" {
		t.Fatalf("expected path forwarded verbatim, got %q", got)
	}
}

func TestGatewayForwardIsDeterministicPerShard(t *testing.T) {
	hits := make(map[string]int)
	newBackend := func(name string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits[name]++
			w.WriteHeader(http.StatusOK)
		}))
	}
	one := newBackend("one")
	defer one.Close()
	two := newBackend("two")
	defer two.Close()

	oneURL, _ := url.Parse(one.URL)
	twoURL, _ := url.Parse(two.URL)
	registry := &fakeRegistry{records: []gatewaysvc.InstanceRecord{
		{ID: "instance-a", Addr: oneURL.Host, LastSeen: time.Now()},
		{ID: "instance-b", Addr: twoURL.Host, LastSeen: time.Now()},
	}}
	router := newGatewayRouter(registry)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/guild/gateway/777", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	}

	if len(hits) != 1 {
		t.Fatalf("expected a single backend to receive every forward, got %v", hits)
	}
	for _, n := range hits {
		if n != 3 {
			t.Fatalf("expected 3 forwards to the chosen backend, got %v", hits)
		}
	}
}

func TestGatewayForwardRejectsInvalidShardID(t *testing.T) {
	router := newGatewayRouter(&fakeRegistry{})

	req := httptest.NewRequest(http.MethodGet, "/guild/gateway/"+strings.Repeat("9", 200), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Code != "INVALID_SHARD_ID" {
		t.Fatalf("unexpected error code %q", payload.Code)
	}
}

func TestGatewayForwardWithEmptyRegistryIsUnavailable(t *testing.T) {
	router := newGatewayRouter(&fakeRegistry{})

	req := httptest.NewRequest(http.MethodGet, "/guild/gateway/123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestGatewayForwardRegistryErrorIsInternal(t *testing.T) {
	router := newGatewayRouter(&fakeRegistry{err: context.DeadlineExceeded})

	req := httptest.NewRequest(http.MethodGet, "/guild/gateway/123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestGatewayForwardUnreachableBackendIsBadGateway(t *testing.T) {
	registry := &fakeRegistry{records: []gatewaysvc.InstanceRecord{
		{ID: "instance-a", Addr: "127.0.0.1:1", LastSeen: time.Now()},
	}}
	router := newGatewayRouter(registry)

	req := httptest.NewRequest(http.MethodGet, "/guild/gateway/123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Code != "BACKEND_UNREACHABLE" {
		t.Fatalf("unexpected error code %q", payload.Code)
	}
}
