package apiapp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Beabadoobee-Fanclub/backend-api/internal/services/access"
)

func guardedHandler(t *testing.T, wantKind access.CallerKind) http.Handler {
	t.Helper()
	return AccessGuardMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := access.CallerFromContext(r.Context())
		if !ok {
			t.Fatal("expected caller in request context")
		}
		if caller.Kind != wantKind {
			t.Fatalf("expected caller kind %q, got %q", wantKind, caller.Kind)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAccessGuardAdmitsBotUserAgent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guild", nil)
	req.Header.Set("User-Agent", "DiscordBot sometoken")
	rec := httptest.NewRecorder()

	guardedHandler(t, access.CallerBot).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccessGuardAdmitsGuildUserAgent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guild", nil)
	req.Header.Set("User-Agent", "DiscordGuild 123456789")
	rec := httptest.NewRecorder()

	guardedHandler(t, access.CallerGuild).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccessGuardRejectsBrowserUserAgent(t *testing.T) {
	handler := AccessGuardMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a rejected caller")
	}))

	req := httptest.NewRequest(http.MethodGet, "/guild", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAccessGuardRejectsCredentiallessProductToken(t *testing.T) {
	handler := AccessGuardMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a caller without a credential")
	}))

	req := httptest.NewRequest(http.MethodGet, "/guild", nil)
	req.Header.Set("User-Agent", "DiscordBot")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAccessGuardRequiresUserAgent(t *testing.T) {
	handler := AccessGuardMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a user agent")
	}))

	req := httptest.NewRequest(http.MethodGet, "/guild", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
