package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSWildcardAllowsAnyOrigin(t *testing.T) {
	h := NewCORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/alumnos", nil)
	req.Header.Set("Origin", "https://front.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCORSListedOriginOnly(t *testing.T) {
	h := NewCORS([]string{"https://cafeteria-qr.vercel.app"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/alumnos", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/alumnos", nil)
	req.Header.Set("Origin", "https://cafeteria-qr.vercel.app")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://cafeteria-qr.vercel.app" {
		t.Fatalf("expected echoed origin, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewCORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/registrar_consumo", nil)
	req.Header.Set("Origin", "https://front.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
