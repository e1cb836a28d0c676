package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ConferenceAPI/internal/config"
)

func corsRecorder(t *testing.T, cfg config.CORSConfig, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	h := withCORS(newCORSPolicy(cfg), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(method, APIRoot+"/profile", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestWithCORS(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.CORSConfig
		origin    string
		wantAllow string
		wantVary  string
	}{
		{"wildcard", config.CORSConfig{AllowOrigin: "*"}, "http://a.example", "*", ""},
		{"empty means any", config.CORSConfig{}, "http://a.example", "*", ""},
		{"wildcard with credentials echoes origin",
			config.CORSConfig{AllowOrigin: "*", AllowCredentials: true},
			"http://a.example", "http://a.example", "Origin"},
		{"single origin", config.CORSConfig{AllowOrigin: "http://localhost:3000"},
			"http://localhost:3000", "http://localhost:3000", "Origin"},
		{"csv list", config.CORSConfig{AllowOrigin: "http://192.168.0.251:3000, http://cbs:3000"},
			"http://cbs:3000", "http://cbs:3000", "Origin"},
		{"unknown origin blocked", config.CORSConfig{AllowOrigin: "http://cbs:3000"},
			"http://evil.example", "", "Origin"},
		{"no origin header", config.CORSConfig{AllowOrigin: "http://cbs:3000"},
			"", "", "Origin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := corsRecorder(t, tt.cfg, http.MethodGet, tt.origin)
			if w.Code != http.StatusOK {
				t.Fatalf("unexpected status %d", w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Fatalf("allow origin = %q, want %q", got, tt.wantAllow)
			}
			if got := w.Header().Get("Vary"); got != tt.wantVary {
				t.Fatalf("vary = %q, want %q", got, tt.wantVary)
			}
		})
	}
}

func TestWithCORS_Preflight(t *testing.T) {
	w := corsRecorder(t, config.CORSConfig{AllowOrigin: "*", AllowCredentials: true}, http.MethodOptions, "http://a.example")

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != corsMethods {
		t.Fatalf("allow methods = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials = %q", got)
	}
}
