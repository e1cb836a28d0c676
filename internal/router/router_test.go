package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ConferenceAPI/internal/config"
	"ConferenceAPI/internal/handler"
	"ConferenceAPI/internal/model"
)

// recordingAPI answers every call it is wired for with the operation name.
type recordingAPI struct {
	handler.API
	called string
	key    string
}

func (a *recordingAPI) GetConference(_ context.Context, key string) (model.ConferenceForm, error) {
	a.called, a.key = "GetConference", key
	return model.ConferenceForm{}, nil
}

func (a *recordingAPI) RegisterForConference(_ context.Context, key string) (model.BooleanMessage, error) {
	a.called, a.key = "RegisterForConference", key
	return model.BooleanMessage{Data: true}, nil
}

func (a *recordingAPI) GetAnnouncement(context.Context) (model.StringMessage, error) {
	a.called = "GetAnnouncement"
	return model.StringMessage{}, nil
}

func (a *recordingAPI) GetConferenceSessionsByType(_ context.Context, key, typ string) (model.SessionForms, error) {
	a.called, a.key = "GetConferenceSessionsByType", key+"/"+typ
	return model.SessionForms{}, nil
}

func (a *recordingAPI) RemoveSessionFromWishlist(_ context.Context, key string) (model.BooleanMessage, error) {
	a.called, a.key = "RemoveSessionFromWishlist", key
	return model.BooleanMessage{}, nil
}

func testConfig() *config.Config {
	return &config.Config{CORS: config.CORSConfig{AllowOrigin: "*"}}
}

func TestRoutes(t *testing.T) {
	cases := []struct {
		method, path string
		called, key  string
	}{
		{http.MethodGet, "/conference/k1", "GetConference", "k1"},
		{http.MethodPost, "/conference/k1", "RegisterForConference", "k1"},
		{http.MethodGet, "/conference/announcement/get", "GetAnnouncement", ""},
		{http.MethodGet, "/conference/k1/sessions/keynote", "GetConferenceSessionsByType", "k1/keynote"},
		{http.MethodDelete, "/wishlist/s1", "RemoveSessionFromWishlist", "s1"},
	}
	for _, c := range cases {
		api := &recordingAPI{}
		h := New(testConfig(), handler.New(api), nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(c.method, APIRoot+c.path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: status %d", c.method, c.path, rec.Code)
		}
		if api.called != c.called || api.key != c.key {
			t.Fatalf("%s %s: routed to %s(%s), want %s(%s)", c.method, c.path, api.called, api.key, c.called, c.key)
		}
	}
}

func TestPreflight(t *testing.T) {
	h := New(testConfig(), handler.New(&recordingAPI{}), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, APIRoot+"/conference/k1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE, OPTIONS" {
		t.Fatalf("allow methods = %q", got)
	}
}

func TestUnknownMethodIsRejected(t *testing.T) {
	h := New(testConfig(), handler.New(&recordingAPI{}), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, APIRoot+"/conference/k1", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	h := New(testConfig(), handler.New(&recordingAPI{}), nil)
	req := httptest.NewRequest(http.MethodGet, APIRoot+"/conference/k1", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 2}
	h := New(cfg, handler.New(&recordingAPI{}), nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, APIRoot+"/conference/announcement/get", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
}
