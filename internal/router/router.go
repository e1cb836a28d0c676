package router

import (
	"net/http"
	"time"

	"ConferenceAPI/internal/auth"
	"ConferenceAPI/internal/config"
	"ConferenceAPI/internal/handler"
	"ConferenceAPI/internal/logger"

	"github.com/gorilla/mux"
)

// APIRoot is the path prefix of every endpoint.
const APIRoot = "/_ah/api/conference/v1"

// New builds the HTTP handler: route table, auth, rate limiting, request
// logging and CORS.
func New(cfg *config.Config, h *handler.Handler, v *auth.JWTValidator) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix(APIRoot).Subrouter()

	api.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", h.SaveProfile).Methods(http.MethodPost)

	// Fixed paths under /conference go before the {key} pattern.
	api.HandleFunc("/conference/announcement/get", h.GetAnnouncement).Methods(http.MethodGet)
	api.HandleFunc("/conference", h.CreateConference).Methods(http.MethodPost)
	api.HandleFunc("/conference/{websafeConferenceKey}", h.UpdateConference).Methods(http.MethodPut)
	api.HandleFunc("/conference/{websafeConferenceKey}", h.GetConference).Methods(http.MethodGet)
	api.HandleFunc("/conference/{websafeConferenceKey}", h.RegisterForConference).Methods(http.MethodPost)
	api.HandleFunc("/conference/{websafeConferenceKey}", h.UnregisterFromConference).Methods(http.MethodDelete)
	api.HandleFunc("/conference/{websafeConferenceKey}/sessions", h.GetConferenceSessions).Methods(http.MethodGet)
	api.HandleFunc("/conference/{websafeConferenceKey}/sessions/{typeOfSession}", h.GetConferenceSessionsByType).Methods(http.MethodGet)
	api.HandleFunc("/conference/{websafeConferenceKey}/featuredSpeaker", h.GetFeaturedSpeaker).Methods(http.MethodGet)

	api.HandleFunc("/getConferencesCreated", h.GetConferencesCreated).Methods(http.MethodPost)
	api.HandleFunc("/queryConferences", h.QueryConferences).Methods(http.MethodPost)
	api.HandleFunc("/conferences/attending", h.GetConferencesToAttend).Methods(http.MethodGet)
	api.HandleFunc("/filterPlayground", h.FilterPlayground).Methods(http.MethodGet)

	api.HandleFunc("/session/{websafeConferenceKey}", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/speaker", h.GetSessionsBySpeaker).Methods(http.MethodPost)
	api.HandleFunc("/querySessions", h.QuerySessions).Methods(http.MethodPost)
	api.HandleFunc("/sessions/date", h.QuerySessionsByDate).Methods(http.MethodPost)
	api.HandleFunc("/sessions/attending", h.GetSessionsInWishlist).Methods(http.MethodGet)
	api.HandleFunc("/wishlist/{websafeKey}", h.AddSessionToWishlist).Methods(http.MethodPost)
	api.HandleFunc("/wishlist/{websafeKey}", h.RemoveSessionFromWishlist).Methods(http.MethodDelete)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	var next http.Handler = auth.Middleware(v)(r)
	if cfg.RateLimit.RPS > 0 {
		next = newIPLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 15*time.Minute).wrap(next)
	}
	return withCORS(newCORSPolicy(cfg.CORS), withLogging(next))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		fields := map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		switch {
		case sw.status >= 500:
			logger.Error("response", fields)
		case sw.status >= 400:
			logger.Warn("response", fields)
		default:
			logger.Info("response", fields)
		}
	})
}
