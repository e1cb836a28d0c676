// Package handler decodes HTTP requests, calls the conference service and
// encodes its results or failures as JSON.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/logger"
	"ConferenceAPI/internal/model"
	"ConferenceAPI/internal/service"
)

const maxBodyBytes = 1 << 20

// API is the set of operations served over HTTP; *service.Service
// implements it.
type API interface {
	GetProfile(ctx context.Context) (model.ProfileForm, error)
	SaveProfile(ctx context.Context, form model.ProfileMiniForm) (model.ProfileForm, error)

	CreateConference(ctx context.Context, form model.ConferenceForm) (model.ConferenceForm, error)
	UpdateConference(ctx context.Context, key string, form model.ConferenceForm) (model.ConferenceForm, error)
	GetConference(ctx context.Context, key string) (model.ConferenceForm, error)
	GetConferencesCreated(ctx context.Context) (model.ConferenceForms, error)
	QueryConferences(ctx context.Context, tokens []filter.Token) (model.ConferenceForms, error)
	FilterPlayground(ctx context.Context) (model.ConferenceForms, error)

	RegisterForConference(ctx context.Context, key string) (model.BooleanMessage, error)
	UnregisterFromConference(ctx context.Context, key string) (model.BooleanMessage, error)
	GetConferencesToAttend(ctx context.Context) (model.ConferenceForms, error)
	GetAnnouncement(ctx context.Context) (model.StringMessage, error)

	CreateSession(ctx context.Context, confKey string, form model.SessionForm) (model.SessionForm, error)
	GetConferenceSessions(ctx context.Context, confKey string) (model.SessionForms, error)
	GetConferenceSessionsByType(ctx context.Context, confKey, sessionType string) (model.SessionForms, error)
	GetSessionsBySpeaker(ctx context.Context, form model.SpeakerForm) (model.SessionForms, error)
	QuerySessions(ctx context.Context, tokens []filter.Token) (model.SessionForms, error)
	QuerySessionsByDate(ctx context.Context, form model.SessionDateQueryForm) (model.SessionForms, error)
	GetFeaturedSpeaker(ctx context.Context, confKey string) (model.StringMessage, error)

	AddSessionToWishlist(ctx context.Context, key string) (model.BooleanMessage, error)
	RemoveSessionFromWishlist(ctx context.Context, key string) (model.BooleanMessage, error)
	GetSessionsInWishlist(ctx context.Context) (model.SessionForms, error)
}

type Handler struct {
	api API
}

func New(api API) *Handler {
	return &Handler{api: api}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var kindStatus = map[service.Kind]int{
	service.KindBadRequest:   http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindForbidden:    http.StatusForbidden,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
}

// decode reads an optional JSON body into dst. An empty body leaves dst
// untouched.
func decode(w http.ResponseWriter, r *http.Request, endpoint string, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn("read_body_failed", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		writeJSONError(w, http.StatusBadRequest, "Failed to read body")
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		logger.Warn("invalid_json", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	logger.Debug("request", map[string]any{
		"endpoint": endpoint,
		"payload":  json.RawMessage(body),
	})
	return true
}

// respond writes result as JSON, or err mapped to its HTTP status.
func respond(w http.ResponseWriter, endpoint string, result any, err error) {
	if err != nil {
		writeError(w, endpoint, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Error("write_response_failed", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
	}
}

func writeError(w http.ResponseWriter, endpoint string, err error) {
	status, ok := kindStatus[service.KindOf(err)]
	if !ok {
		logger.Error("request_failed", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		if errors.Is(err, context.DeadlineExceeded) {
			writeJSONError(w, http.StatusGatewayTimeout, "request timed out")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSONError(w, status, err.Error())
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: status, Message: msg}})
}
