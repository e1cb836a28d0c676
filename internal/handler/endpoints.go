package handler

import (
	"net/http"

	"ConferenceAPI/internal/model"

	"github.com/gorilla/mux"
)

// Path variables used by the route table.
const (
	VarConferenceKey = "websafeConferenceKey"
	VarSessionType   = "typeOfSession"
	VarWebsafeKey    = "websafeKey"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetProfile(r.Context())
	respond(w, "getProfile", out, err)
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var form model.ProfileMiniForm
	if !decode(w, r, "saveProfile", &form) {
		return
	}
	out, err := h.api.SaveProfile(r.Context(), form)
	respond(w, "saveProfile", out, err)
}

func (h *Handler) CreateConference(w http.ResponseWriter, r *http.Request) {
	var form model.ConferenceForm
	if !decode(w, r, "createConference", &form) {
		return
	}
	out, err := h.api.CreateConference(r.Context(), form)
	respond(w, "createConference", out, err)
}

func (h *Handler) UpdateConference(w http.ResponseWriter, r *http.Request) {
	var form model.ConferenceForm
	if !decode(w, r, "updateConference", &form) {
		return
	}
	out, err := h.api.UpdateConference(r.Context(), mux.Vars(r)[VarConferenceKey], form)
	respond(w, "updateConference", out, err)
}

func (h *Handler) GetConference(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetConference(r.Context(), mux.Vars(r)[VarConferenceKey])
	respond(w, "getConference", out, err)
}

func (h *Handler) GetConferencesCreated(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetConferencesCreated(r.Context())
	respond(w, "getConferencesCreated", out, err)
}

func (h *Handler) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var form model.ConferenceQueryForms
	if !decode(w, r, "queryConferences", &form) {
		return
	}
	out, err := h.api.QueryConferences(r.Context(), form.Filters)
	respond(w, "queryConferences", out, err)
}

func (h *Handler) FilterPlayground(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.FilterPlayground(r.Context())
	respond(w, "filterPlayground", out, err)
}

func (h *Handler) RegisterForConference(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.RegisterForConference(r.Context(), mux.Vars(r)[VarConferenceKey])
	respond(w, "registerForConference", out, err)
}

func (h *Handler) UnregisterFromConference(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.UnregisterFromConference(r.Context(), mux.Vars(r)[VarConferenceKey])
	respond(w, "unregisterFromConference", out, err)
}

func (h *Handler) GetConferencesToAttend(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetConferencesToAttend(r.Context())
	respond(w, "getConferencesToAttend", out, err)
}

func (h *Handler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetAnnouncement(r.Context())
	respond(w, "getAnnouncement", out, err)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var form model.SessionForm
	if !decode(w, r, "createSession", &form) {
		return
	}
	out, err := h.api.CreateSession(r.Context(), mux.Vars(r)[VarConferenceKey], form)
	respond(w, "createSession", out, err)
}

func (h *Handler) GetConferenceSessions(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetConferenceSessions(r.Context(), mux.Vars(r)[VarConferenceKey])
	respond(w, "getConferenceSessions", out, err)
}

func (h *Handler) GetConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.api.GetConferenceSessionsByType(r.Context(), vars[VarConferenceKey], vars[VarSessionType])
	respond(w, "getConferenceSessionsByType", out, err)
}

func (h *Handler) GetSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	var form model.SpeakerForm
	if !decode(w, r, "getSessionsBySpeaker", &form) {
		return
	}
	out, err := h.api.GetSessionsBySpeaker(r.Context(), form)
	respond(w, "getSessionsBySpeaker", out, err)
}

func (h *Handler) QuerySessions(w http.ResponseWriter, r *http.Request) {
	var form model.ConferenceQueryForms
	if !decode(w, r, "querySessions", &form) {
		return
	}
	out, err := h.api.QuerySessions(r.Context(), form.Filters)
	respond(w, "querySessions", out, err)
}

func (h *Handler) QuerySessionsByDate(w http.ResponseWriter, r *http.Request) {
	var form model.SessionDateQueryForm
	if !decode(w, r, "querySessionsByDate", &form) {
		return
	}
	out, err := h.api.QuerySessionsByDate(r.Context(), form)
	respond(w, "querySessionsByDate", out, err)
}

func (h *Handler) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetFeaturedSpeaker(r.Context(), mux.Vars(r)[VarConferenceKey])
	respond(w, "getFeaturedSpeaker", out, err)
}

func (h *Handler) AddSessionToWishlist(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.AddSessionToWishlist(r.Context(), mux.Vars(r)[VarWebsafeKey])
	respond(w, "addSessionToWishlist", out, err)
}

func (h *Handler) RemoveSessionFromWishlist(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.RemoveSessionFromWishlist(r.Context(), mux.Vars(r)[VarWebsafeKey])
	respond(w, "removeSessionFromWishlist", out, err)
}

func (h *Handler) GetSessionsInWishlist(w http.ResponseWriter, r *http.Request) {
	out, err := h.api.GetSessionsInWishlist(r.Context())
	respond(w, "getSessionsInWishlist", out, err)
}
