package model

import "ConferenceAPI/internal/filter"

// Request and response bodies. Pointer fields distinguish "not sent" from zero
// so partial updates only touch what the client supplied.

type ProfileMiniForm struct {
	DisplayName  string `json:"displayName,omitempty"`
	TeeShirtSize string `json:"teeShirtSize,omitempty"`
}

type ProfileForm struct {
	DisplayName            string       `json:"displayName"`
	MainEmail              string       `json:"mainEmail"`
	TeeShirtSize           TeeShirtSize `json:"teeShirtSize"`
	ConferenceKeysToAttend []string     `json:"conferenceKeysToAttend"`
	SessionKeysWishlist    []string     `json:"sessionKeysWishlist"`
}

type ConferenceForm struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	OrganizerUserID      string   `json:"organizerUserId,omitempty"`
	Topics               []string `json:"topics,omitempty"`
	City                 string   `json:"city,omitempty"`
	StartDate            string   `json:"startDate,omitempty"`
	Month                int      `json:"month"`
	MaxAttendees         *int     `json:"maxAttendees,omitempty"`
	SeatsAvailable       *int     `json:"seatsAvailable,omitempty"`
	EndDate              string   `json:"endDate,omitempty"`
	FeaturedSpeaker      string   `json:"featuredSpeaker,omitempty"`
	WebsafeKey           string   `json:"websafeKey,omitempty"`
	OrganizerDisplayName string   `json:"organizerDisplayName,omitempty"`
}

type ConferenceForms struct {
	Items []ConferenceForm `json:"items"`
}

// ConferenceQueryForms carries the client's filter list for both conference
// and session queries.
type ConferenceQueryForms struct {
	Filters []filter.Token `json:"filters"`
}

type SessionForm struct {
	Name                 string `json:"name"`
	Highlights           string `json:"highlights,omitempty"`
	Speaker              string `json:"speaker,omitempty"`
	Duration             *int   `json:"duration,omitempty"`
	TypeOfSession        string `json:"typeOfSession,omitempty"`
	Date                 string `json:"date,omitempty"`
	StartTime            string `json:"startTime,omitempty"`
	OrganizerUserID      string `json:"organizerUserId,omitempty"`
	WebsafeKey           string `json:"websafeKey,omitempty"`
	WebsafeConferenceKey string `json:"websafeConferenceKey,omitempty"`
	ParentConfName       string `json:"parentConfName,omitempty"`
}

type SessionForms struct {
	Items []SessionForm `json:"items"`
}

type SpeakerForm struct {
	Speaker string `json:"speaker"`
}

type SessionDateQueryForm struct {
	Date    string         `json:"date"`
	Filters []filter.Token `json:"filters"`
}

type StringMessage struct {
	Data string `json:"data"`
}

type BooleanMessage struct {
	Data bool `json:"data"`
}
