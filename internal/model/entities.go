package model

import (
	"fmt"
	"time"
)

// TeeShirtSize is stored as its enum name.
type TeeShirtSize string

const (
	TeeShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	TeeShirtXSM          TeeShirtSize = "XS_M"
	TeeShirtXSW          TeeShirtSize = "XS_W"
	TeeShirtSM           TeeShirtSize = "S_M"
	TeeShirtSW           TeeShirtSize = "S_W"
	TeeShirtMM           TeeShirtSize = "M_M"
	TeeShirtMW           TeeShirtSize = "M_W"
	TeeShirtLM           TeeShirtSize = "L_M"
	TeeShirtLW           TeeShirtSize = "L_W"
	TeeShirtXLM          TeeShirtSize = "XL_M"
	TeeShirtXLW          TeeShirtSize = "XL_W"
	TeeShirtXXLM         TeeShirtSize = "XXL_M"
	TeeShirtXXLW         TeeShirtSize = "XXL_W"
	TeeShirtXXXLM        TeeShirtSize = "XXXL_M"
	TeeShirtXXXLW        TeeShirtSize = "XXXL_W"
)

var teeShirtSizes = map[TeeShirtSize]bool{
	TeeShirtNotSpecified: true,
	TeeShirtXSM: true, TeeShirtXSW: true,
	TeeShirtSM: true, TeeShirtSW: true,
	TeeShirtMM: true, TeeShirtMW: true,
	TeeShirtLM: true, TeeShirtLW: true,
	TeeShirtXLM: true, TeeShirtXLW: true,
	TeeShirtXXLM: true, TeeShirtXXLW: true,
	TeeShirtXXXLM: true, TeeShirtXXXLW: true,
}

func ParseTeeShirtSize(s string) (TeeShirtSize, error) {
	size := TeeShirtSize(s)
	if !teeShirtSizes[size] {
		return "", &InvalidFieldError{Field: "teeShirtSize", Value: s, Reason: "unknown size"}
	}
	return size, nil
}

// Session types that have special meaning for featured speakers.
const SessionTypeKeynote = "keynote"

type Profile struct {
	UserID                 string
	DisplayName            string
	MainEmail              string
	TeeShirtSize           TeeShirtSize
	ConferenceKeysToAttend []string
	SessionKeysWishlist    []string
}

type Conference struct {
	Key             string
	Name            string
	Description     string
	OrganizerUserID string
	Topics          []string
	City            string
	StartDate       *time.Time
	EndDate         *time.Time
	Month           int
	MaxAttendees    int
	SeatsAvailable  int
	FeaturedSpeaker string
}

type Session struct {
	Key             string
	ConferenceKey   string
	Name            string
	Highlights      string
	Speaker         string
	Duration        int // minutes
	TypeOfSession   string
	Date            *time.Time
	StartTime       string // HH:MM
	Month           int
	OrganizerUserID string
}

// InvalidFieldError reports a client supplied value that cannot be stored.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
