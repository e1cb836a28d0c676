package model

import (
	"time"
)

const dateLayout = "2006-01-02"

const DefaultCity = "Default City"

func defaultTopics() []string { return []string{"Default", "Topic"} }

// ParseDate accepts "YYYY-MM-DD", ignoring anything after the first 10 chars
// (clients often send full timestamps).
func ParseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	raw := s
	if len(raw) > len(dateLayout) {
		raw = raw[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, &InvalidFieldError{Field: field, Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return &t, nil
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// ParseStartTime normalises "H:MM"/"HH:MM" to "HH:MM".
func ParseStartTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", &InvalidFieldError{Field: "startTime", Value: s, Reason: "expected HH:MM"}
	}
	return t.Format("15:04"), nil
}

func monthOf(t *time.Time) int {
	if t == nil {
		return 0
	}
	return int(t.Month())
}

// NewConferenceFromForm builds a conference for creation, filling defaults.
// Seats start equal to maxAttendees.
func NewConferenceFromForm(f ConferenceForm, organizerID string) (Conference, error) {
	c := Conference{
		Name:            f.Name,
		Description:     f.Description,
		OrganizerUserID: organizerID,
		Topics:          append([]string(nil), f.Topics...),
		City:            f.City,
	}
	if c.City == "" {
		c.City = DefaultCity
	}
	if len(c.Topics) == 0 {
		c.Topics = defaultTopics()
	}
	if f.MaxAttendees != nil {
		c.MaxAttendees = *f.MaxAttendees
	}
	if f.SeatsAvailable != nil {
		c.SeatsAvailable = *f.SeatsAvailable
	}
	if c.MaxAttendees > 0 {
		c.SeatsAvailable = c.MaxAttendees
	}

	var err error
	if c.StartDate, err = ParseDate("startDate", f.StartDate); err != nil {
		return Conference{}, err
	}
	if c.EndDate, err = ParseDate("endDate", f.EndDate); err != nil {
		return Conference{}, err
	}
	c.Month = monthOf(c.StartDate)
	return c, nil
}

// ApplyConferenceUpdate copies only the fields the client sent.
func ApplyConferenceUpdate(c *Conference, f ConferenceForm) error {
	if f.Name != "" {
		c.Name = f.Name
	}
	if f.Description != "" {
		c.Description = f.Description
	}
	if len(f.Topics) > 0 {
		c.Topics = append([]string(nil), f.Topics...)
	}
	if f.City != "" {
		c.City = f.City
	}
	if f.MaxAttendees != nil {
		c.MaxAttendees = *f.MaxAttendees
	}
	if f.SeatsAvailable != nil {
		c.SeatsAvailable = *f.SeatsAvailable
	}
	if f.StartDate != "" {
		d, err := ParseDate("startDate", f.StartDate)
		if err != nil {
			return err
		}
		c.StartDate = d
		c.Month = monthOf(d)
	}
	if f.EndDate != "" {
		d, err := ParseDate("endDate", f.EndDate)
		if err != nil {
			return err
		}
		c.EndDate = d
	}
	return nil
}

func ConferenceToForm(c *Conference, displayName string) ConferenceForm {
	maxAttendees := c.MaxAttendees
	seats := c.SeatsAvailable
	return ConferenceForm{
		Name:                 c.Name,
		Description:          c.Description,
		OrganizerUserID:      c.OrganizerUserID,
		Topics:               append([]string(nil), c.Topics...),
		City:                 c.City,
		StartDate:            FormatDate(c.StartDate),
		Month:                c.Month,
		MaxAttendees:         &maxAttendees,
		SeatsAvailable:       &seats,
		EndDate:              FormatDate(c.EndDate),
		FeaturedSpeaker:      c.FeaturedSpeaker,
		WebsafeKey:           c.Key,
		OrganizerDisplayName: displayName,
	}
}

func ConferencesToForms(confs []Conference, names map[string]string) ConferenceForms {
	out := ConferenceForms{Items: make([]ConferenceForm, 0, len(confs))}
	for i := range confs {
		out.Items = append(out.Items, ConferenceToForm(&confs[i], names[confs[i].OrganizerUserID]))
	}
	return out
}

func NewSessionFromForm(f SessionForm, conferenceKey, organizerID string) (Session, error) {
	s := Session{
		ConferenceKey:   conferenceKey,
		Name:            f.Name,
		Highlights:      f.Highlights,
		Speaker:         f.Speaker,
		TypeOfSession:   f.TypeOfSession,
		OrganizerUserID: organizerID,
	}
	if f.Duration != nil {
		if *f.Duration < 0 {
			return Session{}, &InvalidFieldError{Field: "duration", Value: "negative", Reason: "must be >= 0"}
		}
		s.Duration = *f.Duration
	}
	var err error
	if s.Date, err = ParseDate("date", f.Date); err != nil {
		return Session{}, err
	}
	if s.StartTime, err = ParseStartTime(f.StartTime); err != nil {
		return Session{}, err
	}
	s.Month = monthOf(s.Date)
	return s, nil
}

func SessionToForm(s *Session, confName string) SessionForm {
	duration := s.Duration
	return SessionForm{
		Name:                 s.Name,
		Highlights:           s.Highlights,
		Speaker:              s.Speaker,
		Duration:             &duration,
		TypeOfSession:        s.TypeOfSession,
		Date:                 FormatDate(s.Date),
		StartTime:            s.StartTime,
		OrganizerUserID:      s.OrganizerUserID,
		WebsafeKey:           s.Key,
		WebsafeConferenceKey: s.ConferenceKey,
		ParentConfName:       confName,
	}
}

// SessionsToForms resolves each session's parent name through confNames
// (conference key -> name).
func SessionsToForms(sessions []Session, confNames map[string]string) SessionForms {
	out := SessionForms{Items: make([]SessionForm, 0, len(sessions))}
	for i := range sessions {
		out.Items = append(out.Items, SessionToForm(&sessions[i], confNames[sessions[i].ConferenceKey]))
	}
	return out
}

func ProfileToForm(p *Profile) ProfileForm {
	size := p.TeeShirtSize
	if size == "" {
		size = TeeShirtNotSpecified
	}
	return ProfileForm{
		DisplayName:            p.DisplayName,
		MainEmail:              p.MainEmail,
		TeeShirtSize:           size,
		ConferenceKeysToAttend: nonNil(p.ConferenceKeysToAttend),
		SessionKeysWishlist:    nonNil(p.SessionKeysWishlist),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
