package service

import (
	"context"
	"strings"

	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/logger"
	"ConferenceAPI/internal/model"
)

const sessionConfirmationSubject = "You created a new Session!"

// CreateSession adds a session to a conference the caller organizes and
// queues the featured speaker check.
func (s *Service) CreateSession(ctx context.Context, confKey string, form model.SessionForm) (model.SessionForm, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.SessionForm{}, err
	}
	if form.Name == "" {
		return model.SessionForm{}, BadRequest("Session 'name' field required")
	}
	conf, err := s.store.GetConference(ctx, confKey)
	if err != nil {
		return model.SessionForm{}, notFoundAs(err, conferenceNotFound(confKey))
	}
	if conf.OrganizerUserID != u.ID {
		return model.SessionForm{}, Forbidden("Only the owner can add sessions to the conference.")
	}

	sess, err := model.NewSessionFromForm(form, conf.Key, u.ID)
	if err != nil {
		return model.SessionForm{}, BadRequest("%s", err.Error())
	}
	if err := s.store.InsertSession(ctx, &sess); err != nil {
		return model.SessionForm{}, err
	}
	logger.Info("session_created", map[string]any{
		"key":        sess.Key,
		"conference": conf.Key,
	})

	if sess.Speaker != "" && s.queue != nil {
		speaker, sessType := sess.Speaker, sess.TypeOfSession
		s.queue.Submit("featured_speaker", func(ctx context.Context) error {
			return s.UpdateFeaturedSpeaker(ctx, conf.Key, speaker, sessType)
		})
	}
	out := model.SessionToForm(&sess, conf.Name)
	s.sendConfirmation(u.Email, sessionConfirmationSubject, "Hi, you have created a following session:", out)
	return out, nil
}

func (s *Service) GetConferenceSessions(ctx context.Context, confKey string) (model.SessionForms, error) {
	return s.conferenceSessions(ctx, confKey)
}

func (s *Service) GetConferenceSessionsByType(ctx context.Context, confKey, sessionType string) (model.SessionForms, error) {
	return s.conferenceSessions(ctx, confKey,
		filter.Token{Field: "TYPE_OF_SESSION", Operator: "EQ", Value: sessionType})
}

func (s *Service) conferenceSessions(ctx context.Context, confKey string, extra ...filter.Token) (model.SessionForms, error) {
	conf, err := s.store.GetConference(ctx, confKey)
	if err != nil {
		return model.SessionForms{}, notFoundAs(err, conferenceNotFound(confKey))
	}
	tokens := append([]filter.Token{{Field: "CONFERENCE", Operator: "EQ", Value: conf.Key}}, extra...)
	plan, err := s.plan(filter.EntitySession, tokens)
	if err != nil {
		return model.SessionForms{}, err
	}
	sessions, err := s.store.QuerySessions(ctx, plan)
	if err != nil {
		return model.SessionForms{}, err
	}
	return model.SessionsToForms(sessions, map[string]string{conf.Key: conf.Name}), nil
}

func (s *Service) GetSessionsBySpeaker(ctx context.Context, form model.SpeakerForm) (model.SessionForms, error) {
	speaker := strings.TrimSpace(form.Speaker)
	if speaker == "" {
		return model.SessionForms{}, BadRequest("Speaker 'speaker' field required")
	}
	return s.QuerySessions(ctx, []filter.Token{{Field: "SPEAKER", Operator: "EQ", Value: speaker}})
}

// QuerySessions runs the client's filter list through the session registry.
func (s *Service) QuerySessions(ctx context.Context, tokens []filter.Token) (model.SessionForms, error) {
	plan, err := s.plan(filter.EntitySession, tokens)
	if err != nil {
		return model.SessionForms{}, err
	}
	sessions, err := s.store.QuerySessions(ctx, plan)
	if err != nil {
		return model.SessionForms{}, err
	}
	return s.sessionForms(ctx, sessions)
}

// QuerySessionsByDate restricts the submitted filters to one day.
func (s *Service) QuerySessionsByDate(ctx context.Context, form model.SessionDateQueryForm) (model.SessionForms, error) {
	day, err := model.ParseDate("date", form.Date)
	if err != nil {
		return model.SessionForms{}, BadRequest("%s", err.Error())
	}
	if day == nil {
		return model.SessionForms{}, BadRequest("Session query 'date' field required")
	}
	tokens := append([]filter.Token{{Field: "DATE", Operator: "EQ", Value: model.FormatDate(day)}}, form.Filters...)
	return s.QuerySessions(ctx, tokens)
}

func (s *Service) sessionForms(ctx context.Context, sessions []model.Session) (model.SessionForms, error) {
	keys := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		keys = append(keys, sess.ConferenceKey)
	}
	names, err := s.store.ConferenceNames(ctx, keys)
	if err != nil {
		return model.SessionForms{}, err
	}
	return model.SessionsToForms(sessions, names), nil
}
