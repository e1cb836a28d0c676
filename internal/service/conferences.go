package service

import (
	"context"
	"encoding/json"

	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/logger"
	"ConferenceAPI/internal/model"
	"ConferenceAPI/internal/tasks"
)

const confirmationSubject = "You created a new Conference!"

func (s *Service) CreateConference(ctx context.Context, form model.ConferenceForm) (model.ConferenceForm, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.ConferenceForm{}, err
	}
	if form.Name == "" {
		return model.ConferenceForm{}, BadRequest("Conference 'name' field required")
	}
	prof, err := s.profileFor(ctx, u)
	if err != nil {
		return model.ConferenceForm{}, err
	}

	conf, err := model.NewConferenceFromForm(form, u.ID)
	if err != nil {
		return model.ConferenceForm{}, BadRequest("%s", err.Error())
	}
	if err := s.store.InsertConference(ctx, &conf); err != nil {
		return model.ConferenceForm{}, err
	}
	logger.Info("conference_created", map[string]any{
		"key":       conf.Key,
		"organizer": u.ID,
	})

	out := model.ConferenceToForm(&conf, prof.DisplayName)
	s.sendConfirmation(u.Email, confirmationSubject, "Hi, you have created a following conference:", out)
	return out, nil
}

// UpdateConference applies the fields present in form; only the organizer
// may change a conference.
func (s *Service) UpdateConference(ctx context.Context, key string, form model.ConferenceForm) (model.ConferenceForm, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.ConferenceForm{}, err
	}
	conf, err := s.store.UpdateConference(ctx, key, func(c *model.Conference) error {
		if c.OrganizerUserID != u.ID {
			return Forbidden("Only the owner can update the conference.")
		}
		if err := model.ApplyConferenceUpdate(c, form); err != nil {
			return BadRequest("%s", err.Error())
		}
		return nil
	})
	if err != nil {
		return model.ConferenceForm{}, notFoundAs(err, conferenceNotFound(key))
	}
	return s.conferenceForm(ctx, conf)
}

func (s *Service) GetConference(ctx context.Context, key string) (model.ConferenceForm, error) {
	conf, err := s.store.GetConference(ctx, key)
	if err != nil {
		return model.ConferenceForm{}, notFoundAs(err, conferenceNotFound(key))
	}
	return s.conferenceForm(ctx, conf)
}

func (s *Service) GetConferencesCreated(ctx context.Context) (model.ConferenceForms, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	prof, err := s.profileFor(ctx, u)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	confs, err := s.store.ConferencesByOrganizer(ctx, u.ID)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	return model.ConferencesToForms(confs, map[string]string{u.ID: prof.DisplayName}), nil
}

// QueryConferences runs the client's filter list through the conference
// registry.
func (s *Service) QueryConferences(ctx context.Context, tokens []filter.Token) (model.ConferenceForms, error) {
	plan, err := s.plan(filter.EntityConference, tokens)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	confs, err := s.store.QueryConferences(ctx, plan)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	return s.conferenceForms(ctx, confs)
}

// FilterPlayground runs a fixed example query.
func (s *Service) FilterPlayground(ctx context.Context) (model.ConferenceForms, error) {
	return s.QueryConferences(ctx, []filter.Token{
		{Field: "CITY", Operator: "EQ", Value: "London"},
	})
}

func (s *Service) conferenceForm(ctx context.Context, c *model.Conference) (model.ConferenceForm, error) {
	names, err := s.store.ProfileNames(ctx, []string{c.OrganizerUserID})
	if err != nil {
		return model.ConferenceForm{}, err
	}
	return model.ConferenceToForm(c, names[c.OrganizerUserID]), nil
}

func (s *Service) conferenceForms(ctx context.Context, confs []model.Conference) (model.ConferenceForms, error) {
	ids := make([]string, 0, len(confs))
	for _, c := range confs {
		ids = append(ids, c.OrganizerUserID)
	}
	names, err := s.store.ProfileNames(ctx, ids)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	return model.ConferencesToForms(confs, names), nil
}

// sendConfirmation queues a mail describing the created entity.
func (s *Service) sendConfirmation(to, subject, intro string, entity any) {
	if to == "" || s.mailer == nil || s.queue == nil {
		return
	}
	info, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		logger.Warn("confirmation_encode_failed", map[string]any{"error": err.Error()})
		return
	}
	body := intro + "\r\n\r\n" + string(info)
	s.queue.Submit("send_confirmation_email", tasks.MailTask(s.mailer, to, subject, body))
}
