package service

import (
	"context"

	"ConferenceAPI/internal/logger"
	"ConferenceAPI/internal/model"
)

func (s *Service) RegisterForConference(ctx context.Context, key string) (model.BooleanMessage, error) {
	return s.changeRegistration(ctx, key, true)
}

func (s *Service) UnregisterFromConference(ctx context.Context, key string) (model.BooleanMessage, error) {
	return s.changeRegistration(ctx, key, false)
}

// changeRegistration registers or unregisters the caller. Registering twice
// or into a full conference is a conflict; unregistering when not registered
// reports false.
func (s *Service) changeRegistration(ctx context.Context, key string, register bool) (model.BooleanMessage, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.BooleanMessage{}, err
	}
	if _, err := s.profileFor(ctx, u); err != nil {
		return model.BooleanMessage{}, err
	}

	changed, err := s.store.ChangeRegistration(ctx, u.ID, key, func(c *model.Conference, registered bool) (bool, error) {
		if !register {
			return false, nil
		}
		if registered {
			return false, Conflict("You have already registered for this conference")
		}
		if c.SeatsAvailable <= 0 {
			return false, Conflict("There are no seats available.")
		}
		return true, nil
	})
	if err != nil {
		return model.BooleanMessage{}, notFoundAs(err, conferenceNotFound(key))
	}
	if changed {
		logger.Info("registration_changed", map[string]any{
			"user":       u.ID,
			"conference": key,
			"registered": register,
		})
		s.refreshAnnouncementAsync()
	}
	return model.BooleanMessage{Data: changed}, nil
}

// GetConferencesToAttend lists the conferences the caller registered for.
func (s *Service) GetConferencesToAttend(ctx context.Context) (model.ConferenceForms, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	prof, err := s.profileFor(ctx, u)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	confs, err := s.store.ConferencesByKeys(ctx, prof.ConferenceKeysToAttend)
	if err != nil {
		return model.ConferenceForms{}, err
	}
	return s.conferenceForms(ctx, confs)
}
