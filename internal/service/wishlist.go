package service

import (
	"context"

	"ConferenceAPI/internal/model"
)

func (s *Service) AddSessionToWishlist(ctx context.Context, key string) (model.BooleanMessage, error) {
	return s.changeWishlist(ctx, key, true)
}

func (s *Service) RemoveSessionFromWishlist(ctx context.Context, key string) (model.BooleanMessage, error) {
	return s.changeWishlist(ctx, key, false)
}

func (s *Service) changeWishlist(ctx context.Context, key string, add bool) (model.BooleanMessage, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.BooleanMessage{}, err
	}
	if _, err := s.profileFor(ctx, u); err != nil {
		return model.BooleanMessage{}, err
	}
	changed, err := s.store.ChangeWishlist(ctx, u.ID, key, func(_ *model.Session, listed bool) (bool, error) {
		if !add {
			return false, nil
		}
		if listed {
			return false, Conflict("You have already wishlisted this session.")
		}
		return true, nil
	})
	if err != nil {
		return model.BooleanMessage{}, notFoundAs(err, sessionNotFound(key))
	}
	return model.BooleanMessage{Data: changed}, nil
}

func (s *Service) GetSessionsInWishlist(ctx context.Context) (model.SessionForms, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.SessionForms{}, err
	}
	prof, err := s.profileFor(ctx, u)
	if err != nil {
		return model.SessionForms{}, err
	}
	sessions, err := s.store.SessionsByKeys(ctx, prof.SessionKeysWishlist)
	if err != nil {
		return model.SessionForms{}, err
	}
	return s.sessionForms(ctx, sessions)
}
