package service

import (
	"context"

	"ConferenceAPI/internal/model"
)

func (s *Service) GetProfile(ctx context.Context) (model.ProfileForm, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.ProfileForm{}, err
	}
	p, err := s.profileFor(ctx, u)
	if err != nil {
		return model.ProfileForm{}, err
	}
	return model.ProfileToForm(p), nil
}

// SaveProfile updates the fields the client sent and returns the result.
func (s *Service) SaveProfile(ctx context.Context, form model.ProfileMiniForm) (model.ProfileForm, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return model.ProfileForm{}, err
	}
	p, err := s.profileFor(ctx, u)
	if err != nil {
		return model.ProfileForm{}, err
	}

	if form.DisplayName != "" {
		p.DisplayName = form.DisplayName
	}
	if form.TeeShirtSize != "" {
		size, err := model.ParseTeeShirtSize(form.TeeShirtSize)
		if err != nil {
			return model.ProfileForm{}, BadRequest("%s", err.Error())
		}
		p.TeeShirtSize = size
	}
	if err := s.store.UpdateProfile(ctx, p); err != nil {
		return model.ProfileForm{}, err
	}
	return model.ProfileToForm(p), nil
}
