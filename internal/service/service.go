// Package service implements the conference API operations on top of the
// store, cache and background tasks.
package service

import (
	"context"
	"errors"
	"fmt"

	"ConferenceAPI/internal/auth"
	"ConferenceAPI/internal/cache"
	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/model"
	"ConferenceAPI/internal/store"
	"ConferenceAPI/internal/tasks"
)

// Store is the persistence the service needs; *store.Postgres implements it.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	CreateProfile(ctx context.Context, p *model.Profile) error
	UpdateProfile(ctx context.Context, p *model.Profile) error
	ProfileNames(ctx context.Context, userIDs []string) (map[string]string, error)

	InsertConference(ctx context.Context, c *model.Conference) error
	GetConference(ctx context.Context, key string) (*model.Conference, error)
	UpdateConference(ctx context.Context, key string, fn func(*model.Conference) error) (*model.Conference, error)
	ConferencesByOrganizer(ctx context.Context, userID string) ([]model.Conference, error)
	ConferencesByKeys(ctx context.Context, keys []string) ([]model.Conference, error)
	QueryConferences(ctx context.Context, plan filter.Plan) ([]model.Conference, error)
	NearlySoldOut(ctx context.Context, maxSeats int) ([]string, error)
	ConferenceNames(ctx context.Context, keys []string) (map[string]string, error)

	InsertSession(ctx context.Context, s *model.Session) error
	GetSession(ctx context.Context, key string) (*model.Session, error)
	QuerySessions(ctx context.Context, plan filter.Plan) ([]model.Session, error)
	SessionsByKeys(ctx context.Context, keys []string) ([]model.Session, error)

	ChangeRegistration(ctx context.Context, userID, confKey string,
		decide func(c *model.Conference, registered bool) (bool, error)) (bool, error)
	ChangeWishlist(ctx context.Context, userID, sessionKey string,
		decide func(s *model.Session, listed bool) (bool, error)) (bool, error)
}

// TaskQueue accepts background work; *tasks.Dispatcher implements it.
type TaskQueue interface {
	Submit(name string, fn tasks.Func) bool
}

type Service struct {
	store  Store
	cache  cache.Cache
	queue  TaskQueue
	mailer tasks.Mailer
	regs   filter.Registries
}

func New(st Store, c cache.Cache, q TaskQueue, m tasks.Mailer, regs filter.Registries) *Service {
	return &Service{store: st, cache: c, queue: q, mailer: m, regs: regs}
}

func (s *Service) registry(entity string) (*filter.Registry, error) {
	r, ok := s.regs[entity]
	if !ok {
		return nil, fmt.Errorf("no filter registry for %s", entity)
	}
	return r, nil
}

func (s *Service) plan(entity string, tokens []filter.Token) (filter.Plan, error) {
	r, err := s.registry(entity)
	if err != nil {
		return filter.Plan{}, err
	}
	return r.Build(tokens)
}

func requireUser(ctx context.Context) (*auth.User, error) {
	u, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, Unauthorized("Authorization required")
	}
	return u, nil
}

// profileFor loads the caller's profile, creating it from the token claims
// on first use.
func (s *Service) profileFor(ctx context.Context, u *auth.User) (*model.Profile, error) {
	p, err := s.store.GetProfile(ctx, u.ID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	p = &model.Profile{
		UserID:       u.ID,
		DisplayName:  u.Name,
		MainEmail:    u.Email,
		TeeShirtSize: model.TeeShirtNotSpecified,
	}
	if err := s.store.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func conferenceNotFound(key string) error {
	return NotFound("No conference found with key: %s", key)
}

func sessionNotFound(key string) error {
	return NotFound("No session found with key: %s", key)
}

// notFoundAs swaps store.ErrNotFound for a client-facing error.
func notFoundAs(err error, replacement error) error {
	if errors.Is(err, store.ErrNotFound) {
		return replacement
	}
	return err
}
