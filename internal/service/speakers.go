package service

import (
	"context"
	"fmt"
	"strings"

	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/logger"
	"ConferenceAPI/internal/model"
)

const featuredSpeakerKeyPrefix = "FEATURED_SPEAKER:"

func FeaturedSpeakerKey(confKey string) string {
	return featuredSpeakerKeyPrefix + confKey
}

// UpdateFeaturedSpeaker makes speaker the conference's featured speaker when
// the new session is a keynote or the speaker has more than one session in
// the conference.
func (s *Service) UpdateFeaturedSpeaker(ctx context.Context, confKey, speaker, sessionType string) error {
	plan, err := s.plan(filter.EntitySession, []filter.Token{
		{Field: "CONFERENCE", Operator: "EQ", Value: confKey},
		{Field: "SPEAKER", Operator: "EQ", Value: speaker},
	})
	if err != nil {
		return err
	}
	sessions, err := s.store.QuerySessions(ctx, plan)
	if err != nil {
		return err
	}
	keynote := strings.EqualFold(sessionType, model.SessionTypeKeynote)
	if !keynote && len(sessions) < 2 {
		return nil
	}

	if _, err := s.store.UpdateConference(ctx, confKey, func(c *model.Conference) error {
		c.FeaturedSpeaker = speaker
		return nil
	}); err != nil {
		return notFoundAs(err, conferenceNotFound(confKey))
	}

	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name)
	}
	msg := fmt.Sprintf("Featured speaker: %s. Sessions: %s", speaker, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, FeaturedSpeakerKey(confKey), msg, 0); err != nil {
		return err
	}
	logger.Info("featured_speaker_set", map[string]any{
		"conference": confKey,
		"speaker":    speaker,
	})
	return nil
}

// GetFeaturedSpeaker returns the cached message, falling back to the speaker
// stored on the conference.
func (s *Service) GetFeaturedSpeaker(ctx context.Context, confKey string) (model.StringMessage, error) {
	conf, err := s.store.GetConference(ctx, confKey)
	if err != nil {
		return model.StringMessage{}, notFoundAs(err, conferenceNotFound(confKey))
	}
	msg, ok, err := s.cache.Get(ctx, FeaturedSpeakerKey(conf.Key))
	if err != nil {
		logger.Warn("featured_speaker_cache_failed", map[string]any{"error": err.Error()})
	}
	if ok {
		return model.StringMessage{Data: msg}, nil
	}
	if conf.FeaturedSpeaker == "" {
		return model.StringMessage{}, nil
	}
	return model.StringMessage{Data: "Featured speaker: " + conf.FeaturedSpeaker}, nil
}
