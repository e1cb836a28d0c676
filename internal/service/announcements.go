package service

import (
	"context"
	"fmt"
	"strings"

	"ConferenceAPI/internal/logger"
	"ConferenceAPI/internal/model"
)

const (
	AnnouncementKey      = "RECENT_ANNOUNCEMENTS"
	announcementTemplate = "Last chance to attend! The following conferences are nearly sold out: %s"
	nearlySoldOutSeats   = 5
)

// CacheAnnouncement rebuilds the nearly-sold-out announcement and returns
// it; the cache entry is removed when no conference qualifies.
func (s *Service) CacheAnnouncement(ctx context.Context) (string, error) {
	names, err := s.store.NearlySoldOut(ctx, nearlySoldOutSeats)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", s.cache.Delete(ctx, AnnouncementKey)
	}
	msg := fmt.Sprintf(announcementTemplate, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, AnnouncementKey, msg, 0); err != nil {
		return "", err
	}
	return msg, nil
}

func (s *Service) GetAnnouncement(ctx context.Context) (model.StringMessage, error) {
	msg, ok, err := s.cache.Get(ctx, AnnouncementKey)
	if err != nil {
		return model.StringMessage{}, err
	}
	if !ok {
		return model.StringMessage{}, nil
	}
	return model.StringMessage{Data: msg}, nil
}

// RefreshAnnouncement adapts CacheAnnouncement to the task signature used
// by the scheduler.
func (s *Service) RefreshAnnouncement(ctx context.Context) error {
	msg, err := s.CacheAnnouncement(ctx)
	if err != nil {
		return err
	}
	logger.Debug("announcement_refreshed", map[string]any{"announcement": msg})
	return nil
}

func (s *Service) refreshAnnouncementAsync() {
	if s.queue == nil {
		return
	}
	s.queue.Submit("cache_announcement", s.RefreshAnnouncement)
}
