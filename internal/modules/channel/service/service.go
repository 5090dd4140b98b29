package service

import (
	"fmt"

	"github.com/samber/oops"

	channelRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/channel/repository"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

// Service decides which channels a fetch run visits
type Service struct {
	repo            channelRepo.Repository
	defaultOverride string
}

// New creates a channel service. defaultOverride (the channel_id setting)
// replaces the stored list when set.
func New(repo channelRepo.Repository, defaultOverride string) *Service {
	return &Service{repo: repo, defaultOverride: defaultOverride}
}

// Resolve returns the channels for this run: the explicit channel if given,
// else the configured override, else the stored list.
func (s *Service) Resolve(explicit string) ([]string, error) {
	if explicit != "" {
		return []string{explicit}, nil
	}
	if s.defaultOverride != "" {
		return []string{s.defaultOverride}, nil
	}

	channels, err := s.repo.GetAllChannels()
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, oops.Code(errors.CodeConfig).Wrap(fmt.Errorf("%w: channel list is empty", errors.ErrConfig))
	}
	return channels, nil
}
