// Package service is the video metadata collaborator: channel uploads,
// playlist listing and live-stream status from the YouTube Data API v3,
// authenticated with an API key.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/oops"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/video/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

const pageSize = 50

// Service wraps the YouTube Data API client
type Service struct {
	yt *yt.Service
}

// New creates the API client. Extra options are appended after the API key
// (tests point the client at a local endpoint this way).
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Service, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, oops.With("context", "failed to create youtube client").Wrap(err)
	}
	return &Service{yt: svc}, nil
}

// UploadsPlaylistID returns the playlist holding every upload of channelID.
func (s *Service) UploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	res, err := s.yt.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return "", fetchError(err, "channel_id", channelID, "call", "channels.list")
	}
	if len(res.Items) == 0 {
		return "", fetchError(errors.ErrChannelNotFound, "channel_id", channelID)
	}

	details := res.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", fetchError(fmt.Errorf("no uploads playlist"), "channel_id", channelID)
	}
	return details.RelatedPlaylists.Uploads, nil
}

// PlaylistVideos pages through a playlist and returns the videos keep accepts,
// in playlist order. Items without a video id or a parseable publish time are
// ignored.
func (s *Service) PlaylistVideos(ctx context.Context, playlistID string, keep func(domain.Video) bool) ([]domain.Video, error) {
	var videos []domain.Video

	call := s.yt.PlaylistItems.List([]string{"snippet"}).PlaylistId(playlistID).MaxResults(pageSize)
	err := call.Pages(ctx, func(res *yt.PlaylistItemListResponse) error {
		for _, item := range res.Items {
			video, ok := toVideo(item)
			if ok && keep(video) {
				videos = append(videos, video)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fetchError(err, "playlist_id", playlistID, "call", "playlistItems.list")
	}
	return videos, nil
}

// IsLiveStreamed reports whether videoID is a live stream that has ended.
func (s *Service) IsLiveStreamed(ctx context.Context, videoID string) (bool, error) {
	res, err := s.yt.Videos.List([]string{"liveStreamingDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return false, fetchError(err, "video_id", videoID, "call", "videos.list")
	}
	if len(res.Items) == 0 || res.Items[0].LiveStreamingDetails == nil {
		return false, nil
	}
	return res.Items[0].LiveStreamingDetails.ActualEndTime != "", nil
}

func toVideo(item *yt.PlaylistItem) (domain.Video, bool) {
	if item == nil || item.Snippet == nil || item.Snippet.ResourceId == nil || item.Snippet.ResourceId.VideoId == "" {
		return domain.Video{}, false
	}
	published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return domain.Video{}, false
	}
	return domain.Video{
		ID:          item.Snippet.ResourceId.VideoId,
		Title:       item.Snippet.Title,
		PublishedAt: item.Snippet.PublishedAt,
		Published:   published,
	}, true
}

func fetchError(err error, kv ...any) error {
	return oops.Code(errors.CodeFetch).With(kv...).Wrap(fmt.Errorf("%w: %w", errors.ErrFetch, err))
}
