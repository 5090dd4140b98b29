// Package service runs the fetch stage: it walks the monitored channels,
// downloads the chat of every newly finished live stream, keeps the messages
// that pass the filter and hands them to the render stage through the
// intermediate chat record.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"

	chatDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
	chatRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/repository"
	"github.com/do-dorio/youtube-chat-feed/internal/modules/chat/source"
	filterDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	filterService "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/service"
	ledgerDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/ledger/domain"
	ledgerRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/ledger/repository"
	videoDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/video/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/telemetry"
)

// VideoCatalog lists channel uploads and their live-stream status
type VideoCatalog interface {
	UploadsPlaylistID(ctx context.Context, channelID string) (string, error)
	PlaylistVideos(ctx context.Context, playlistID string, keep func(videoDomain.Video) bool) ([]videoDomain.Video, error)
	IsLiveStreamed(ctx context.Context, videoID string) (bool, error)
}

// ChannelResolver picks the channels of a run
type ChannelResolver interface {
	Resolve(explicit string) ([]string, error)
}

// FilterLoader provides the decoded filter configuration
type FilterLoader interface {
	Load() (*filterDomain.FilterConfig, error)
}

// Options are the per-run inputs from the command line
type Options struct {
	Channel string
	// Start and End (YYYY-MM-DD) select range mode; both empty is recent mode.
	Start string
	End   string
}

// Summary describes a finished run
type Summary struct {
	Channels        int
	ChannelsFailed  int
	VideosSkipped   int
	VideosProcessed int
	MessagesKept    int
}

// Runner executes fetch runs
type Runner struct {
	channels ChannelResolver
	catalog  VideoCatalog
	chat     source.Source
	filters  FilterLoader
	records  chatRepo.Repository
	ledger   ledgerRepo.Repository

	lookback time.Duration
	location *time.Location
	now      func() time.Time
}

// New creates a fetch runner
func New(
	channels ChannelResolver,
	catalog VideoCatalog,
	chat source.Source,
	filters FilterLoader,
	records chatRepo.Repository,
	ledger ledgerRepo.Repository,
	lookback time.Duration,
) *Runner {
	telemetry.Init()
	return &Runner{
		channels: channels,
		catalog:  catalog,
		chat:     chat,
		filters:  filters,
		records:  records,
		ledger:   ledger,
		lookback: lookback,
		location: time.Local,
		now:      time.Now,
	}
}

// Run processes every channel once. Failures of a single channel or video are
// logged and counted; only configuration problems and failed writes of the
// chat record or the ledger are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	logger := telemetry.Logger(ctx)

	cfg, err := r.filters.Load()
	if err != nil {
		return nil, err
	}

	window, err := r.selectWindow(opts)
	if err != nil {
		return nil, err
	}

	channels, err := r.channels.Resolve(opts.Channel)
	if err != nil {
		return nil, err
	}

	prior, err := r.ledger.Load()
	if err != nil {
		return nil, err
	}

	run := &fetchRun{
		Runner:    r,
		cfg:       cfg,
		window:    window,
		prior:     prior,
		processed: ledgerDomain.New(),
		kept:      []chatDomain.ChatMessage{},
		summary:   &Summary{Channels: len(channels)},
		logger:    logger,
	}

	for _, channelID := range channels {
		telemetry.ChannelsScanned.Inc()
		if err := run.channel(ctx, channelID); err != nil {
			run.summary.ChannelsFailed++
			telemetry.ChannelsFailed.Inc()
			telemetry.FetchErrors.Inc()
			logger.Error("Channel processing failed", "channel_id", channelID, "error", err, "status", "fail")
		}
	}

	if err := r.records.Save(run.kept); err != nil {
		return nil, oops.With("context", "failed to save filtered chat").Wrap(err)
	}
	// the ledger is replaced by this run's videos, see ledgerDomain.Ledger
	if err := r.ledger.Save(run.processed); err != nil {
		return nil, oops.With("context", "failed to save ledger").Wrap(err)
	}

	run.summary.MessagesKept = len(run.kept)
	logger.Info("Fetch finished",
		"channels", run.summary.Channels,
		"channels_failed", run.summary.ChannelsFailed,
		"videos_processed", run.summary.VideosProcessed,
		"videos_skipped", run.summary.VideosSkipped,
		"messages_kept", run.summary.MessagesKept,
		"status", lo.Ternary(run.summary.ChannelsFailed > 0, "warn", "ok"),
	)
	return run.summary, nil
}

func (r *Runner) selectWindow(opts Options) (Window, error) {
	if opts.Start == "" && opts.End == "" {
		return RecentWindow(r.now(), r.lookback), nil
	}
	return DateWindow(opts.Start, opts.End, r.location)
}

// fetchRun is the mutable state of one Run call
type fetchRun struct {
	*Runner
	cfg       *filterDomain.FilterConfig
	window    Window
	prior     *ledgerDomain.Ledger
	processed *ledgerDomain.Ledger
	kept      []chatDomain.ChatMessage
	summary   *Summary
	logger    *slog.Logger
}

func (f *fetchRun) channel(ctx context.Context, channelID string) error {
	logger := f.logger.With("channel_id", channelID)
	logger.Info("Scanning channel")

	playlistID, err := f.catalog.UploadsPlaylistID(ctx, channelID)
	if err != nil {
		return err
	}

	videos, err := f.catalog.PlaylistVideos(ctx, playlistID, func(v videoDomain.Video) bool {
		return f.window.Contains(v.Published)
	})
	if err != nil {
		return err
	}

	for _, video := range videos {
		f.video(ctx, logger.With("video_id", video.ID), video)
	}
	return nil
}

func (f *fetchRun) video(ctx context.Context, logger *slog.Logger, video videoDomain.Video) {
	if f.prior.Has(video.ID) {
		f.summary.VideosSkipped++
		telemetry.VideosSkipped.Inc()
		logger.Info("Already processed, skipping", "status", "ok")
		return
	}

	live, err := f.catalog.IsLiveStreamed(ctx, video.ID)
	if err != nil {
		telemetry.FetchErrors.Inc()
		logger.Warn("Failed to check live status", "error", err, "status", "warn")
		return
	}
	if !live {
		logger.Debug("Not a finished live stream")
		return
	}

	// attempted downloads count as processed even when they fail
	f.processed.Add(video.ID)
	f.summary.VideosProcessed++
	telemetry.VideosProcessed.Inc()

	messages, err := f.chat.Messages(ctx, video.ID)
	if err != nil {
		telemetry.FetchErrors.Inc()
		logger.Error("Chat download failed", "error", err, "status", "fail")
		return
	}

	kept := filterService.Filter(messages, f.cfg)
	telemetry.MessagesScanned.Add(float64(len(messages)))
	telemetry.MessagesKept.Add(float64(len(kept)))

	for _, msg := range kept {
		f.kept = append(f.kept, msg.WithVideo(video.ID, video.Title, video.PublishedAt))
	}
	logger.Info("Chat filtered", "scanned", len(messages), "kept", len(kept), "status", "ok")
}
