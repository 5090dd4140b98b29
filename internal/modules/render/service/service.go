package service

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"github.com/samber/oops"

	chatDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
	chatRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/repository"
	feedDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/domain"
	feedRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/repository"
	feedService "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/service"
	filterDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	filterService "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/service"
	apperrors "github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/telemetry"
)

// LabelSource provides the title label mapping
type LabelSource interface {
	Labels() (filterDomain.Labels, error)
}

// Summary describes a finished render run
type Summary struct {
	Items int
	// Skipped is set when there was nothing to render and no file was touched.
	Skipped bool
	// CopyFailed is set when only the staging copy could not be written.
	CopyFailed bool
}

// Runner turns the intermediate chat record into the published feed
type Runner struct {
	records   chatRepo.Repository
	labels    LabelSource
	builder   *feedService.Builder
	renderer  *feedService.Renderer
	publisher feedRepo.Publisher
	threshold int
}

// New creates a render runner
func New(
	records chatRepo.Repository,
	labels LabelSource,
	builder *feedService.Builder,
	renderer *feedService.Renderer,
	publisher feedRepo.Publisher,
	threshold int,
) *Runner {
	telemetry.Init()
	return &Runner{
		records:   records,
		labels:    labels,
		builder:   builder,
		renderer:  renderer,
		publisher: publisher,
		threshold: threshold,
	}
}

// Run renders and publishes the feed. With no messages it logs a warning and
// returns without rendering, leaving the previously published feed in place.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	logger := telemetry.Logger(ctx)

	messages, err := r.records.Load()
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		logger.Warn("No content produced, feed left unchanged", "status", "warn")
		return &Summary{Skipped: true}, nil
	}

	labels, err := r.labels.Labels()
	if err != nil {
		return nil, err
	}
	labeler := filterService.NewLabeler(labels, r.threshold)

	items := lo.Map(messages, func(msg chatDomain.ChatMessage, _ int) feedDomain.Item {
		return r.builder.Build(msg, labeler.Flags(msg.Text))
	})

	doc, err := r.renderer.Render(items)
	if err != nil {
		return nil, err
	}
	if err := feedService.Verify(doc, len(items)); err != nil {
		return nil, oops.With("items", len(items)).Wrap(err)
	}

	summary := &Summary{Items: len(items)}
	if err := r.publisher.Publish(doc); err != nil {
		if !errors.Is(err, apperrors.ErrPublishCopy) {
			return nil, err
		}
		summary.CopyFailed = true
		logger.Warn("Feed written but staging copy failed", "error", err, "status", "warn")
	}

	telemetry.FeedItemsWritten.Set(float64(len(items)))
	logger.Info("Feed published", "items", len(items), "status", "ok")
	return summary, nil
}
