package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/do/v2"
	"github.com/samber/oops"

	channelRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/channel/repository"
	channelService "github.com/do-dorio/youtube-chat-feed/internal/modules/channel/service"
	chatRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/repository"
	"github.com/do-dorio/youtube-chat-feed/internal/modules/chat/source"
	feedDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/domain"
	feedRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/repository"
	feedService "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/service"
	fetchService "github.com/do-dorio/youtube-chat-feed/internal/modules/fetch/service"
	filterRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/repository"
	filterService "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/service"
	ledgerRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/ledger/repository"
	renderService "github.com/do-dorio/youtube-chat-feed/internal/modules/render/service"
	videoService "github.com/do-dorio/youtube-chat-feed/internal/modules/video/service"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/config"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/telemetry"
	httpServer "github.com/do-dorio/youtube-chat-feed/internal/transport/http"
)

// Setup initializes the dependency injection container. Providers are lazy:
// the YouTube client is only built when a fetch run asks for it.
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Filter Repository
	do.Provide(injector, func(i do.Injector) (filterRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return filterRepo.NewFileStorage(cfg.FiltersFile), nil
	})

	do.Provide(injector, func(i do.Injector) (*filterService.Store, error) {
		store := filterService.NewStore(do.MustInvoke[filterRepo.Repository](i))
		store.SetLogger(slog.Default())
		return store, nil
	})

	do.Provide(injector, func(i do.Injector) (*filterService.Manager, error) {
		return filterService.NewManager(do.MustInvoke[filterRepo.Repository](i)), nil
	})

	// Register Channel Repository
	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return channelRepo.NewFileStorage(cfg.ChannelsFile), nil
	})

	do.Provide(injector, func(i do.Injector) (*channelService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return channelService.New(do.MustInvoke[channelRepo.Repository](i), cfg.ChannelID), nil
	})

	// Register Chat Repository (intermediate record between fetch and render)
	do.Provide(injector, func(i do.Injector) (chatRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return chatRepo.NewFileStorage(cfg.ChatFile), nil
	})

	do.Provide(injector, func(i do.Injector) (source.Source, error) {
		cfg := do.MustInvoke[*config.Config](i)
		downloader := source.NewDownloader(cfg.ChatDownloader)
		downloader.SetLogger(slog.Default())
		return downloader, nil
	})

	// Register Ledger Repository
	do.Provide(injector, func(i do.Injector) (ledgerRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := ledgerRepo.NewFileStorage(cfg.ProcessedFile)
		repo.SetLogger(slog.Default())
		return repo, nil
	})

	// Register Video Service
	do.Provide(injector, func(i do.Injector) (*videoService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if err := cfg.ValidateFetch(); err != nil {
			return nil, err
		}
		svc, err := videoService.New(context.Background(), cfg.APIKey)
		if err != nil {
			return nil, oops.With("context", "failed to initialize video service").Wrap(err)
		}
		return svc, nil
	})

	// Register Feed services
	do.Provide(injector, func(i do.Injector) (*feedService.Builder, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return feedService.NewBuilder(cfg.LinkRewindSeconds), nil
	})

	do.Provide(injector, func(i do.Injector) (*feedService.Renderer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return feedService.NewRenderer(feedDomain.ChannelMeta{
			Title:       cfg.FeedTitle,
			Link:        cfg.FeedLink,
			Description: cfg.FeedDescription,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (feedRepo.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return feedRepo.NewFileStorage(cfg.OutputFile, cfg.StagingPath()), nil
	})

	// Register Fetch Runner
	do.Provide(injector, func(i do.Injector) (*fetchService.Runner, error) {
		cfg := do.MustInvoke[*config.Config](i)
		videos, err := do.Invoke[*videoService.Service](i)
		if err != nil {
			return nil, err
		}
		return fetchService.New(
			do.MustInvoke[*channelService.Service](i),
			videos,
			do.MustInvoke[source.Source](i),
			do.MustInvoke[*filterService.Store](i),
			do.MustInvoke[chatRepo.Repository](i),
			do.MustInvoke[ledgerRepo.Repository](i),
			time.Duration(cfg.LookbackHours)*time.Hour,
		), nil
	})

	// Register Render Runner
	do.Provide(injector, func(i do.Injector) (*renderService.Runner, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return renderService.New(
			do.MustInvoke[chatRepo.Repository](i),
			do.MustInvoke[*filterService.Store](i),
			do.MustInvoke[*feedService.Builder](i),
			do.MustInvoke[*feedService.Renderer](i),
			do.MustInvoke[feedRepo.Publisher](i),
			cfg.LongMessageThreshold,
		), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		server := httpServer.New(cfg)
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown flushes run metrics to the configured textfile
func Shutdown(injector do.Injector) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil || cfg == nil {
		return nil
	}

	if err := telemetry.WriteTextfile(cfg.MetricsFile); err != nil {
		return oops.With("context", "failed to write metrics").Wrap(err)
	}
	return nil
}
