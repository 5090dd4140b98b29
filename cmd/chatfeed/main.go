package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
	"github.com/urfave/cli/v2"

	"github.com/do-dorio/youtube-chat-feed/internal/di"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/config"
)

var logLevel = new(slog.LevelVar)

func main() {
	slog.SetDefault(newLogger(os.Stdout, os.Stderr, false))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &cli.App{
		Name:  "chatfeed",
		Usage: "turn filtered YouTube live chat into an RSS feed",
		Commands: []*cli.Command{
			fetchCommand(),
			renderCommand(),
			ngCommand(),
			serveCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("Command failed", "error", err, "status", "fail")
		cancel()
		os.Exit(1)
	}
}

// newLogger fans out to a text handler at the configured level and a JSON
// handler for errors. Development logs carry source positions.
func newLogger(out, errOut io.Writer, development bool) *slog.Logger {
	textHandler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: development,
	})
	jsonHandler := slog.NewJSONHandler(errOut, &slog.HandlerOptions{
		Level:     slog.LevelError,
		AddSource: development,
	})

	// Use Fanout to send logs to both handlers
	return slog.New(slogmulti.Fanout(textHandler, jsonHandler))
}

// configureLogging applies the loaded config to the default logger.
func configureLogging(cfg *config.Config) {
	level := cfg.LogLevel
	if cfg.IsDevelopment() && level == "info" {
		level = "debug"
	}
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level, using info", "log_level", cfg.LogLevel, "status", "warn")
	}
	slog.SetDefault(newLogger(os.Stdout, os.Stderr, cfg.IsDevelopment()))
}

// withInjector builds the container for one command and tears it down after.
func withInjector(action func(c *cli.Context, injector do.Injector) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		injector, err := di.Setup()
		if err != nil {
			return err
		}
		defer func() {
			if err := di.Shutdown(injector); err != nil {
				slog.Error("Error during shutdown", "error", err)
			}
		}()

		cfg, err := do.Invoke[*config.Config](injector)
		if err != nil {
			return err
		}
		configureLogging(cfg)

		return action(c, injector)
	}
}
