package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	fetchService "github.com/do-dorio/youtube-chat-feed/internal/modules/fetch/service"
	filterDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	filterService "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/service"
	renderService "github.com/do-dorio/youtube-chat-feed/internal/modules/render/service"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/telemetry"
	httpServer "github.com/do-dorio/youtube-chat-feed/internal/transport/http"
)

const hiddenMask = "*****"

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "download and filter the chat of recently finished live streams",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "channel", Usage: "only this channel id"},
			&cli.StringFlag{Name: "start", Usage: "first publish date, YYYY-MM-DD (local)"},
			&cli.StringFlag{Name: "end", Usage: "last publish date, YYYY-MM-DD (local)"},
		},
		Action: withInjector(func(c *cli.Context, injector do.Injector) error {
			runner, err := do.Invoke[*fetchService.Runner](injector)
			if err != nil {
				return err
			}

			ctx, runID := telemetry.WithRunID(c.Context)
			telemetry.Logger(ctx).Info("Fetch started", "channel", c.String("channel"), "start", c.String("start"), "end", c.String("end"))

			_, err = runner.Run(ctx, fetchService.Options{
				Channel: c.String("channel"),
				Start:   c.String("start"),
				End:     c.String("end"),
			})
			if err != nil {
				return oops.With("run_id", runID).Wrap(err)
			}
			return nil
		}),
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render the filtered chat into the feed and publish it",
		Action: withInjector(func(c *cli.Context, injector do.Injector) error {
			runner, err := do.Invoke[*renderService.Runner](injector)
			if err != nil {
				return err
			}

			ctx, runID := telemetry.WithRunID(c.Context)
			if _, err := runner.Run(ctx); err != nil {
				return oops.With("run_id", runID).Wrap(err)
			}
			return nil
		}),
	}
}

func ngCommand() *cli.Command {
	return &cli.Command{
		Name:  "ng",
		Usage: "manage ng words",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "register an ng word read from stdin",
				ArgsUsage: "<hidden|monitor>",
				Action: withInjector(func(c *cli.Context, injector do.Injector) error {
					return editNGWord(c, injector, (*filterService.Manager).Add, "Registered")
				}),
			},
			{
				Name:      "remove",
				Usage:     "remove an ng word read from stdin",
				ArgsUsage: "<hidden|monitor>",
				Action: withInjector(func(c *cli.Context, injector do.Injector) error {
					return editNGWord(c, injector, (*filterService.Manager).Remove, "Removed")
				}),
			},
			{
				Name:  "list",
				Usage: "list ng words, hidden ones masked",
				Action: withInjector(func(c *cli.Context, injector do.Injector) error {
					manager, err := do.Invoke[*filterService.Manager](injector)
					if err != nil {
						return err
					}
					listing, err := manager.List()
					if err != nil {
						return err
					}
					printListing(c.App.Writer, listing)
					return nil
				}),
			},
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the rendered feed locally",
		Action: withInjector(func(c *cli.Context, injector do.Injector) error {
			server, err := do.Invoke[*httpServer.Server](injector)
			if err != nil {
				return err
			}
			return server.Start(c.Context)
		}),
	}
}

type ngEdit func(*filterService.Manager, filterDomain.NGMode, string) error

func editNGWord(c *cli.Context, injector do.Injector, edit ngEdit, done string) error {
	mode, err := filterDomain.ParseNGMode(c.Args().First())
	if err != nil {
		return oops.With("mode", c.Args().First()).Wrap(err)
	}

	manager, err := do.Invoke[*filterService.Manager](injector)
	if err != nil {
		return err
	}

	word, err := readWord(c.App.Writer, mode)
	if err != nil {
		return err
	}
	if err := edit(manager, mode, word); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s %s ng word\n", done, mode)
	return nil
}

// readWord takes the word from stdin so it stays out of shell history.
// Hidden words are not echoed when stdin is a terminal.
func readWord(prompt io.Writer, mode filterDomain.NGMode) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "ng word: ")
		if mode == filterDomain.NGModeHidden {
			raw, err := term.ReadPassword(fd)
			fmt.Fprintln(prompt)
			if err != nil {
				return "", oops.With("context", "failed to read ng word").Wrap(err)
			}
			return string(raw), nil
		}
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", oops.With("context", "failed to read ng word").Wrap(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printListing(w io.Writer, listing *filterService.Listing) {
	fmt.Fprintf(w, "hidden (%d):\n", listing.HiddenCount)
	for range listing.HiddenCount {
		fmt.Fprintf(w, "  %s\n", hiddenMask)
	}
	fmt.Fprintf(w, "monitor (%d):\n", len(listing.Monitor))
	for _, word := range listing.Monitor {
		fmt.Fprintf(w, "  %s\n", word)
	}
}
