// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// lightbox is a terminal photo browser. It searches a Flickr-style
// photo service as you type and loads further pages as you scroll to
// the bottom of the results.
//
// With no search text it browses the service's unfiltered listing.
// Typing at least three characters and pausing searches; every query
// change starts a fresh feed, and results for an abandoned query are
// discarded even if they arrive late.
//
// Background logging is routed into the status line, since stderr
// would corrupt the alt-screen. --log-output additionally writes JSON
// records to a file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/lightbox-labs/lightbox/lib/codec"
	"github.com/lightbox-labs/lightbox/lib/config"
	"github.com/lightbox-labs/lightbox/lib/feed"
	"github.com/lightbox-labs/lightbox/lib/photoapi"
	"github.com/lightbox-labs/lightbox/lib/photoui"
	"github.com/lightbox-labs/lightbox/lib/process"
	"github.com/lightbox-labs/lightbox/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var configPath string
	var apiURL string
	var format string
	var logOutput string
	var showVersion bool

	flagSet := pflag.NewFlagSet("lightbox", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to lightbox.yaml (default: $"+config.EnvironmentVariable+", then built-in defaults)")
	flagSet.StringVar(&apiURL, "api", "", "photo service base URL (overrides api.base_url)")
	flagSet.StringVar(&format, "format", "", "response encoding, json or cbor (overrides api.format)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status line)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		version.Print("lightbox")
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" || format != "" || logOutput != "" {
		override(&cfg.API.BaseURL, apiURL)
		override(&cfg.API.Format, format)
		override(&cfg.Log.Output, logOutput)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("lightbox needs a terminal: stdout is not a TTY")
	}

	tuiHandler := photoui.NewTUILogHandler(max(cfg.LogLevel(), slog.LevelWarn))
	var logger *slog.Logger
	if cfg.Log.Output != "" {
		fileHandler, closeFile, err := openFileLogHandler(cfg.Log.Output, cfg.LogLevel())
		if err != nil {
			return fmt.Errorf("cannot open log file %s: %w", cfg.Log.Output, err)
		}
		defer closeFile()
		logger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	} else {
		logger = slog.New(tuiHandler)
	}

	responseFormat, err := codec.ParseFormat(cfg.API.Format)
	if err != nil {
		return err
	}
	client, err := photoapi.NewClient(photoapi.Config{
		BaseURL:           cfg.API.BaseURL,
		SearchPath:        cfg.API.SearchPath,
		ListPath:          cfg.API.ListPath,
		PerPage:           cfg.API.PerPage,
		Format:            responseFormat,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Logger:            logger.With("component", "photoapi"),
	})
	if err != nil {
		return err
	}

	session := feed.NewSession(feed.SessionConfig{
		Gateway:      client,
		FetchTimeout: cfg.Feed.FetchTimeout.Std(),
		Logger:       logger.With("component", "feed"),
	})
	normalizer := feed.NewQueryNormalizer(feed.QueryNormalizerConfig{
		MinLength: cfg.Feed.MinQueryLength,
		Quiet:     cfg.Feed.QuietPeriod.Std(),
		Emit:      session.QueryChanged,
	})
	defer normalizer.Stop()
	sampler := feed.NewScrollSampler(feed.ScrollSamplerConfig{
		Interval: cfg.Feed.ScrollInterval.Std(),
		Fraction: cfg.Feed.NearBottomFraction,
		Emit:     session.LoadMore,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessionDone := make(chan error, 1)
	go func() {
		sessionDone <- session.Run(ctx)
	}()

	// Browse the listing until the first search.
	session.QueryChanged("")

	model := photoui.NewModel(photoui.Config{
		Feed:         session,
		Query:        normalizer,
		Scroll:       sampler,
		ImageBaseURL: cfg.API.ImageBaseURL,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	tuiHandler.SetProgram(nil)

	cancel()
	if sessionErr := <-sessionDone; sessionErr != nil && err == nil {
		err = sessionErr
	}
	return err
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `lightbox: search and browse photos in the terminal.

Type to search (at least three characters, then pause). Scroll to the
bottom of the results to load the next page. With an empty search the
service's recent photos are listed.

Usage:
  lightbox [flags]

Examples:
  # Browse the mock service started with lightbox-mock
  lightbox

  # Use a config file and log to a file
  lightbox --config ~/.config/lightbox.yaml --log-output /tmp/lightbox.jsonl

Keys:
  /          search        esc   back to results
  j/k ↑/↓    move          enter photo details
  C-d/C-u    page          r     retry a failed load
  q, C-c     quit

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
