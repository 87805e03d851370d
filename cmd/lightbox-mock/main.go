// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// lightbox-mock serves a Flickr-style photo API from a SQLite catalog
// so lightbox can be developed and tested offline.
//
// Routes:
//   - GET /photos/search?text=&page=&per_page=&format= searches titles
//   - GET /photos?page=&per_page=&format= lists the whole catalog
//   - GET /errors/{status} answers with that HTTP status, for
//     exercising client error handling
//
// The catalog comes from --seed (a JSONC file of photos) or, without
// one, a generated catalog of mock.seed_count photos. A --database file
// that already holds photos is served as is.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/lightbox-labs/lightbox/lib/config"
	"github.com/lightbox-labs/lightbox/lib/photoapi"
	"github.com/lightbox-labs/lightbox/lib/photomock"
	"github.com/lightbox-labs/lightbox/lib/process"
	"github.com/lightbox-labs/lightbox/lib/version"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var configPath string
	var listen string
	var seedPath string
	var database string
	var latency time.Duration
	var showVersion bool

	flagSet := pflag.NewFlagSet("lightbox-mock", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to lightbox.yaml (default: $"+config.EnvironmentVariable+", then built-in defaults)")
	flagSet.StringVar(&listen, "listen", "", "TCP address to serve on (overrides mock.listen)")
	flagSet.StringVar(&seedPath, "seed", "", "JSONC seed file (overrides mock.seed)")
	flagSet.StringVar(&database, "database", "", "SQLite catalog file (overrides mock.database; default in memory)")
	flagSet.DurationVar(&latency, "latency", 0, "delay every photo response (overrides mock.latency)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		version.Print("lightbox-mock")
		return nil
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Mock.Listen = listen
	}
	if seedPath != "" {
		cfg.Mock.Seed = seedPath
	}
	if database != "" {
		cfg.Mock.Database = database
	}
	if flagSet.Changed("latency") {
		cfg.Mock.Latency = config.Duration(latency)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := photomock.OpenStore(photomock.StoreConfig{
		Path:   cfg.Mock.Database,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := seedStore(ctx, store, cfg.Mock, logger); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Mock.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Mock.Listen, err)
	}

	server := &http.Server{
		Handler: photomock.NewHandler(photomock.HandlerConfig{
			Store:   store,
			Latency: cfg.Mock.Latency.Std(),
			Logger:  logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(listener)
	}()

	logger.Info("photo mock running",
		"address", listener.Addr().String(),
		"latency", cfg.Mock.Latency.Std(),
	)

	select {
	case <-ctx.Done():
	case err := <-serveDone:
		return fmt.Errorf("serving: %w", err)
	}
	logger.Info("shutting down")

	shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownContext); err != nil {
		logger.Error("shutdown incomplete", "error", err)
	}
	if err := <-serveDone; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// seedStore fills an empty catalog from the seed file, or with a
// generated catalog when no seed file is configured.
func seedStore(ctx context.Context, store *photomock.Store, mock config.MockConfig, logger *slog.Logger) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("serving existing catalog", "photos", count)
		return nil
	}

	var photos []photoapi.Photo
	source := "generated"
	if mock.Seed != "" {
		photos, err = photomock.ReadSeed(mock.Seed)
		if err != nil {
			return err
		}
		source = mock.Seed
	} else {
		photos = photomock.GenerateSeed(mock.SeedCount)
	}
	if err := store.Insert(ctx, photos); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	logger.Info("catalog seeded", "photos", len(photos), "source", source)
	return nil
}
