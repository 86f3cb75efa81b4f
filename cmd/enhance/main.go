// SPDX-License-Identifier: BSD-3-Clause

// Command enhance rewrites an XMLTV guide file with catalog metadata,
// poster artwork and cleaned-up programme records.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/LePresidente/xmltv-tools/internal/cache"
	"github.com/LePresidente/xmltv-tools/internal/catalog"
	"github.com/LePresidente/xmltv-tools/internal/config"
	"github.com/LePresidente/xmltv-tools/internal/enhance"
	"github.com/LePresidente/xmltv-tools/internal/fetch"
	xtlog "github.com/LePresidente/xmltv-tools/internal/log"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

const outputFileName = "enhanced-xmltv.xml"

func main() {
	os.Exit(run())
}

func run() int {
	input := flag.String("input", "", "path to the XMLTV guide to enhance (\"-\" for stdin)")
	output := flag.String("output", "", "output directory (overrides XMLTV_OUTPUT_DIR)")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		return 0
	}

	// A .env alongside the binary is a convenience for manual runs; a
	// missing file is not an error.
	_ = godotenv.Load()

	xtlog.Configure(xtlog.Config{Level: *logLevel, Service: "enhance"})
	runID := uuid.NewString()
	logger := xtlog.Base().With().
		Str("component", "main").
		Str("run_id", runID).
		Logger()
	logger.Info().Str("version", version).Msg("starting guide enhancer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = xtlog.ContextWithRunID(ctx, runID)

	cfg := config.Load()
	if *output != "" {
		cfg.OutputDir = *output
	}
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}
	if *input == "" {
		logger.Error().Msg("missing required -input flag")
		flag.Usage()
		return 1
	}

	doc, err := readGuide(*input)
	if err != nil {
		logger.Error().Err(err).Str("input", *input).Msg("failed to read guide")
		return 1
	}
	logger.Info().Int("channels", len(doc.Channels)).
		Int("programmes", len(doc.Programmes)).Msg("guide loaded")

	store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error().Err(err).Str("addr", cfg.RedisAddr).Msg("cache store unavailable")
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing cache store")
		}
	}()
	lookup := cache.NewLookup(store, cfg.CacheTTL)

	var client catalog.Client
	if cfg.TMDBAPIKey != "" {
		tmdb, err := catalog.NewTMDB(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.Language)
		if err != nil {
			logger.Error().Err(err).Msg("failed to build catalog client")
			return 1
		}
		client = tmdb
	} else {
		logger.Warn().Msg("no TMDB API key configured, metadata enrichment disabled")
	}

	fetcher := fetch.New(cfg.Workers)
	pipeline := enhance.NewPipeline(
		enhance.DefaultProcessors(client, lookup, fetcher, cfg.OutputDir, cfg.EpisodeNumbersEnabled),
		fetcher,
	)

	runErr := pipeline.Run(ctx, doc)
	if ctx.Err() != nil {
		logger.Error().Err(ctx.Err()).Msg("run aborted")
		return 1
	}
	if runErr != nil {
		// Offending records were removed; the cleaned guide still gets
		// written so a partial result is never silently lost.
		logger.Error().Err(runErr).Msg("some programmes were rejected")
	}

	dest := filepath.Join(cfg.OutputDir, outputFileName)
	if err := writeGuide(dest, doc); err != nil {
		logger.Error().Err(err).Str("dest", dest).Msg("failed to write guide")
		return 1
	}
	logger.Info().Str("dest", dest).Int("programmes", len(doc.Programmes)).
		Msg("enhanced guide written")

	if runErr != nil {
		return 1
	}
	return 0
}

func readGuide(path string) (*xmltv.TV, error) {
	if path == "-" {
		return xmltv.Parse(os.Stdin)
	}
	return xmltv.ParseFile(path)
}

func writeGuide(dest string, doc *xmltv.TV) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := xmltv.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
