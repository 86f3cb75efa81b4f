// SPDX-License-Identifier: BSD-3-Clause

// Package config builds the process configuration from environment
// variables. The resulting struct is constructed once at startup and
// passed by reference; nothing reads the environment after Load.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// AppConfig carries every runtime setting of the enhancer.
type AppConfig struct {
	// Redis cache store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Catalog service.
	TMDBAPIKey  string
	TMDBBaseURL string
	Language    string

	// RequireTMDB aborts startup when no API key is configured instead
	// of silently disabling the enrichment processors.
	RequireTMDB bool

	// OutputDir receives the rewritten guide and the Artwork tree.
	OutputDir string

	// Workers bounds concurrent poster downloads.
	Workers int

	// CacheTTL applies to every lookup cache entry state.
	CacheTTL time.Duration

	// EpisodeNumbersEnabled turns on extraction of season/episode
	// designators from description text.
	EpisodeNumbersEnabled bool
}

// Load reads the configuration from XMLTV_* environment variables,
// applying defaults that match the behaviour of earlier releases.
func Load() AppConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return AppConfig{
		RedisAddr:     ParseString("XMLTV_REDIS_ADDR", "localhost:6379"),
		RedisPassword: ParseString("XMLTV_REDIS_PASS", ""),
		RedisDB:       ParseInt("XMLTV_REDIS_DB", 0),

		TMDBAPIKey:  ParseString("XMLTV_TMDB_API_KEY", ""),
		TMDBBaseURL: ParseString("XMLTV_TMDB_BASE_URL", ""),
		Language:    ParseString("XMLTV_LANGUAGE", "en"),
		RequireTMDB: ParseBool("XMLTV_REQUIRE_TMDB", false),

		OutputDir: ParseString("XMLTV_OUTPUT_DIR", filepath.Join(home, "output")),
		Workers:   ParseInt("XMLTV_WORKERS", 2*runtime.NumCPU()),
		CacheTTL:  ParseDuration("XMLTV_CACHE_TTL", 90*24*time.Hour),

		EpisodeNumbersEnabled: ParseBool("XMLTV_EPISODE_NUMBERS", false),
	}
}

// Validate checks settings that must abort the run before any
// processing happens.
func (c *AppConfig) Validate() error {
	if c.RequireTMDB && c.TMDBAPIKey == "" {
		return errors.New("XMLTV_REQUIRE_TMDB is set but XMLTV_TMDB_API_KEY is missing")
	}
	if c.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}
