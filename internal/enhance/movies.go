// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/cache"
	"github.com/LePresidente/xmltv-tools/internal/catalog"
	"github.com/LePresidente/xmltv-tools/internal/fetch"
	"github.com/LePresidente/xmltv-tools/internal/log"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

// Feature films are guessed by duration when no explicit category is
// present: longer than 90 minutes, at most 4 hours.
const (
	movieMinDuration = 90 * time.Minute
	movieMaxDuration = 240 * time.Minute
)

// Movies augments feature films with catalog metadata: overview,
// runtime, genres and poster art.
type Movies struct {
	res    *resolver
	art    *artwork
	logger zerolog.Logger
}

// NewMovies creates the movie enricher. A nil client disables it.
func NewMovies(client catalog.Client, lookup *cache.Lookup, fetcher *fetch.Fetcher, outputDir string) *Movies {
	logger := log.WithComponent("movies")
	m := &Movies{
		art:    &artwork{outputDir: outputDir, fetcher: fetcher},
		logger: logger,
	}
	if client == nil {
		logger.Warn().Msg("no catalog credentials, movie enrichment disabled")
		return m
	}
	m.res = &resolver{lookup: lookup, client: client, logger: logger}
	return m
}

func (m *Movies) Name() string  { return "movies" }
func (m *Movies) Enabled() bool { return m.res != nil }

func (m *Movies) Apply(ctx context.Context, p *xmltv.Programme) error {
	if m.res == nil {
		return nil
	}
	title := p.Title()
	if title == "" {
		return nil
	}

	if !m.isLikelyMovie(p) {
		return nil
	}
	m.logger.Debug().Str("title", title).Str("channel", p.Channel).Msg("possible movie")

	state, attrs, err := m.res.resolve(ctx, cache.KindMovie, catalog.Movie, title)
	if err != nil {
		if errors.Is(err, errSkipRecord) {
			return nil
		}
		return err
	}
	if state != cache.Found {
		m.logger.Debug().Str("title", title).Stringer("state", state).Msg("no movie enrichment")
		return nil
	}

	m.logger.Info().Str("title", title).Msg("adding catalog info for movie")

	m.art.ensurePoster(p, sectionMovies, title, attrs.PosterURL, m.logger)

	for _, genre := range attrs.Genres {
		if p.AddCategory(genre, "en") {
			m.logger.Debug().Str("category", genre).Str("title", title).Msg("adding category")
		}
	}
	p.AddCategory("movie", "en")

	if attrs.Overview != "" {
		p.SetDesc(attrs.Overview)
	}
	if attrs.RuntimeMinutes > 0 {
		p.SetLengthMinutes(attrs.RuntimeMinutes)
	}
	return nil
}

// isLikelyMovie applies the gate: an explicit "movie" category, or a
// duration in the feature-film window when no category says otherwise.
func (m *Movies) isLikelyMovie(p *xmltv.Programme) bool {
	if p.HasCategory("movie") {
		return true
	}
	d, err := p.Duration()
	if err != nil {
		return false
	}
	return d > movieMinDuration && d <= movieMaxDuration
}
