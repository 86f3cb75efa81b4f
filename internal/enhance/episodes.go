// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/catalog"
	"github.com/LePresidente/xmltv-tools/internal/fetch"
	"github.com/LePresidente/xmltv-tools/internal/log"
	"github.com/LePresidente/xmltv-tools/internal/normalize"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

// Episodes augments programmes that carry an xmltv_ns designator with
// per-episode detail: name, rating, genres and the series poster. It
// queries the catalog directly on every record rather than through the
// lookup cache; episode-level detail is keyed by (series, season,
// episode), not by title alone.
type Episodes struct {
	client catalog.Client
	art    *artwork
	logger zerolog.Logger
}

// NewEpisodes creates the episode enricher. A nil client disables it.
func NewEpisodes(client catalog.Client, fetcher *fetch.Fetcher, outputDir string) *Episodes {
	logger := log.WithComponent("episodes")
	if client == nil {
		logger.Warn().Msg("no catalog credentials, episode enrichment disabled")
	}
	return &Episodes{
		client: client,
		art:    &artwork{outputDir: outputDir, fetcher: fetcher},
		logger: logger,
	}
}

func (e *Episodes) Name() string  { return "episodes" }
func (e *Episodes) Enabled() bool { return e.client != nil }

func (e *Episodes) Apply(ctx context.Context, p *xmltv.Programme) error {
	if e.client == nil {
		return nil
	}
	title := p.Title()
	if title == "" {
		return nil
	}
	d, err := p.Duration()
	if err != nil || d > seriesMaxDuration {
		return nil
	}

	for _, designator := range p.EpisodeNumbers("xmltv_ns") {
		season, episode, err := xmltv.ParseXMLTVNS(designator.Value)
		if err != nil {
			return err
		}
		if err := e.enrichEpisode(ctx, p, title, season, episode); err != nil {
			return err
		}
	}
	return nil
}

func (e *Episodes) enrichEpisode(ctx context.Context, p *xmltv.Programme, title string, season, episode int) error {
	e.logger.Debug().Str("title", title).Int("season", season).Int("episode", episode).
		Msg("looking up episode")

	candidates, err := e.client.Search(ctx, catalog.TV, title)
	if err != nil {
		return e.remoteFailure(err, title, "search failed")
	}

	var match *catalog.Candidate
	for i, c := range candidates {
		if normalize.Title(c.Title) == normalize.Title(title) {
			match = &candidates[i]
			break
		}
	}
	if match == nil {
		e.logger.Debug().Str("title", title).Msg("no exact series match")
		return nil
	}

	details, err := e.client.EpisodeDetails(ctx, match.ID, season, episode)
	if err != nil {
		return e.remoteFailure(err, title, "episode details fetch failed")
	}

	if details.Name != "" {
		e.logger.Info().Str("title", title).Str("subtitle", details.Name).
			Msg("adding episode subtitle")
		p.SetSubTitle(details.Name)
	}

	if details.Rating > 0 {
		e.logger.Info().Str("title", title).Float64("rating", details.Rating).
			Msg("adding episode rating")
		p.SetStarRating(details.Rating)
	}

	for _, genre := range details.Genres {
		if p.AddCategory(genre, "") {
			e.logger.Debug().Str("category", genre).Str("title", title).Msg("adding category")
		}
	}

	if match.PosterPath != "" {
		base, err := e.client.ImageBaseURL(ctx)
		if err != nil {
			return e.remoteFailure(err, title, "image base url fetch failed")
		}
		e.art.ensurePoster(p, sectionSeries, title, base+match.PosterPath, e.logger)
	}
	return nil
}

// remoteFailure logs the collaborator-defined catalog error kind and
// absorbs it; any other error propagates as a per-record failure.
func (e *Episodes) remoteFailure(err error, title, msg string) error {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		e.logger.Warn().Err(apiErr).Str("title", title).Msg(msg)
		return nil
	}
	return err
}
