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

// seriesMaxDuration excludes programmes too long to be TV episodes.
const seriesMaxDuration = 90 * time.Minute

// Series attaches poster art to TV shows. It never edits descriptions
// or categories; those belong to the movie and episode enrichers.
type Series struct {
	res    *resolver
	art    *artwork
	logger zerolog.Logger
}

// NewSeries creates the series enricher. A nil client disables it.
func NewSeries(client catalog.Client, lookup *cache.Lookup, fetcher *fetch.Fetcher, outputDir string) *Series {
	logger := log.WithComponent("series")
	s := &Series{
		art:    &artwork{outputDir: outputDir, fetcher: fetcher},
		logger: logger,
	}
	if client == nil {
		logger.Warn().Msg("no catalog credentials, series enrichment disabled")
		return s
	}
	s.res = &resolver{lookup: lookup, client: client, logger: logger}
	return s
}

func (s *Series) Name() string  { return "series" }
func (s *Series) Enabled() bool { return s.res != nil }

func (s *Series) Apply(ctx context.Context, p *xmltv.Programme) error {
	if s.res == nil {
		return nil
	}
	title := p.Title()
	if title == "" {
		return nil
	}
	d, err := p.Duration()
	if err != nil {
		return nil
	}
	if d > seriesMaxDuration {
		s.logger.Debug().Str("title", title).Msg("skipping, runtime over 90 minutes")
		return nil
	}

	state, attrs, err := s.res.resolve(ctx, cache.KindSeries, catalog.TV, title)
	if err != nil {
		if errors.Is(err, errSkipRecord) {
			return nil
		}
		return err
	}
	if state != cache.Found {
		s.logger.Debug().Str("title", title).Stringer("state", state).Msg("no series enrichment")
		return nil
	}
	if attrs.PosterURL == "" {
		s.logger.Debug().Str("title", title).Msg("series has no poster")
		return nil
	}

	s.art.ensurePoster(p, sectionSeries, title, attrs.PosterURL, s.logger)
	return nil
}
