// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/cache"
	"github.com/LePresidente/xmltv-tools/internal/catalog"
	"github.com/LePresidente/xmltv-tools/internal/normalize"
)

// resolver implements the lookup protocol shared by the metadata
// enrichers: consult the cache first, query the catalog only on a
// miss, and memoize all three outcomes including negative ones.
type resolver struct {
	lookup *cache.Lookup
	client catalog.Client
	logger zerolog.Logger
}

// errSkipRecord tells the caller to treat the record as "nothing to
// add": a collaborator failed transiently, so no outcome was cached.
var errSkipRecord = errors.New("skip record")

// resolve determines the catalog outcome for a title.
//
// Collaborator failures (cache store down, catalog API erroring) are
// logged and reported as errSkipRecord; no negative result is cached
// for them, since the failure is not a content fact. Any other error
// propagates to become a per-record failure.
func (r *resolver) resolve(ctx context.Context, kind cache.Kind, media catalog.MediaKind, title string) (cache.State, *cache.Attributes, error) {
	key := normalize.Key(title)
	if key == "" {
		return cache.Miss, nil, errSkipRecord
	}

	state, attrs, err := r.lookup.Get(ctx, kind, key)
	if err != nil {
		r.logger.Warn().Err(err).Str("title", title).Msg("cache store unavailable")
		return cache.Miss, nil, errSkipRecord
	}
	if state != cache.Miss {
		r.logger.Debug().Str("title", title).Stringer("state", state).Msg("cache hit")
		return state, attrs, nil
	}

	r.logger.Debug().Str("title", title).Msg("cache miss, querying catalog")
	candidates, err := r.client.Search(ctx, media, title)
	if err != nil {
		return cache.Miss, nil, r.remoteFailure(err, title, "search failed")
	}

	// Exact-match-after-normalization tie-break; no fuzzy scoring.
	var matches []catalog.Candidate
	for _, c := range candidates {
		if normalize.Title(c.Title) == normalize.Title(title) {
			matches = append(matches, c)
		}
	}
	r.logger.Debug().Str("title", title).Int("matches", len(matches)).Msg("exact title matches")

	switch {
	case len(matches) == 0:
		r.putState(ctx, kind, key, title, cache.NotFound)
		return cache.NotFound, nil, nil
	case len(matches) > 1:
		// The enhancer never guesses among ambiguous matches.
		r.putState(ctx, kind, key, title, cache.Ambiguous)
		return cache.Ambiguous, nil, nil
	}

	details, err := r.client.Details(ctx, media, matches[0].ID)
	if err != nil {
		return cache.Miss, nil, r.remoteFailure(err, title, "details fetch failed")
	}

	found := cache.Attributes{
		Title:          details.Title,
		RuntimeMinutes: details.RuntimeMinutes,
		Overview:       details.Overview,
		Genres:         details.Genres,
	}
	if details.PosterPath != "" {
		base, err := r.client.ImageBaseURL(ctx)
		if err != nil {
			return cache.Miss, nil, r.remoteFailure(err, title, "image base url fetch failed")
		}
		found.PosterURL = base + details.PosterPath
	}

	if err := r.lookup.PutFound(ctx, kind, key, found); err != nil {
		// Memoization failed but the attributes are good; enrich anyway.
		r.logger.Warn().Err(err).Str("title", title).Msg("failed to cache found entry")
	}
	return cache.Found, &found, nil
}

// putState memoizes a negative or ambiguous outcome.
func (r *resolver) putState(ctx context.Context, kind cache.Kind, key, title string, state cache.State) {
	var err error
	switch state {
	case cache.NotFound:
		err = r.lookup.PutNotFound(ctx, kind, key)
	case cache.Ambiguous:
		err = r.lookup.PutAmbiguous(ctx, kind, key)
	}
	if err != nil {
		r.logger.Warn().Err(err).Str("title", title).
			Stringer("state", state).Msg("failed to cache outcome")
	}
}

// remoteFailure absorbs the collaborator-defined catalog error kind
// into errSkipRecord and lets anything else propagate untouched.
func (r *resolver) remoteFailure(err error, title, msg string) error {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		r.logger.Warn().Err(apiErr).Str("title", title).Msg(msg)
		return errSkipRecord
	}
	return err
}
