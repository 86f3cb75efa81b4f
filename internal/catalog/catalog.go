// SPDX-License-Identifier: BSD-3-Clause

// Package catalog talks to the external metadata service that supplies
// titles, overviews, runtimes, genres and poster art.
package catalog

import (
	"context"
	"fmt"
)

// MediaKind selects the catalog namespace for searches and detail fetches.
type MediaKind string

const (
	Movie MediaKind = "movie"
	TV    MediaKind = "tv"
)

// Candidate is one search result.
type Candidate struct {
	ID         int64
	Title      string
	PosterPath string // relative; prefix with the image base URL
}

// Attributes are the full details for one catalog subject.
type Attributes struct {
	Title          string
	RuntimeMinutes int
	Overview       string
	Genres         []string
	PosterPath     string
}

// EpisodeAttributes are the details for one episode of a series.
type EpisodeAttributes struct {
	Name   string
	Rating float64 // vote average on a 0-10 scale; 0 means unrated
	Genres []string
}

// Client is the catalog operations surface the enhancers consume.
type Client interface {
	// Search returns candidates for a title query.
	Search(ctx context.Context, kind MediaKind, title string) ([]Candidate, error)
	// Details fetches full attributes for a search candidate.
	Details(ctx context.Context, kind MediaKind, id int64) (*Attributes, error)
	// EpisodeDetails fetches per-episode attributes for a series.
	EpisodeDetails(ctx context.Context, seriesID int64, season, episode int) (*EpisodeAttributes, error)
	// ImageBaseURL returns the base URL for relative poster paths.
	ImageBaseURL(ctx context.Context) (string, error)
}

// APIError is the collaborator-defined failure kind for catalog calls.
// Processors recover from it as "no enrichment for this record" and
// never cache it as a negative result; any other error propagates as a
// per-record failure. StatusCode 0 marks a transport-level failure.
type APIError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("catalog request %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("catalog request %s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }
