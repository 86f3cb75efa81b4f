// SPDX-License-Identifier: BSD-3-Clause

package enhance

import (
	"context"
	"fmt"
	"sync"

	"github.com/LePresidente/xmltv-tools/internal/catalog"
	"github.com/LePresidente/xmltv-tools/internal/xmltv"
)

// fakeCatalog is an in-process catalog.Client with canned answers and
// call counters, so tests can assert how often the remote is consulted.
type fakeCatalog struct {
	mu sync.Mutex

	searchResults map[string][]catalog.Candidate
	details       map[int64]*catalog.Attributes
	episodes      map[string]*catalog.EpisodeAttributes
	imageBase     string

	searchErr   error
	detailsErr  error
	episodesErr error

	searchCalls  int
	detailsCalls int
	episodeCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		searchResults: make(map[string][]catalog.Candidate),
		details:       make(map[int64]*catalog.Attributes),
		episodes:      make(map[string]*catalog.EpisodeAttributes),
		imageBase:     "http://img.invalid/w342",
	}
}

func searchKey(kind catalog.MediaKind, title string) string {
	return string(kind) + "|" + title
}

func (f *fakeCatalog) Search(_ context.Context, kind catalog.MediaKind, title string) ([]catalog.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[searchKey(kind, title)], nil
}

func (f *fakeCatalog) Details(_ context.Context, _ catalog.MediaKind, id int64) (*catalog.Attributes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailsCalls++
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	attrs, ok := f.details[id]
	if !ok {
		return nil, &catalog.APIError{Endpoint: "details", StatusCode: 404}
	}
	return attrs, nil
}

func (f *fakeCatalog) EpisodeDetails(_ context.Context, seriesID int64, season, episode int) (*catalog.EpisodeAttributes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.episodeCalls++
	if f.episodesErr != nil {
		return nil, f.episodesErr
	}
	ep, ok := f.episodes[fmt.Sprintf("%d/%d/%d", seriesID, season, episode)]
	if !ok {
		return nil, &catalog.APIError{Endpoint: "episode", StatusCode: 404}
	}
	return ep, nil
}

func (f *fakeCatalog) ImageBaseURL(_ context.Context) (string, error) {
	return f.imageBase, nil
}

func (f *fakeCatalog) calls() (search, details, episodes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, f.detailsCalls, f.episodeCalls
}

// newProgramme builds a minimal record for processor tests.
func newProgramme(title, start, stop, desc string) xmltv.Programme {
	p := xmltv.Programme{
		Start:   start,
		Stop:    stop,
		Channel: "test.channel",
		Titles:  []xmltv.Text{{Value: title}},
	}
	if desc != "" {
		p.Descs = []xmltv.Text{{Value: desc}}
	}
	return p
}
