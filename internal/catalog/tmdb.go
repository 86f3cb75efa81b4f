// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultTMDBBaseURL is the production TMDB v3 API endpoint.
const DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

// posterSize is the TMDB image size segment used for all posters.
const posterSize = "w342"

// TMDBClient implements Client against the TMDB v3 API.
type TMDBClient struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client

	imageMu      sync.Mutex
	imageBaseURL string
}

var _ Client = (*TMDBClient)(nil)

// TMDBOption configures a TMDBClient.
type TMDBOption func(*TMDBClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) TMDBOption {
	return func(c *TMDBClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewTMDB creates a TMDB catalog client.
func NewTMDB(apiKey, baseURL, language string, opts ...TMDBOption) (*TMDBClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultTMDBBaseURL
	}
	client := &TMDBClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type searchResponse struct {
	Results []struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		Name       string `json:"name"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

type detailsResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	Runtime  int    `json:"runtime"`
	Overview string `json:"overview"`
	Genres   []struct {
		Name string `json:"name"`
	} `json:"genres"`
	PosterPath string `json:"poster_path"`
	EpisodeRunTime []int `json:"episode_run_time"`
}

type episodeResponse struct {
	Name        string  `json:"name"`
	VoteAverage float64 `json:"vote_average"`
}

type configurationResponse struct {
	Images struct {
		BaseURL string `json:"base_url"`
	} `json:"images"`
}

// Search queries TMDB for the supplied title. Question marks are
// stripped from the query before searching, as the upstream search
// endpoint treats them poorly.
func (c *TMDBClient) Search(ctx context.Context, kind MediaKind, title string) ([]Candidate, error) {
	query := strings.TrimSpace(strings.ReplaceAll(title, "?", ""))
	if query == "" {
		return nil, errors.New("search query must not be empty")
	}

	endpoint := fmt.Sprintf("/search/%s", kind)
	params := url.Values{}
	params.Set("query", query)

	var payload searchResponse
	if err := c.get(ctx, endpoint, params, &payload); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		name := r.Title
		if name == "" {
			name = r.Name
		}
		candidates = append(candidates, Candidate{
			ID:         r.ID,
			Title:      name,
			PosterPath: r.PosterPath,
		})
	}
	return candidates, nil
}

// Details fetches full attributes for one subject by ID.
func (c *TMDBClient) Details(ctx context.Context, kind MediaKind, id int64) (*Attributes, error) {
	if id <= 0 {
		return nil, errors.New("catalog id must be positive")
	}

	endpoint := fmt.Sprintf("/%s/%d", kind, id)
	var payload detailsResponse
	if err := c.get(ctx, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	title := payload.Title
	if title == "" {
		title = payload.Name
	}
	runtime := payload.Runtime
	if runtime == 0 && len(payload.EpisodeRunTime) > 0 {
		runtime = payload.EpisodeRunTime[0]
	}
	genres := make([]string, 0, len(payload.Genres))
	for _, g := range payload.Genres {
		if g.Name != "" {
			genres = append(genres, g.Name)
		}
	}

	return &Attributes{
		Title:          title,
		RuntimeMinutes: runtime,
		Overview:       payload.Overview,
		Genres:         genres,
		PosterPath:     payload.PosterPath,
	}, nil
}

// EpisodeDetails fetches the name and rating of one episode plus the
// genre list of its series.
func (c *TMDBClient) EpisodeDetails(ctx context.Context, seriesID int64, season, episode int) (*EpisodeAttributes, error) {
	if seriesID <= 0 {
		return nil, errors.New("series id must be positive")
	}
	if season <= 0 || episode <= 0 {
		return nil, fmt.Errorf("season and episode must be positive, got S%d E%d", season, episode)
	}

	endpoint := fmt.Sprintf("/tv/%d/season/%d/episode/%d", seriesID, season, episode)
	var payload episodeResponse
	if err := c.get(ctx, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	// Genres live on the series, not the episode.
	series, err := c.Details(ctx, TV, seriesID)
	if err != nil {
		return nil, err
	}

	return &EpisodeAttributes{
		Name:   payload.Name,
		Rating: payload.VoteAverage,
		Genres: series.Genres,
	}, nil
}

// ImageBaseURL fetches the poster base URL from the configuration
// endpoint once and reuses it for the process lifetime. The returned
// URL already carries the poster size segment.
func (c *TMDBClient) ImageBaseURL(ctx context.Context) (string, error) {
	c.imageMu.Lock()
	defer c.imageMu.Unlock()
	if c.imageBaseURL != "" {
		return c.imageBaseURL, nil
	}

	var payload configurationResponse
	if err := c.get(ctx, "/configuration", nil, &payload); err != nil {
		return "", err
	}
	if payload.Images.BaseURL == "" {
		return "", &APIError{Endpoint: "/configuration", Err: errors.New("configuration carries no image base url")}
	}
	c.imageBaseURL = payload.Images.BaseURL + posterSize
	return c.imageBaseURL, nil
}

func (c *TMDBClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return fmt.Errorf("parse catalog url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
