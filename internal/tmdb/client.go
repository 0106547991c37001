package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result represents a single TMDB search match.
type Result struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

// Response models the TMDB paginated search response. Only the first page is
// ever requested.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// ReleaseDate is one dated release inside a country's certification history.
type ReleaseDate struct {
	Certification string `json:"certification"`
	ISO639_1      string `json:"iso_639_1"`
	Note          string `json:"note"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
}

// CountryRelease groups the release history for one ISO 3166-1 region.
type CountryRelease struct {
	ISO3166_1    string        `json:"iso_3166_1"`
	ReleaseDates []ReleaseDate `json:"release_dates"`
}

// ReleaseDatesResponse models GET /movie/{id}/release_dates.
type ReleaseDatesResponse struct {
	ID      int64            `json:"id"`
	Results []CountryRelease `json:"results"`
}

// StatusError reports a non-2xx TMDB response.
type StatusError struct {
	Op         string
	StatusCode int
	Latency    time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned %d (latency=%v)", e.Op, e.StatusCode, e.Latency)
}

// Searcher defines the TMDB operations used by enrichment.
type Searcher interface {
	SearchMovie(ctx context.Context, query string) (*Response, error)
	MovieReleaseDates(ctx context.Context, movieID int64) (*ReleaseDatesResponse, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey      string
	bearerToken string
	baseURL     string
	language    string
	httpClient  *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBearerToken sends the TMDB read access token as an Authorization header.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearerToken = strings.TrimSpace(token)
	}
}

// WithTimeout overrides the default per-request timeout. A client supplied
// through WithHTTPClient is copied first and left unmodified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			copied := *c.httpClient
			copied.Timeout = timeout
			c.httpClient = &copied
		}
	}
}

// New creates a TMDB client. An empty apiKey is accepted: requests are still
// issued and fail remotely, which callers observe as a *StatusError.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie performs a TMDB movie search and returns the first page of
// results in service rank order.
func (c *Client) SearchMovie(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	if c.language != "" {
		params.Set("language", c.language)
	}

	var payload Response
	if err := c.getJSON(ctx, "search", "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MovieReleaseDates fetches the per-region release and certification history
// for a movie.
func (c *Client) MovieReleaseDates(ctx context.Context, movieID int64) (*ReleaseDatesResponse, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload ReleaseDatesResponse
	if err := c.getJSON(ctx, "release dates", fmt.Sprintf("/movie/%d/release_dates", movieID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, dest any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute tmdb %s request (latency=%v): %w", op, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Latency: latency}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode tmdb %s response: %w", op, err)
	}
	return nil
}
