// Package catalog talks to the external movie catalogue (a
// TMDB-compatible API). It is the only place in the service that
// performs outbound network I/O; failures here are non-fatal to
// booking and scheduling, which never touch the catalogue directly.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Record is one movie as supplied by the catalogue. The refresh flow
// seeds the movies table from a list of these.
type Record struct {
	Title       string
	RuntimeMin  uint32
	Rating      float64
	Overview    string
	Poster      string
	Backdrop    string
	ExternalID  int64
	ReleaseDate time.Time
}

// Client fetches now-playing movies from the catalogue API. BaseURL
// and ImageBaseURL are configurable so tests can point the client at
// a local server.
type Client struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	HTTPClient   *http.Client
}

// NewClient builds a Client for the real catalogue endpoints with a
// bounded request timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:      "https://api.themoviedb.org/3",
		ImageBaseURL: "https://image.tmdb.org/t/p/original",
		APIKey:       apiKey,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

type listResponse struct {
	Results []struct {
		ID           int64  `json:"id"`
		PosterPath   string `json:"poster_path"`
		BackdropPath string `json:"backdrop_path"`
	} `json:"results"`
	StatusMessage string `json:"status_message"`
}

type detailResponse struct {
	ID            int64   `json:"id"`
	OriginalTitle string  `json:"original_title"`
	Runtime       uint32  `json:"runtime"`
	VoteAverage   float64 `json:"vote_average"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	StatusMessage string  `json:"status_message"`
}

// NowPlaying fetches the currently playing movies and their details.
// It returns an error on transport failures, non-2xx statuses or
// malformed payloads; callers are expected to abort the refresh and
// leave existing data untouched.
func (c *Client) NowPlaying(ctx context.Context) ([]Record, error) {
	var list listResponse
	if err := c.get(ctx, "/movie/now_playing", &list); err != nil {
		return nil, err
	}
	if list.Results == nil {
		if list.StatusMessage != "" {
			return nil, fmt.Errorf("catalog: API error: %s", list.StatusMessage)
		}
		return nil, fmt.Errorf("catalog: response carries no results")
	}

	records := make([]Record, 0, len(list.Results))
	for _, item := range list.Results {
		var detail detailResponse
		if err := c.get(ctx, fmt.Sprintf("/movie/%d", item.ID), &detail); err != nil {
			return nil, err
		}
		released, err := time.Parse("2006-01-02", detail.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("catalog: movie %d has malformed release date %q", item.ID, detail.ReleaseDate)
		}
		records = append(records, Record{
			Title:       detail.OriginalTitle,
			RuntimeMin:  detail.Runtime,
			Rating:      detail.VoteAverage,
			Overview:    detail.Overview,
			Poster:      c.ImageBaseURL + item.PosterPath,
			Backdrop:    c.ImageBaseURL + item.BackdropPath,
			ExternalID:  detail.ID,
			ReleaseDate: released,
		})
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog: request %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode %s response: %w", path, err)
	}
	return nil
}
