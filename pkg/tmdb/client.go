// Package tmdb is a thin client for The Movie Database v3 API.
// It issues authenticated GET requests for movie search and movie detail.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client issues requests against the TMDB API. It is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	language string
}

// New creates a Client from a finalized Config.
func New(cfg *Config) *Client {
	return &Client{
		http:     &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
	}
}

// SearchRaw performs a movie title search and returns the unparsed response.
// The caller must close the response body.
func (c *Client) SearchRaw(ctx context.Context, query string, page int) (*http.Response, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	params.Set("language", c.language)

	return c.get(ctx, "/search/movie", params)
}

// Search performs a movie title search and decodes the result page.
// Non-2xx responses are returned as *StatusError.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	resp, err := c.SearchRaw(ctx, query, page)
	if err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DetailRaw fetches a movie by id and returns the unparsed response.
// The caller must close the response body.
func (c *Client) DetailRaw(ctx context.Context, id int64) (*http.Response, error) {
	params := url.Values{}
	params.Set("language", c.language)

	return c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), params)
}

// Detail fetches a movie by id and decodes the provider document.
// Non-2xx responses are returned as *StatusError.
func (c *Client) Detail(ctx context.Context, id int64) (Detail, error) {
	resp, err := c.DetailRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	var result Detail
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: build request: %w", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: request %s: %w", path, err)
	}
	return resp, nil
}

func decode(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			StatusMessage string `json:"status_message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &body)
		return &StatusError{StatusCode: resp.StatusCode, Message: body.StatusMessage}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("tmdb: decode response: %w", err)
	}
	return nil
}
