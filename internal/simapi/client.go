// Package simapi is the HTTP client for the remote cricket simulation
// service: streaming simulation endpoints plus plain request/response
// lookups for models, players, and leaderboards.
package simapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB, lookups only; streams are unbounded
)

var (
	// ErrBadRequest indicates the service rejected the request payload
	// (unknown players, roster of the wrong size, bad leaderboard type).
	ErrBadRequest = errors.New("simapi: bad request")
	// ErrUnavailable indicates the service is overloaded or down.
	ErrUnavailable = errors.New("simapi: service unavailable")
)

// Client talks to one simulation service instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
// Returns nil if the URL is empty after trimming.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// OpenSeriesStream starts a series simulation and returns the raw
// newline-delimited event stream. The caller owns the body and must close
// it; canceling ctx tears the transfer down.
func (c *Client) OpenSeriesStream(ctx context.Context, req SeriesRequest) (io.ReadCloser, error) {
	return c.openStream(ctx, "/simulate_series_stream", req)
}

// OpenMatchStream starts a single custom match simulation stream.
func (c *Client) OpenMatchStream(ctx context.Context, req MatchRequest) (io.ReadCloser, error) {
	return c.openStream(ctx, "/simulate_custom_match", req)
}

func (c *Client) openStream(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("simapi: encoding request: %w", err)
	}

	// No timeout here: a series stream stays open for the whole playback.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("simapi: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("simapi: request failed: %w", err)
	}

	if err := checkStatus(resp); err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// Models returns the service's prediction model catalog.
func (c *Client) Models(ctx context.Context) (*ModelList, error) {
	body, err := c.get(ctx, "/models", nil)
	if err != nil {
		return nil, err
	}

	var ml ModelList
	if err := json.Unmarshal(body, &ml); err != nil {
		return nil, fmt.Errorf("simapi: parsing models: %w", err)
	}
	return &ml, nil
}

// SearchPlayers returns players whose names match the query.
func (c *Client) SearchPlayers(ctx context.Context, query string) ([]Player, error) {
	body, err := c.get(ctx, "/players/search", url.Values{"q": {query}})
	if err != nil {
		return nil, err
	}

	var players []Player
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("simapi: parsing players: %w", err)
	}
	return players, nil
}

// Player returns the full statistics record for one player.
func (c *Client) Player(ctx context.Context, id int) (*PlayerProfile, error) {
	body, err := c.get(ctx, fmt.Sprintf("/players/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var profile PlayerProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("simapi: parsing player: %w", err)
	}
	return &profile, nil
}

// Leaderboard returns one page of the batting or bowling leaderboard.
func (c *Client) Leaderboard(ctx context.Context, kind string, q LeaderboardQuery) (*LeaderboardPage, error) {
	params := url.Values{}
	if q.SortBy != "" {
		params.Set("sort_by", q.SortBy)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.MinInnings > 0 {
		params.Set("min_innings", strconv.Itoa(q.MinInnings))
	}

	body, err := c.get(ctx, "/stats/leaderboard/"+url.PathEscape(kind), params)
	if err != nil {
		return nil, err
	}

	var page LeaderboardPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("simapi: parsing leaderboard: %w", err)
	}
	return &page, nil
}

// EligibleBowlers returns the subset of a roster allowed to bowl.
func (c *Client) EligibleBowlers(ctx context.Context, req BowlersRequest) ([]string, error) {
	body, err := c.post(ctx, "/eligible_bowlers", req)
	if err != nil {
		return nil, err
	}

	var resp eligibleBowlersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("simapi: parsing eligible bowlers: %w", err)
	}
	return resp.Bowlers, nil
}

// GenerateBowlingOrder asks the service for a 20-over bowling rotation.
func (c *Client) GenerateBowlingOrder(ctx context.Context, req BowlersRequest) ([]string, error) {
	body, err := c.post(ctx, "/generate_bowling_order", req)
	if err != nil {
		return nil, err
	}

	var resp bowlingOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("simapi: parsing bowling order: %w", err)
	}
	return resp.BowlingOrder, nil
}

// get performs a GET request with the standard lookup timeout.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("simapi: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// post performs a JSON POST request with the standard lookup timeout.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("simapi: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("simapi: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("simapi: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("simapi: reading response: %w", err)
	}
	return body, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, errorDetail(resp))
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusBadGateway:
		return ErrUnavailable
	}
	return fmt.Errorf("simapi: unexpected status %d", resp.StatusCode)
}

// errorDetail pulls a short message out of an error response body.
func errorDetail(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return resp.Status
	}

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
