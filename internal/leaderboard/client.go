package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a leaderboard service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
// A nil httpClient gets a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Submit sends s and returns the stored entry. Validation is run locally first.
func (c *Client) Submit(ctx context.Context, s Submission) (Entry, error) {
	if err := Validate(s); err != nil {
		return Entry{}, err
	}
	body, err := json.Marshal(s)
	if err != nil {
		return Entry{}, fmt.Errorf("leaderboard: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return Entry{}, fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		var e Entry
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
			return Entry{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
		return e, nil
	case http.StatusBadRequest:
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidSubmission, readError(resp.Body))
	case http.StatusTooManyRequests:
		return Entry{}, ErrRateLimited
	default:
		return Entry{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
}

// Top returns up to TopLimit entries, best first, optionally for one mode.
func (c *Client) Top(ctx context.Context, mode string) ([]Entry, error) {
	u := c.baseURL + "/api/scores"
	if mode != "" {
		u += "?" + url.Values{"mode": {mode}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	var out struct {
		Scores []Entry `json:"scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return out.Scores, nil
}

func readError(r io.Reader) string {
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(r, MaxBodyBytes)).Decode(&body); err != nil || body.Error == "" {
		return "rejected"
	}
	return body.Error
}
