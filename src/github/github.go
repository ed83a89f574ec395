// Package github fetches repository metadata and commit history from the
// GitHub REST API. Records are passed through as opaque JSON; no retry or
// backoff is attempted here.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// DefaultCommitLimit bounds a commit-history fetch when the caller does not
// ask for a specific count.
const DefaultCommitLimit = 5

const defaultBaseURL = "https://api.github.com"

// APIError reports a non-200 answer from the GitHub API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("github: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to the GitHub REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient builds a client against api.github.com. It reads GITHUB_TOKEN
// from the env for authenticated requests.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Token:      os.Getenv("GITHUB_TOKEN"),
	}
}

// RepoInfo fetches the repository record for owner/repo.
func (c *Client) RepoInfo(ctx context.Context, owner, repo string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.BaseURL, owner, repo)
	return c.get(ctx, url, nil)
}

// CommitHistory fetches up to limit commit records for owner/repo, most
// recent first. A non-positive limit falls back to DefaultCommitLimit.
func (c *Client) CommitHistory(ctx context.Context, owner, repo string, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = DefaultCommitLimit
	}
	url := fmt.Sprintf("%s/repos/%s/%s/commits", c.BaseURL, owner, repo)
	return c.get(ctx, url, map[string]string{"per_page": strconv.Itoa(limit)})
}

func (c *Client) get(ctx context.Context, url string, params map[string]string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}
	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &payload)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	return json.RawMessage(body), nil
}
