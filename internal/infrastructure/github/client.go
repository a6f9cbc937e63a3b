// Package github reads public repository metadata from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio/internal/domain/repo"
)

const (
	DefaultAPIBase = "https://api.github.com"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

var (
	ErrNotFound    = errors.New("github repository not found")
	ErrRateLimited = errors.New("github rate limit exceeded")
)

type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github %s: status %d", e.URL, e.StatusCode)
}

type Client struct {
	http    *http.Client
	apiBase string
	token   string
}

func NewClient(apiBase, token string) *Client {
	apiBase = strings.TrimSpace(apiBase)
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		apiBase: strings.TrimRight(apiBase, "/"),
		token:   strings.TrimSpace(token),
	}
}

func (c *Client) HasToken() bool {
	return c != nil && c.token != ""
}

type repoPayload struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	HTMLURL         string   `json:"html_url"`
	Description     *string  `json:"description"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Topics          []string `json:"topics"`
	Language        *string  `json:"language"`
	Owner           *struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
}

// GetRepository fetches the repository behind a github.com html URL.
func (c *Client) GetRepository(ctx context.Context, htmlURL string) (repo.Repository, error) {
	if c == nil {
		return repo.Repository{}, fmt.Errorf("nil github client")
	}
	apiURL, err := repo.APIURL(htmlURL, c.apiBase)
	if err != nil {
		return repo.Repository{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return repo.Repository{}, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "portfolio-site")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return repo.Repository{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return repo.Repository{}, fmt.Errorf("%s: %w", apiURL, ErrNotFound)
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0",
		resp.StatusCode == http.StatusTooManyRequests:
		return repo.Repository{}, fmt.Errorf("%s: %w", apiURL, ErrRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return repo.Repository{}, &StatusError{StatusCode: resp.StatusCode, URL: apiURL}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return repo.Repository{}, err
	}
	var p repoPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return repo.Repository{}, fmt.Errorf("decode %s: %w", apiURL, err)
	}

	out := repo.Repository{
		ID:              p.ID,
		Name:            p.Name,
		HTMLURL:         p.HTMLURL,
		Description:     p.Description,
		StargazersCount: p.StargazersCount,
		ForksCount:      p.ForksCount,
		Topics:          p.Topics,
		Language:        p.Language,
		DataSource:      repo.DataSourceAPI,
	}
	if p.Owner != nil {
		out.Owner = &repo.Owner{Login: p.Owner.Login, AvatarURL: p.Owner.AvatarURL}
	}
	return out, nil
}
