package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/devconnector-api/internal/platform/logging"
)

const (
	DefaultBaseURL = "https://api.github.com"
	userAgent      = "devconnector-api"
	apiVersion     = "2022-11-28"
	acceptHeader   = "application/vnd.github+json"
)

// Client implements Service against the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for tests or GitHub Enterprise.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken authenticates requests, raising the rate limit.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{httpClient: httpClient, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type githubRepo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// ListRepos returns up to MaxRepos of username's repositories, most recently created first.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	query := url.Values{
		"per_page":  {strconv.Itoa(MaxRepos)},
		"sort":      {"created"},
		"direction": {"desc"},
	}
	u := c.baseURL + "/users/" + url.PathEscape(username) + "/repos?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching repos: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, classify(ctx, resp)
	}

	var raw []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding github response: %w", err)
	}
	if len(raw) > MaxRepos {
		raw = raw[:MaxRepos]
	}

	repos := make([]Repo, 0, len(raw))
	for _, r := range raw {
		created, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("decoding repo %q: %w", r.FullName, err)
		}
		repos = append(repos, Repo{
			Name:        r.Name,
			FullName:    r.FullName,
			Description: r.Description,
			HTMLURL:     r.HTMLURL,
			Language:    r.Language,
			Stars:       r.Stars,
			Watchers:    r.Watchers,
			Forks:       r.Forks,
			CreatedAt:   created,
		})
	}
	return repos, nil
}

// classify maps a non-200 GitHub response to an UpstreamError.
func classify(ctx context.Context, resp *http.Response) error {
	e := &UpstreamError{
		Status:     resp.StatusCode,
		RetryAfter: strings.TrimSpace(resp.Header.Get("Retry-After")),
	}
	remaining := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		e.cause = ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && (remaining == "0" || e.RetryAfter != ""):
		e.cause = ErrRateLimited
		logging.LogWarn(ctx, "github api rate limit exceeded",
			zap.Int("status", resp.StatusCode),
			zap.String("X-RateLimit-Reset", resp.Header.Get("X-RateLimit-Reset")),
			zap.String("Retry-After", e.RetryAfter),
		)
	case resp.StatusCode == http.StatusForbidden:
		e.cause = ErrForbidden
		logging.LogWarn(ctx, "github api access denied", zap.Int("status", resp.StatusCode))
	default:
		e.cause = ErrUpstream
	}
	return e
}

var _ Service = (*Client)(nil)
