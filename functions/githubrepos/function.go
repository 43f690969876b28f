// Package githubrepos exposes the GitHub repository lookup as an HTTP Cloud
// Function, for deployments that serve it apart from the profile API. Upstream
// failures map to the same statuses as the API's GitHub route: 404, 403, 429
// with Retry-After, and 502 for everything else.
package githubrepos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

const (
	maxRepos       = 5
	defaultBaseURL = "https://api.github.com"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?$`)
	httpClient      = &http.Client{Timeout: 10 * time.Second}

	errNotFound    = errors.New("github user not found")
	errForbidden   = errors.New("github access denied")
	errRateLimited = errors.New("github rate limit exceeded")
)

// upstreamError wraps a rate-limit cause with any Retry-After hint.
type upstreamError struct {
	cause      error
	retryAfter string
}

func (e *upstreamError) Error() string { return e.cause.Error() }
func (e *upstreamError) Unwrap() error { return e.cause }

func init() {
	functions.HTTP("GitHubRepos", reposHandler)
}

// Repo is the public shape of a repository.
type Repo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Forks       int       `json:"forks_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func reposHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if !usernamePattern.MatchString(username) {
		writeProblem(w, http.StatusBadRequest, "username query parameter is missing or invalid")
		return
	}

	repos, err := listRepos(r.Context(), baseURL(), username)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(repos)
}

func baseURL() string {
	if v := os.Getenv("GITHUB_BASE_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultBaseURL
}

func listRepos(ctx context.Context, base, username string) ([]Repo, error) {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(maxRepos))
	q.Set("sort", "created")
	q.Set("direction", "desc")
	endpoint := base + "/users/" + url.PathEscape(username) + "/repos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classify(resp)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decoding repos: %w", err)
	}
	if len(repos) > maxRepos {
		repos = repos[:maxRepos]
	}
	return repos, nil
}

// classify maps a non-200 GitHub response to a sentinel error.
func classify(resp *http.Response) error {
	retryAfter := strings.TrimSpace(resp.Header.Get("Retry-After"))
	remaining := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && (remaining == "0" || retryAfter != ""):
		return &upstreamError{cause: errRateLimited, retryAfter: retryAfter}
	case resp.StatusCode == http.StatusForbidden:
		return errForbidden
	default:
		return fmt.Errorf("github status %d", resp.StatusCode)
	}
}

func writeUpstreamError(w http.ResponseWriter, err error) {
	var upstream *upstreamError
	switch {
	case errors.Is(err, errNotFound):
		writeProblem(w, http.StatusNotFound, "No Github profile found")
	case errors.Is(err, errForbidden):
		writeProblem(w, http.StatusForbidden, "access denied")
	case errors.Is(err, errRateLimited):
		if errors.As(err, &upstream) && upstream.retryAfter != "" {
			w.Header().Set("Retry-After", upstream.retryAfter)
		}
		writeProblem(w, http.StatusTooManyRequests, "rate limit exceeded")
	default:
		writeProblem(w, http.StatusBadGateway, "upstream error")
	}
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
