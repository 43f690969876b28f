// Package github fetches a developer's public repositories from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("github user not found")
	ErrForbidden   = errors.New("github access forbidden")
	ErrRateLimited = errors.New("github rate limit exceeded")
	ErrUpstream    = errors.New("github upstream error")
)

// UpstreamError carries the GitHub response metadata the HTTP layer needs.
type UpstreamError struct {
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github status %d: %v", e.Status, e.cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.cause
}

// Repo is a public repository shown on a developer profile.
type Repo struct {
	Name        string
	FullName    string
	Description string
	HTMLURL     string
	Language    string
	Stars       int
	Watchers    int
	Forks       int
	CreatedAt   time.Time
}

// MaxRepos is how many repositories ListRepos returns.
const MaxRepos = 5

// Service lists a GitHub user's repositories, newest first.
type Service interface {
	ListRepos(ctx context.Context, username string) ([]Repo, error)
}
