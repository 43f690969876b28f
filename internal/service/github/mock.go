package github

import (
	"context"
	"time"
)

// MockGitHubService serves canned repositories for unit tests.
type MockGitHubService struct {
	Repos map[string][]Repo
	Err   error
}

// NewMockGitHubService returns a mock knowing the "octocat" user.
func NewMockGitHubService() *MockGitHubService {
	created := time.Date(2011, 1, 26, 19, 1, 12, 0, time.UTC)
	return &MockGitHubService{
		Repos: map[string][]Repo{
			"octocat": {
				{
					Name:        "Hello-World",
					FullName:    "octocat/Hello-World",
					Description: "My first repository on GitHub!",
					HTMLURL:     "https://github.com/octocat/Hello-World",
					Stars:       2500,
					Watchers:    2500,
					Forks:       2200,
					CreatedAt:   created,
				},
			},
		},
	}
}

func (m *MockGitHubService) ListRepos(_ context.Context, username string) ([]Repo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	repos, ok := m.Repos[username]
	if !ok {
		return nil, &UpstreamError{Status: 404, cause: ErrNotFound}
	}
	if len(repos) > MaxRepos {
		repos = repos[:MaxRepos]
	}
	return repos, nil
}

var _ Service = (*MockGitHubService)(nil)
