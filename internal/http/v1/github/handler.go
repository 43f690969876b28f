package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/devconnector-api/internal/platform/logging"
	githubsvc "github.com/janisto/devconnector-api/internal/service/github"
)

// Register registers the GitHub repositories endpoint.
func Register(api huma.API, svc githubsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-github-repos",
		Method:      http.MethodGet,
		Path:        "/profile/github/{username}",
		Summary:     "List a developer's latest GitHub repositories",
		Description: "Returns up to five public repositories, most recently created first.",
		Tags:        []string{"Profile"},
		Errors: []int{
			http.StatusNotFound,
			http.StatusForbidden,
			http.StatusTooManyRequests,
			http.StatusBadGateway,
		},
	}, func(ctx context.Context, input *ReposListInput) (*ReposListOutput, error) {
		repos, err := svc.ListRepos(ctx, input.Username)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := make([]Repo, 0, len(repos))
		for _, r := range repos {
			out = append(out, Repo{
				Name:        r.Name,
				FullName:    r.FullName,
				Description: r.Description,
				HTMLURL:     r.HTMLURL,
				Language:    r.Language,
				Stars:       r.Stars,
				Watchers:    r.Watchers,
				Forks:       r.Forks,
			})
		}
		return &ReposListOutput{Body: out}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, githubsvc.ErrNotFound):
		return huma.Error404NotFound("No Github profile found")
	case errors.Is(err, githubsvc.ErrForbidden):
		return huma.Error403Forbidden("access denied")
	case errors.Is(err, githubsvc.ErrRateLimited):
		rateLimited := huma.Error429TooManyRequests("rate limit exceeded")
		var upstream *githubsvc.UpstreamError
		if errors.As(err, &upstream) && upstream.RetryAfter != "" {
			return huma.ErrorWithHeaders(rateLimited, http.Header{"Retry-After": {upstream.RetryAfter}})
		}
		return rateLimited
	default:
		logging.LogError(ctx, "github request failed", err)
		return huma.Error502BadGateway("upstream error")
	}
}
