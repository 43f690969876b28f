package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/devconnector-api/internal/platform/auth"
	"github.com/janisto/devconnector-api/internal/platform/logging"
	"github.com/janisto/devconnector-api/internal/platform/respond"
	profilesvc "github.com/janisto/devconnector-api/internal/service/profile"
)

const (
	msgNoProfile       = "There is no profile for this user"
	msgProfileNotFound = "Profile not found"
	msgValidation      = "Validation failed"
)

var bearer = []map[string][]string{{auth.SchemeName: {}}}

// Register registers the profile endpoints.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-my-profile",
		Method:      http.MethodGet,
		Path:        "/profile/me",
		Summary:     "Get current user's profile",
		Tags:        []string{"Profile"},
		Security:    bearer,
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError},
	}, func(ctx context.Context, _ *ProfileMeInput) (*ProfileOutput, error) {
		owner := ownerFromContext(ctx)
		p, err := svc.Get(ctx, owner.ID)
		if err != nil {
			return nil, mapServiceError(ctx, err, msgNoProfile)
		}
		return &ProfileOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "upsert-profile",
		Method:      http.MethodPost,
		Path:        "/profile",
		Summary:     "Create or update current user's profile",
		Description: "Creates the caller's profile, or updates only the fields present in the request. " +
			"status and skills are required; skills is a comma-separated list.",
		Tags:     []string{"Profile"},
		Security: bearer,
		Errors:   []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError},
	}, func(ctx context.Context, input *ProfileUpsertInput) (*ProfileOutput, error) {
		owner := ownerFromContext(ctx)
		return upsert(ctx, svc, owner, input.Body.fields())
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "List all profiles",
		Tags:        []string{"Profile"},
		Errors:      []int{http.StatusInternalServerError},
	}, func(ctx context.Context, _ *ProfileListInput) (*ProfileListOutput, error) {
		profiles, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(ctx, err, msgProfileNotFound)
		}
		out := make([]Profile, 0, len(profiles))
		for i := range profiles {
			out = append(out, toHTTPProfile(&profiles[i]))
		}
		return &ProfileListOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile-by-user",
		Method:      http.MethodGet,
		Path:        "/profile/user/{userId}",
		Summary:     "Get a profile by user ID",
		Tags:        []string{"Profile"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *ProfileByUserInput) (*ProfileOutput, error) {
		p, err := svc.Get(ctx, input.UserID)
		if err != nil {
			return nil, mapServiceError(ctx, err, msgProfileNotFound)
		}
		return &ProfileOutput{Body: toHTTPProfile(p)}, nil
	})
}

// upsert validates fields, normalizes them for owner, and stores the result.
func upsert(ctx context.Context, svc profilesvc.Service, owner profilesvc.User, fields map[string]string) (*ProfileOutput, error) {
	if details := checkRequired(fields); len(details) > 0 {
		return nil, huma.Error400BadRequest(msgValidation, details...)
	}
	p, err := svc.Upsert(ctx, profilesvc.Normalize(owner, fields))
	if err != nil {
		return nil, mapServiceError(ctx, err, msgProfileNotFound)
	}
	return &ProfileOutput{Body: toHTTPProfile(p)}, nil
}

// ownerFromContext reads the authenticated caller set by the auth middleware.
func ownerFromContext(ctx context.Context) profilesvc.User {
	id := auth.IdentityFromContext(ctx)
	if id == nil {
		return profilesvc.User{}
	}
	return profilesvc.User{ID: id.UID, Name: id.Name, Avatar: id.Picture}
}

// mapServiceError converts service errors to client responses. Not-found and
// malformed IDs share notFoundMsg; anything else is logged and hidden.
func mapServiceError(ctx context.Context, err error, notFoundMsg string) error {
	switch profilesvc.KindOf(err) {
	case profilesvc.KindNotFound, profilesvc.KindInvalidID:
		return huma.Error400BadRequest(notFoundMsg)
	default:
		logging.LogError(ctx, "profile store failure", err, zap.String("kind", profilesvc.KindOf(err).String()))
		return huma.Error500InternalServerError(respond.MsgInternal)
	}
}
