// Package routes registers every versioned API operation.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	githubhandler "github.com/janisto/devconnector-api/internal/http/v1/github"
	"github.com/janisto/devconnector-api/internal/http/v1/profile"
	"github.com/janisto/devconnector-api/internal/platform/auth"
	githubsvc "github.com/janisto/devconnector-api/internal/service/github"
	profilesvc "github.com/janisto/devconnector-api/internal/service/profile"
)

// Register installs the auth middleware and all operations on api.
func Register(
	api huma.API,
	verifier auth.Verifier,
	profileService profilesvc.Service,
	githubService githubsvc.Service,
) {
	oapi := api.OpenAPI()
	if oapi.Components.SecuritySchemes == nil {
		oapi.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	oapi.Components.SecuritySchemes[auth.SchemeName] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
		Description:  "Firebase ID token",
	}

	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	profile.Register(api, profileService)
	githubhandler.Register(api, githubService)
}
