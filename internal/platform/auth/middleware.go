package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/devconnector-api/internal/platform/logging"
)

type identityKey struct{}

// SchemeName is the OpenAPI security scheme protected operations reference.
const SchemeName = "bearerAuth"

const (
	msgNoToken       = "No token, authorization denied"
	msgInvalidHeader = "missing or invalid authorization header"
	msgInvalidToken  = "invalid or expired token"
)

// NewAuthMiddleware returns Huma middleware that authenticates operations
// declaring a security requirement and stores the Identity in the context.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err == nil {
			var id *Identity
			id, err = verifier.Verify(ctx.Context(), token)
			if err == nil {
				next(huma.WithValue(ctx, identityKey{}, id))
				return
			}
		}

		logging.LogWarn(ctx.Context(), "authentication failed", zap.String("reason", reason(err)))
		if errors.Is(err, ErrCertificateFetch) {
			ctx.SetHeader("Retry-After", "30")
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "authentication service temporarily unavailable")
			return
		}
		ctx.SetHeader("WWW-Authenticate", "Bearer")
		_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, unauthorizedDetail(err))
	}
}

// unauthorizedDetail tells a missing token apart from a malformed header and
// from a token that failed verification.
func unauthorizedDetail(err error) string {
	switch {
	case errors.Is(err, ErrNoToken):
		return msgNoToken
	case errors.Is(err, ErrInvalidHeader):
		return msgInvalidHeader
	default:
		return msgInvalidToken
	}
}

// reason is a log-safe category for err.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrNoToken):
		return "no_token"
	case errors.Is(err, ErrInvalidHeader):
		return "invalid_header"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	default:
		return "invalid_token"
	}
}

// IdentityFromContext returns the authenticated caller, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// WithIdentity attaches id to ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}
