package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// Identity is the caller established from a verified ID token.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

var (
	ErrNoToken       = errors.New("missing authorization header")
	ErrInvalidHeader = errors.New("malformed authorization header")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrUserDisabled  = errors.New("user disabled")

	// ErrCertificateFetch means Google's public keys could not be fetched; callers answer 503.
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates bearer tokens.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// FirebaseVerifier verifies Firebase ID tokens and checks revocation.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

var verifyFailures = []struct {
	match func(error) bool
	err   error
}{
	{fbauth.IsCertificateFetchFailed, ErrCertificateFetch},
	{fbauth.IsIDTokenExpired, ErrTokenExpired},
	{fbauth.IsIDTokenRevoked, ErrTokenRevoked},
	{fbauth.IsUserDisabled, ErrUserDisabled},
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		for _, f := range verifyFailures {
			if f.match(err) {
				return nil, f.err
			}
		}
		return nil, ErrInvalidToken
	}
	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]any) *Identity {
	id := &Identity{UID: uid}
	id.Email, _ = claims["email"].(string)
	id.EmailVerified, _ = claims["email_verified"].(bool)
	id.Name, _ = claims["name"].(string)
	id.Picture, _ = claims["picture"].(string)
	return id
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>" header value.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidHeader
	}
	return parts[1], nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
