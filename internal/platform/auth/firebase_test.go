package auth

import (
	"errors"
	"testing"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer tok", want: "tok"},
		{name: "extra whitespace", header: "  Bearer   tok  ", want: "tok"},
		{name: "empty", header: "", wantErr: ErrNoToken},
		{name: "no token", header: "Bearer", wantErr: ErrInvalidHeader},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidHeader},
		{name: "too many parts", header: "Bearer a b", wantErr: ErrInvalidHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentityFromClaims(t *testing.T) {
	id := identityFromClaims("uid-1", map[string]any{
		"email":          "dev@example.com",
		"email_verified": true,
		"name":           "Dev",
		"picture":        "https://example.com/p.png",
	})
	want := Identity{UID: "uid-1", Email: "dev@example.com", EmailVerified: true, Name: "Dev", Picture: "https://example.com/p.png"}
	if *id != want {
		t.Fatalf("got %+v, want %+v", *id, want)
	}

	bare := identityFromClaims("uid-2", map[string]any{"name": 42})
	if bare.UID != "uid-2" || bare.Name != "" || bare.Email != "" {
		t.Fatalf("expected only UID for missing or mistyped claims, got %+v", bare)
	}
}

func TestReason(t *testing.T) {
	tests := map[error]string{
		ErrNoToken:                   "no_token",
		ErrInvalidHeader:             "invalid_header",
		ErrTokenExpired:              "token_expired",
		ErrTokenRevoked:              "token_revoked",
		ErrUserDisabled:              "user_disabled",
		ErrCertificateFetch:          "certificate_fetch_failed",
		ErrInvalidToken:              "invalid_token",
		errors.New("something else"): "invalid_token",
	}
	for err, want := range tests {
		if got := reason(err); got != want {
			t.Errorf("reason(%v) = %q, want %q", err, got, want)
		}
	}
}
