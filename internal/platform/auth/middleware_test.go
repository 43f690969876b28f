package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

type whoamiOutput struct {
	Body struct {
		UID  string `json:"uid"`
		Name string `json:"name"`
	}
}

func newTestRouter(verifier Verifier, secured bool) *chi.Mux {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(NewAuthMiddleware(api, verifier))

	var security []map[string][]string
	if secured {
		security = []map[string][]string{{SchemeName: {}}}
	}
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Security:    security,
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		if id := IdentityFromContext(ctx); id != nil {
			out.Body.UID = id.UID
			out.Body.Name = id.Name
		}
		return out, nil
	})
	return router
}

func TestMiddlewareSkipsUnsecuredOperations(t *testing.T) {
	verifier := &MockVerifier{Error: ErrInvalidToken}
	router := newTestRouter(verifier, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(verifier.Tokens) != 0 {
		t.Fatal("verifier should not be called for unsecured operations")
	}
}

func TestMiddlewareStoresIdentity(t *testing.T) {
	verifier := &MockVerifier{Identity: TestIdentity()}
	router := newTestRouter(verifier, true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		UID  string `json:"uid"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.UID != "test-user-123" || body.Name != "Test User" {
		t.Fatalf("unexpected identity: %+v", body)
	}
	if len(verifier.Tokens) != 1 || verifier.Tokens[0] != "good-token" {
		t.Fatalf("unexpected tokens passed to verifier: %v", verifier.Tokens)
	}
}

func TestMiddlewareFailures(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifyErr  error
		wantStatus int
		wantHeader [2]string
		wantDetail string
	}{
		{"missing header", "", nil, http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}, msgNoToken},
		{"bad scheme", "Basic abc", nil, http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}, msgInvalidHeader},
		{"rejected token", "Bearer t", ErrInvalidToken, http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}, msgInvalidToken},
		{"expired", "Bearer t", ErrTokenExpired, http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}, msgInvalidToken},
		{"revoked", "Bearer t", ErrTokenRevoked, http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}, msgInvalidToken},
		{"certificates unavailable", "Bearer t", ErrCertificateFetch, http.StatusServiceUnavailable, [2]string{"Retry-After", "30"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &MockVerifier{Identity: TestIdentity(), Error: tt.verifyErr}
			router := newTestRouter(verifier, true)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get(tt.wantHeader[0]); got != tt.wantHeader[1] {
				t.Fatalf("expected %s %q, got %q", tt.wantHeader[0], tt.wantHeader[1], got)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("expected problem+json, got %q", ct)
			}
			if tt.wantDetail == "" {
				return
			}
			var problem huma.ErrorModel
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("decode problem: %v", err)
			}
			if problem.Detail != tt.wantDetail {
				t.Fatalf("expected detail %q, got %q", tt.wantDetail, problem.Detail)
			}
		})
	}
}

func TestIdentityContextRoundTrip(t *testing.T) {
	if IdentityFromContext(context.Background()) != nil {
		t.Fatal("expected nil identity on empty context")
	}
	ctx := WithIdentity(context.Background(), TestIdentity())
	if got := IdentityFromContext(ctx); got == nil || got.UID != "test-user-123" {
		t.Fatalf("unexpected identity %+v", got)
	}
}
