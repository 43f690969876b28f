// Package testutil holds helpers for tests that talk to the Firebase
// emulators or a local MongoDB server. Tests skip when those are down.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

const (
	AuthEmulatorHost      = "127.0.0.1:7110"
	FirestoreEmulatorHost = "127.0.0.1:7130"
	ProjectID             = "demo-devconnector"
	fakeAPIKey            = "fake-api-key" //nolint:gosec // emulator only
)

func reachable(host string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// SkipIfFirestoreUnavailable skips t unless the Firestore emulator is listening.
func SkipIfFirestoreUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(FirestoreEmulatorHost) {
		t.Skip("Firestore emulator not available")
	}
}

// SkipIfAuthUnavailable skips t unless the Auth emulator is listening.
func SkipIfAuthUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(AuthEmulatorHost) {
		t.Skip("Auth emulator not available")
	}
}

// SetupEmulator points the Firebase SDKs at the local emulators for t.
func SetupEmulator(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", AuthEmulatorHost)
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost)
}

func emulatorDelete(t *testing.T, url string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to reset emulator: %v", err)
	}
	_ = resp.Body.Close()
}

// ClearFirestore removes every document from the Firestore emulator.
func ClearFirestore(t *testing.T) {
	t.Helper()
	emulatorDelete(t, fmt.Sprintf("http://%s/emulator/v1/projects/%s/databases/(default)/documents",
		FirestoreEmulatorHost, ProjectID))
}

// ClearAccounts removes every user from the Auth emulator.
func ClearAccounts(t *testing.T) {
	t.Helper()
	emulatorDelete(t, fmt.Sprintf("http://%s/emulator/v1/projects/%s/accounts", AuthEmulatorHost, ProjectID))
}

// SignUpResponse is the Auth emulator's sign-up reply.
type SignUpResponse struct {
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

// CreateTestUser signs up a user with a display name in the Auth emulator.
func CreateTestUser(t *testing.T, email, password, displayName string) *SignUpResponse {
	t.Helper()
	url := fmt.Sprintf("http://%s/identitytoolkit.googleapis.com/v1/accounts:signUp?key=%s",
		AuthEmulatorHost, fakeAPIKey)
	body, _ := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"displayName":       displayName,
		"returnSecureToken": true,
	})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out SignUpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode sign-up response: %v", err)
	}
	return &out
}
