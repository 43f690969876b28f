package auth

import "context"

// MockVerifier returns a fixed identity or error.
type MockVerifier struct {
	Identity *Identity
	Error    error
	Tokens   []string
}

func (m *MockVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	m.Tokens = append(m.Tokens, token)
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Identity, nil
}

// TestIdentity is the caller used across handler tests.
func TestIdentity() *Identity {
	return &Identity{
		UID:           "test-user-123",
		Email:         "test@example.com",
		EmailVerified: true,
		Name:          "Test User",
		Picture:       "https://example.com/avatar.png",
	}
}

var _ Verifier = (*MockVerifier)(nil)
