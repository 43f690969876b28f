// Package profile stores developer profiles and normalizes profile input.
package profile

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrNotFound  = errors.New("profile not found")
	ErrInvalidID = errors.New("invalid user id")
)

// Kind classifies a service error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidID
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidID:
		return "invalid_id"
	default:
		return "internal_error"
	}
}

// KindOf reports the kind of err. Unrecognized errors are internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidID):
		return KindInvalidID
	default:
		return KindInternal
	}
}

// User is the owner of a profile. Only Name and Avatar are joined onto reads.
type User struct {
	ID     string
	Name   string
	Avatar string
}

// Profile is one user's public professional profile.
type Profile struct {
	ID             string
	User           User
	Status         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GitHubUsername string
	Skills         []string
	Social         map[string]string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Service defines profile operations.
//
// Upsert writes only the fields present in the Update and is atomic per
// user: concurrent first-time upserts leave exactly one profile.
type Service interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, u Update) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
}

// mergeOwner overlays the non-empty name and avatar from the caller's token on
// the stored owner record.
func mergeOwner(stored, caller User) User {
	out := stored
	out.ID = caller.ID
	if caller.Name != "" {
		out.Name = caller.Name
	}
	if caller.Avatar != "" {
		out.Avatar = caller.Avatar
	}
	return out
}

const maxUserIDLength = 1500

// validateUserID rejects IDs that cannot address a document in either store.
func validateUserID(id string) error {
	switch {
	case id == "", id == ".", id == "..":
		return ErrInvalidID
	case len(id) > maxUserIDLength, !utf8.ValidString(id):
		return ErrInvalidID
	case strings.Contains(id, "/"):
		return ErrInvalidID
	case strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__"):
		return ErrInvalidID
	}
	return nil
}
