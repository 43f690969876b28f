// Package firebase builds the Firebase Admin clients the server depends on.
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/janisto/devconnector-api/internal/platform/config"
)

// Clients holds the initialized Firebase clients. Firestore is nil unless requested.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewClients initializes the Admin SDK. Firestore is only opened when withFirestore
// is set, so deployments on the Mongo store never dial it.
func NewClients(ctx context.Context, cfg config.FirebaseConfig, withFirestore bool) (*Clients, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	c := &Clients{}
	if c.Auth, err = app.Auth(ctx); err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	if withFirestore {
		if c.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("init firestore: %w", err)
		}
	}
	return c, nil
}

func clientOptions(cfg config.FirebaseConfig) []option.ClientOption {
	if cfg.Credentials == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.Credentials)}
}

// Close releases the Firestore connection if one was opened.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
