// Package mongodb opens the MongoDB connection used by the Mongo profile store.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/janisto/devconnector-api/internal/platform/config"
)

const (
	connectTimeout = 10 * time.Second
	appName        = "devconnector-api"
)

// Client wraps a connected driver client and the configured database.
type Client struct {
	client *mongo.Client
	DB     *mongo.Database
}

// Connect dials cfg.URI and verifies the primary answers a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Client{client: client, DB: client.Database(cfg.Database)}, nil
}

func clientOptions(cfg config.MongoConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(5 * time.Second)
}

// Ping checks the primary is reachable. It serves as a health check.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from the server.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
