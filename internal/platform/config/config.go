// Package config loads runtime settings from .env, an optional config.yaml,
// and the process environment. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port  string      `mapstructure:"port"`
	Store StoreConfig `mapstructure:"store"`

	Firebase FirebaseConfig `mapstructure:"firebase"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	GitHub   GitHubConfig   `mapstructure:"github"`
}

// StoreConfig selects the profile store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// FirebaseConfig configures Firebase Auth and Firestore.
type FirebaseConfig struct {
	ProjectID   string `mapstructure:"project_id"`
	Credentials string `mapstructure:"credentials"`
}

// MongoConfig configures the MongoDB store.
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// GitHubConfig configures the GitHub REST client.
type GitHubConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
}

var envBindings = map[string][]string{
	"port":                 {"PORT"},
	"store.driver":         {"STORE_DRIVER"},
	"firebase.project_id":  {"FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"},
	"firebase.credentials": {"GOOGLE_APPLICATION_CREDENTIALS"},
	"mongo.uri":            {"MONGODB_URI"},
	"mongo.database":       {"MONGODB_DATABASE"},
	"github.token":         {"GITHUB_TOKEN"},
	"github.base_url":      {"GITHUB_BASE_URL"},
}

// Load reads configuration. Missing .env and config.yaml files are not errors.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetDefault("port", "8080")
	v.SetDefault("store.driver", DriverFirestore)
	v.SetDefault("mongo.database", "devconnector")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that would prevent the server from starting.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFirestore:
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}
