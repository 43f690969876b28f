package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/devconnector-api/internal/http/health"
	"github.com/janisto/devconnector-api/internal/platform/auth"
	"github.com/janisto/devconnector-api/internal/platform/config"
	"github.com/janisto/devconnector-api/internal/platform/firebase"
	"github.com/janisto/devconnector-api/internal/platform/logging"
	"github.com/janisto/devconnector-api/internal/platform/mongodb"
	githubsvc "github.com/janisto/devconnector-api/internal/service/github"
	profilesvc "github.com/janisto/devconnector-api/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	shutdownTimeout = 10 * time.Second
	githubTimeout   = 10 * time.Second
)

func main() {
	ctx := context.Background()
	defer func() { _ = logging.Sync() }()
	if err := logging.Err(); err != nil {
		logging.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.LogFatal(ctx, "invalid configuration", err)
	}

	d, closeStores, err := buildDeps(ctx, cfg)
	if err != nil {
		logging.LogFatal(ctx, "startup failed", err, zap.String("store", cfg.Store.Driver))
	}
	defer closeStores()

	router, _ := newRouter(d)
	srv := newHTTPServer(cfg.Port, router)

	listenErr := make(chan error, 1)
	go func() {
		logging.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.String("version", Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		logging.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		closeStores()
		os.Exit(1)
	case <-stop:
		logging.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(shutdownCtx, "server shutdown error", err)
	}
	logging.LogInfo(ctx, "server exited")
}

// buildDeps opens the configured store and the Firebase verifier. The returned
// func releases every client that was opened.
func buildDeps(ctx context.Context, cfg *config.Config) (deps, func(), error) {
	d := deps{
		ProjectID: cfg.Firebase.ProjectID,
		Registry:  newRegistry(),
		GitHub: githubsvc.NewClient(&http.Client{Timeout: githubTimeout},
			githubsvc.WithBaseURL(cfg.GitHub.BaseURL),
			githubsvc.WithToken(cfg.GitHub.Token),
		),
	}

	fb, err := firebase.NewClients(ctx, cfg.Firebase, cfg.Store.Driver == config.DriverFirestore)
	if err != nil {
		return d, func() {}, err
	}
	d.Verifier = auth.NewFirebaseVerifier(fb.Auth)
	closers := []func(){func() {
		if err := fb.Close(); err != nil {
			logging.LogWarn(ctx, "firestore close error", zap.Error(err))
		}
	}}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
		closers = nil
	}

	switch cfg.Store.Driver {
	case config.DriverMongo:
		mc, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			closeAll()
			return d, func() {}, err
		}
		closers = append(closers, func() {
			if err := mc.Close(context.Background()); err != nil {
				logging.LogWarn(ctx, "mongodb disconnect error", zap.Error(err))
			}
		})
		store := profilesvc.NewMongoStore(mc.DB)
		if err := store.EnsureIndexes(ctx); err != nil {
			closeAll()
			return d, func() {}, err
		}
		d.Profiles = store
		d.Checks = map[string]health.Check{"mongodb": mc.Ping}
	default:
		d.Profiles = profilesvc.NewFirestoreStore(fb.Firestore)
	}
	return d, closeAll, nil
}
