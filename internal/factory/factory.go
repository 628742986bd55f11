package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/mcoot/staffdir/internal/dependencies/clock"
	"github.com/mcoot/staffdir/internal/gql"
	"github.com/mcoot/staffdir/internal/seed"
	"github.com/mcoot/staffdir/internal/services/auth"
	"github.com/mcoot/staffdir/internal/services/directory"
	"github.com/mcoot/staffdir/internal/storage"
	"github.com/mcoot/staffdir/internal/storage/memory"
	redisstorage "github.com/mcoot/staffdir/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.DirectoryStore

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService      *auth.Service
	DirectoryService *directory.Service

	// GraphQL
	Schema  graphql.Schema
	GraphQL http.Handler

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service.
	// Secret is required; zero TTL and cost fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired and the
// directory seeded. A Redis store is wiped first.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	// Create storage based on type
	var store storage.DirectoryStore
	var closers []io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		if err := redisStore.Reset(ctx); err != nil {
			_ = redisStore.Close()
			return nil, fmt.Errorf("reset redis store: %w", err)
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	app, err := newWithDependencies(store, clk, cfg.AuthConfig, logger)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	app.closers = closers

	if err := seed.Run(ctx, store, app.AuthService, logger); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("seed directory: %w", err)
	}
	return app, nil
}

// Close releases storage connections
func (a *App) Close() error {
	return closeAll(a.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.DirectoryStore, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) (*App, error) {
	authService, err := auth.New(store, clk, authCfg, logger)
	if err != nil {
		return nil, err
	}
	directoryService := directory.New(store, logger)

	schema, err := gql.NewSchema(gql.NewResolver(authService, directoryService))
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}

	return &App{
		Storage:          store,
		Clock:            clk,
		AuthService:      authService,
		DirectoryService: directoryService,
		Schema:           schema,
		GraphQL:          gql.NewHandler(&schema, logger),
	}, nil
}
