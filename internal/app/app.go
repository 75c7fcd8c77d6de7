// Package app holds the wiring shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"

	"fabric-shop/internal/config"
	"fabric-shop/internal/database"
	"fabric-shop/internal/repository"
	"fabric-shop/internal/service"

	"github.com/rs/zerolog"
)

// OpenRepository opens the document backend selected by cfg. The returned
// close function releases any connections and is never nil.
func OpenRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.DocumentRepository, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warn().Msg("using in-memory document storage, data is lost on exit")
		return repository.NewMemoryRepository(), noop, nil

	case config.BackendFile:
		return repository.NewFileRepository(cfg.Store.FilePath, logger), noop, nil

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return repository.NewPostgresRepository(pool, cfg.Store.Key, logger), pool.Close, nil

	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize redis: %w", err)
		}
		closer := func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close redis client")
			}
		}
		return repository.NewRedisRepository(client, cfg.Store.Key, logger), closer, nil

	case config.BackendS3:
		client, err := repository.NewS3Client(ctx, cfg.S3.Region, logger)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewS3Repository(client, cfg.S3.Bucket, cfg.S3.Prefix, cfg.Store.Key, logger), noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

// NewStore builds the store engine over repo, loading the seed catalogue
// file when one is configured.
func NewStore(cfg *config.Config, repo repository.DocumentRepository, logger zerolog.Logger) (*service.Store, error) {
	opts := service.Options{
		AdminEmail:    cfg.Auth.AdminEmail,
		AdminPassword: cfg.Auth.AdminPassword,
	}

	if cfg.Store.SeedFile != "" {
		catalog, err := service.LoadCatalog(cfg.Store.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed catalogue: %w", err)
		}
		opts.Catalog = catalog
		logger.Info().
			Str("path", cfg.Store.SeedFile).
			Int("products", len(catalog)).
			Msg("loaded seed catalogue")
	}

	return service.NewStore(repo, opts, logger), nil
}
