package repository

import (
	"context"
	"errors"
	"fmt"

	"fabric-shop/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisRepository stores the document as a single string value, mirroring a
// browser's key-value storage.
type redisRepository struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

// NewRedisRepository creates a Redis-backed document repository.
func NewRedisRepository(client *redis.Client, key string, logger zerolog.Logger) DocumentRepository {
	return &redisRepository{
		client: client,
		key:    key,
		logger: logger.With().Str("repository", "redis").Logger(),
	}
}

// Load reads and decodes the document value.
func (r *redisRepository) Load(ctx context.Context) (*model.Document, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug().Str("key", r.key).Msg("document not found")
			return nil, ErrDocumentNotFound
		}
		r.logger.Error().Err(err).Str("key", r.key).Msg("failed to get document")
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", r.key).Msg("stored document is corrupt")
		return nil, err
	}
	return doc, nil
}

// Save replaces the document value. The value never expires.
func (r *redisRepository) Save(ctx context.Context, doc *model.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		r.logger.Error().Err(err).Str("key", r.key).Msg("failed to set document")
		return fmt.Errorf("failed to set document: %w", err)
	}

	r.logger.Debug().Str("key", r.key).Int("bytes", len(data)).Msg("document saved")

	return nil
}
