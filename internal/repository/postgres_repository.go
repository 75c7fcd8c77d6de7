package repository

import (
	"context"
	"errors"
	"fmt"

	"fabric-shop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DocumentsSchema creates the table holding stored documents. The body is
// kept as text so that a corrupt document can be detected and replaced
// rather than rejected on write.
const DocumentsSchema = `
	CREATE TABLE IF NOT EXISTS store_documents (
		key TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// postgresRepository implements DocumentRepository using PostgreSQL.
type postgresRepository struct {
	pool   *pgxpool.Pool
	key    string
	logger zerolog.Logger
}

// NewPostgresRepository creates a PostgreSQL-backed document repository that
// stores the document in the row identified by key.
func NewPostgresRepository(pool *pgxpool.Pool, key string, logger zerolog.Logger) DocumentRepository {
	return &postgresRepository{
		pool:   pool,
		key:    key,
		logger: logger.With().Str("repository", "postgres").Logger(),
	}
}

// EnsureSchema creates the documents table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, DocumentsSchema); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

// Load retrieves and decodes the document row.
func (r *postgresRepository) Load(ctx context.Context) (*model.Document, error) {
	query := `
		SELECT body
		FROM store_documents
		WHERE key = $1
	`

	var body string
	err := r.pool.QueryRow(ctx, query, r.key).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("key", r.key).Msg("document not found")
			return nil, ErrDocumentNotFound
		}
		r.logger.Error().Err(err).Str("key", r.key).Msg("failed to query document")
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc, err := DecodeDocument([]byte(body))
	if err != nil {
		r.logger.Warn().Err(err).Str("key", r.key).Msg("stored document is corrupt")
		return nil, err
	}
	return doc, nil
}

// Save upserts the document row.
func (r *postgresRepository) Save(ctx context.Context, doc *model.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO store_documents (key, body, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, r.key, string(data)); err != nil {
		r.logger.Error().Err(err).Str("key", r.key).Msg("failed to save document")
		return fmt.Errorf("failed to save document: %w", err)
	}

	r.logger.Debug().
		Str("key", r.key).
		Int("bytes", len(data)).
		Msg("document saved")

	return nil
}
