package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fabric-shop/internal/model"

	"github.com/rs/zerolog"
)

// fileRepository stores the document as a JSON file on local disk.
type fileRepository struct {
	path   string
	logger zerolog.Logger
}

// NewFileRepository creates a repository backed by the file at path.
func NewFileRepository(path string, logger zerolog.Logger) DocumentRepository {
	return &fileRepository{
		path:   path,
		logger: logger.With().Str("repository", "file").Logger(),
	}
}

// Load reads and decodes the document file.
func (r *fileRepository) Load(ctx context.Context) (*model.Document, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug().Str("file", r.path).Msg("document file not found")
			return nil, ErrDocumentNotFound
		}
		r.logger.Error().Err(err).Str("file", r.path).Msg("failed to read document file")
		return nil, fmt.Errorf("failed to read document file %s: %w", r.path, err)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		r.logger.Warn().Err(err).Str("file", r.path).Msg("document file is corrupt")
		return nil, err
	}
	return doc, nil
}

// Save writes the document to a temporary file and renames it into place so a
// crash never leaves a half-written document behind.
func (r *fileRepository) Save(ctx context.Context, doc *model.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.logger.Error().Err(err).Str("dir", dir).Msg("failed to create document directory")
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		r.logger.Error().Err(err).Str("file", r.path).Msg("failed to create temporary document file")
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close document file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		r.logger.Error().Err(err).Str("file", r.path).Msg("failed to replace document file")
		return fmt.Errorf("failed to replace document file %s: %w", r.path, err)
	}

	r.logger.Debug().Str("file", r.path).Int("bytes", len(data)).Msg("document saved")

	return nil
}
