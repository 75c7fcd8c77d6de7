package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fabric-shop/internal/model"
	"fabric-shop/internal/repository"

	"github.com/rs/zerolog"
)

// LowStockThreshold is the stock level, in meters, at or below which a
// product is reported as low on stock.
const LowStockThreshold = 10.0

// Options configures a Store.
type Options struct {
	// AdminEmail is the credential accepted by admin operations and the email
	// of the seeded admin user.
	AdminEmail string

	// AdminPassword is the password of the seeded admin user.
	AdminPassword string

	// Catalog replaces the default seeded products when non-nil.
	Catalog []model.Product

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the options matching the default seed document.
func DefaultOptions() Options {
	return Options{
		AdminEmail:    DefaultAdminEmail,
		AdminPassword: DefaultAdminPassword,
	}
}

// Store is the shop engine. Every operation loads the whole document,
// validates, mutates it in memory and saves it back whole. A single mutex
// serialises operations so concurrent callers never interleave a
// read-modify-write.
type Store struct {
	repo   repository.DocumentRepository
	opts   Options
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewStore creates a store engine over repo.
func NewStore(repo repository.DocumentRepository, opts Options, logger zerolog.Logger) *Store {
	if opts.AdminEmail == "" {
		opts.AdminEmail = DefaultAdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = DefaultAdminPassword
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Store{
		repo:   repo,
		opts:   opts,
		logger: logger.With().Str("service", "store").Logger(),
	}
}

// Document returns the stored document, seeding it first if it is missing or
// corrupt.
func (s *Store) Document(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Reset overwrites the stored document with the seed document.
func (s *Store) Reset(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.seedDocument()
	if err := s.repo.Save(ctx, doc); err != nil {
		s.logger.Error().Err(err).Msg("failed to save seed document")
		return nil, fmt.Errorf("failed to reset document: %w", err)
	}

	s.logger.Info().Msg("document reset to seed")

	return doc, nil
}

// view runs fn against the current document without saving it.
func (s *Store) view(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn against the current document and saves the result. Nothing
// is saved when fn fails.
func (s *Store) update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		s.logger.Error().Err(err).Msg("failed to save document")
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// load reads the document, seeding and persisting a fresh one when nothing
// is stored or the stored text is unreadable. Caller must hold s.mu.
func (s *Store) load(ctx context.Context) (*model.Document, error) {
	doc, err := s.repo.Load(ctx)
	if err == nil {
		return doc, nil
	}

	if !errors.Is(err, repository.ErrDocumentNotFound) && !errors.Is(err, repository.ErrDocumentCorrupt) {
		s.logger.Error().Err(err).Msg("failed to load document")
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	s.logger.Info().
		Bool("corrupt", errors.Is(err, repository.ErrDocumentCorrupt)).
		Msg("seeding document")

	doc = s.seedDocument()
	if err := s.repo.Save(ctx, doc); err != nil {
		s.logger.Error().Err(err).Msg("failed to save seed document")
		return nil, fmt.Errorf("failed to save seed document: %w", err)
	}

	return doc, nil
}

func (s *Store) seedDocument() *model.Document {
	return SeedDocument(s.opts.AdminEmail, s.opts.AdminPassword, s.opts.Catalog)
}

func (s *Store) now() time.Time {
	return s.opts.Clock().UTC()
}
