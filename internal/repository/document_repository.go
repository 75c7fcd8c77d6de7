package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fabric-shop/internal/model"
)

var (
	// ErrDocumentNotFound is returned by Load when nothing has been stored yet.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentCorrupt is wrapped by Load when the stored text cannot be decoded.
	ErrDocumentCorrupt = errors.New("document corrupt")
)

// DocumentRepository defines persistence for the whole shop document.
type DocumentRepository interface {
	// Load reads and decodes the stored document.
	// Returns ErrDocumentNotFound when nothing is stored, or an error wrapping
	// ErrDocumentCorrupt when the stored text is not a valid document.
	Load(ctx context.Context) (*model.Document, error)

	// Save replaces the stored document.
	Save(ctx context.Context, doc *model.Document) error
}

// EncodeDocument serialises a document to its stored JSON form.
func EncodeDocument(doc *model.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("document is nil")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses stored JSON into a document. Missing collections are
// replaced with empty ones.
func DecodeDocument(raw []byte) (*model.Document, error) {
	var doc *model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentCorrupt, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrDocumentCorrupt)
	}
	doc.Normalize()
	return doc, nil
}
