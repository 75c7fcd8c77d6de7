package repository

import (
	"context"
	"sync"

	"fabric-shop/internal/model"
)

// MemoryRepository keeps the encoded document in process memory. The stored
// form is the same JSON text the other backends persist, so every Load hands
// out an independent copy.
type MemoryRepository struct {
	mu  sync.RWMutex
	raw []byte
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load decodes the stored document.
func (r *MemoryRepository) Load(ctx context.Context) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.raw == nil {
		return nil, ErrDocumentNotFound
	}
	return DecodeDocument(r.raw)
}

// Save encodes and stores the document.
func (r *MemoryRepository) Save(ctx context.Context, doc *model.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.raw = data
	r.mu.Unlock()

	return nil
}

// Raw returns a copy of the stored text, or nil when empty.
func (r *MemoryRepository) Raw() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.raw == nil {
		return nil
	}
	return append([]byte(nil), r.raw...)
}

// SetRaw replaces the stored text verbatim. A nil value clears the store.
func (r *MemoryRepository) SetRaw(raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if raw == nil {
		r.raw = nil
		return
	}
	r.raw = append([]byte(nil), raw...)
}
