package ports

import (
	"context"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/domain/model/kernel"
)

// DocumentRepository persists generated documents and their delivery state.
type DocumentRepository interface {
	// Add stores a new document.
	Add(ctx context.Context, aggregate *document.Document) error

	// Update persists the delivery state of an existing document.
	Update(ctx context.Context, aggregate *document.Document) error

	// Get returns a document by id or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*document.Document, error)

	// GetQueued returns up to limit queued documents, oldest first.
	GetQueued(ctx context.Context, limit int) ([]*document.Document, error)
}
