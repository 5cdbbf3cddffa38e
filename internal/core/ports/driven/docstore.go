package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// DocumentStore persists document metadata. Payloads live in the BlobStore.
type DocumentStore interface {
	// Create inserts a new document. Documents are never updated.
	Create(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// ListByProcess returns the documents of a process ordered by CreatedAt.
	ListByProcess(ctx context.Context, processID string) ([]domain.Document, error)
}
