package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// ProcessFilter narrows a process listing.
type ProcessFilter struct {
	// ResponsibleID restricts to one owner. Empty lists every process.
	ResponsibleID string
	Offset        int
	Limit         int
}

// ProcessStore persists processes.
type ProcessStore interface {
	// NextSequence reserves the next zero-based sequence for processes
	// opened in year. Reservations are never reused.
	NextSequence(ctx context.Context, year int) (int64, error)

	// Create inserts a new process.
	// Returns domain.ErrConflict if the number is already taken.
	Create(ctx context.Context, p *domain.Process) error

	// Get retrieves a process by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Process, error)

	// Update overwrites the mutable fields of an existing process.
	Update(ctx context.Context, p *domain.Process) error

	// List returns one page of processes ordered by OpenedAt descending,
	// plus the total number of matches.
	List(ctx context.Context, filter ProcessFilter) ([]domain.Process, int, error)
}
