package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// PartyStore persists parties and their attachment to processes.
type PartyStore interface {
	// Upsert returns the stored party with the same identification number,
	// creating it from p when none exists. Existing parties are not modified.
	Upsert(ctx context.Context, p domain.Party) (*domain.Party, error)

	// Get retrieves a party by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Party, error)

	// IsAttached reports whether a party with identificationNumber is
	// attached to the process.
	IsAttached(ctx context.Context, processID, identificationNumber string) (bool, error)

	// Attach inserts the join row.
	// Returns domain.ErrConflict if the party is already attached.
	Attach(ctx context.Context, pp domain.ProcessParty) error

	// Detach deletes the join row.
	// Returns domain.ErrNotFound if the party is not attached to the process.
	Detach(ctx context.Context, processID, partyID string) error

	// ListByProcess returns the parties attached to a process.
	ListByProcess(ctx context.Context, processID string) ([]domain.ProcessParty, error)
}
