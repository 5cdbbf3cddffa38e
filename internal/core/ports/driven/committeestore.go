package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// CommitteeStore persists committees. The core only reads them; Save exists
// for roster imports.
type CommitteeStore interface {
	// Save stores or replaces a committee and its members.
	Save(ctx context.Context, c domain.Committee) error

	// Get retrieves a committee by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Committee, error)

	// List returns all committees ordered by name.
	List(ctx context.Context) ([]domain.Committee, error)
}
