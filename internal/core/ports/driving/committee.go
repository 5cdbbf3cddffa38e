package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// CommitteeService gives read access to committees and imports rosters.
type CommitteeService interface {
	// Import stores or replaces each committee. It returns how many were saved.
	Import(ctx context.Context, committees []domain.Committee) (int, error)

	// Get retrieves a committee by ID.
	Get(ctx context.Context, id string) (*domain.Committee, error)

	// List returns all committees.
	List(ctx context.Context) ([]domain.Committee, error)
}
