package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// ParecerStore persists closing opinions.
type ParecerStore interface {
	// Create inserts a parecer.
	// Returns domain.ErrConflict if the process already has one.
	Create(ctx context.Context, p *domain.Parecer) error

	// GetByProcess retrieves the parecer of a process.
	// Returns domain.ErrNotFound if the process has none.
	GetByProcess(ctx context.Context, processID string) (*domain.Parecer, error)
}
