package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// MeetingStore persists meetings.
type MeetingStore interface {
	// Create inserts a new meeting.
	Create(ctx context.Context, m *domain.Meeting) error

	// Get retrieves a meeting by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Meeting, error)

	// Update overwrites the mutable fields of an existing meeting.
	Update(ctx context.Context, m *domain.Meeting) error

	// ListByProcess returns the meetings of a process ordered by ScheduledAt.
	ListByProcess(ctx context.Context, processID string) ([]domain.Meeting, error)
}
