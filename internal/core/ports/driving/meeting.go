package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// MeetingService manages the meeting lifecycle.
type MeetingService interface {
	// Schedule creates a meeting for an open process and an approved committee.
	Schedule(ctx context.Context, actor domain.Actor, req domain.ScheduleRequest) (*domain.Meeting, error)

	// EditState advances or cancels a meeting. The requested state is
	// advisory; see domain.NextMeetingState.
	EditState(ctx context.Context, actor domain.Actor, id string, requested domain.MeetingState) (*domain.MeetingTransition, error)

	// Reschedule moves a scheduled meeting forward in time.
	Reschedule(ctx context.Context, actor domain.Actor, id string, at time.Time, location string) (*domain.Meeting, error)

	// Get retrieves a meeting by ID. Meetings of processes the actor
	// cannot see are reported as domain.ErrNotFound.
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Meeting, error)

	// ListByProcess returns the meetings of a process visible to the actor.
	ListByProcess(ctx context.Context, actor domain.Actor, processID string) ([]domain.Meeting, error)
}
