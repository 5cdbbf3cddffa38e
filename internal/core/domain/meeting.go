package domain

import "time"

// MeetingState is the lifecycle state of a meeting.
type MeetingState string

// Meeting states. Concluded and Cancelled are terminal.
const (
	MeetingStateScheduled  MeetingState = "scheduled"
	MeetingStateInProgress MeetingState = "in_progress"
	MeetingStateConcluded  MeetingState = "concluded"
	MeetingStateCancelled  MeetingState = "cancelled"
)

// IsValid returns true if the meeting state is recognised.
func (s MeetingState) IsValid() bool {
	switch s {
	case MeetingStateScheduled, MeetingStateInProgress, MeetingStateConcluded, MeetingStateCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s MeetingState) String() string {
	return string(s)
}

// IsTerminal reports whether the meeting can no longer change.
func (s MeetingState) IsTerminal() bool {
	return s == MeetingStateConcluded || s == MeetingStateCancelled
}

// meetingStep is one row of the meeting transition table.
type meetingStep struct {
	// onCancel is the next state when the request is cancelled.
	onCancel MeetingState
	// hold lists requests that leave the meeting unchanged.
	hold []MeetingState
	// advance is the next state for every other request.
	advance MeetingState
	// refusal is set for terminal states.
	refusal string
}

// meetingTransitions drives the forward-only meeting lifecycle.
// The requested state is advisory: outside of cancellation the caller only
// signals "move forward" and the meeting advances exactly one step.
var meetingTransitions = map[MeetingState]meetingStep{
	MeetingStateScheduled: {
		onCancel: MeetingStateCancelled,
		advance:  MeetingStateInProgress,
	},
	MeetingStateInProgress: {
		onCancel: MeetingStateCancelled,
		hold:     []MeetingState{MeetingStateInProgress, MeetingStateScheduled},
		advance:  MeetingStateConcluded,
	},
	MeetingStateConcluded: {refusal: "meeting already concluded"},
	MeetingStateCancelled: {refusal: "meeting already cancelled"},
}

// NextMeetingState resolves a requested state against the transition table.
// It returns the resulting state and whether it differs from current.
func NextMeetingState(current, requested MeetingState) (MeetingState, bool, error) {
	step, ok := meetingTransitions[current]
	if !ok {
		return current, false, Errorf(ErrInvalidState, "unknown meeting state %q", current)
	}
	if step.refusal != "" {
		return current, false, Errorf(ErrInvalidState, "%s", step.refusal)
	}
	if requested == MeetingStateCancelled {
		return step.onCancel, true, nil
	}
	for _, h := range step.hold {
		if requested == h {
			return current, false, nil
		}
	}
	return step.advance, true, nil
}

// Meeting is a committee session tied to exactly one process.
type Meeting struct {
	// ID is the unique identifier for the meeting.
	ID string

	// ProcessID is the owning process.
	ProcessID string

	// CommitteeID is the committee holding the session.
	CommitteeID string

	// ScheduledAt is the date and time of the session.
	ScheduledAt time.Time

	// Location is where the session takes place.
	Location string

	// State is the lifecycle state.
	State MeetingState

	// AtaDocumentID links the minutes once attached.
	AtaDocumentID *string

	// CreatedAt is when the meeting was scheduled.
	CreatedAt time.Time

	// UpdatedAt is when the meeting was last changed.
	UpdatedAt time.Time
}

// MeetingTransition is the outcome of an EditState call.
type MeetingTransition struct {
	Meeting Meeting
	Changed bool
	Message string
}

// ScheduleRequest carries the fields needed to schedule a meeting.
type ScheduleRequest struct {
	ProcessID   string
	CommitteeID string
	At          time.Time
	Location    string
}

// DateOnly truncates t to midnight in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// IsBeforeToday compares calendar dates only; time of day is ignored.
func IsBeforeToday(t, now time.Time) bool {
	loc := now.Location()
	return DateOnly(t, loc).Before(DateOnly(now, loc))
}
