package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// Ensure MeetingService implements the interface.
var _ driving.MeetingService = (*MeetingService)(nil)

// MeetingService schedules committee meetings and moves them through their
// forward-only lifecycle.
type MeetingService struct {
	lifecycle
}

// NewMeetingService creates a new meeting service.
func NewMeetingService(tx driven.Transactor, audit driven.AuditSink) *MeetingService {
	return &MeetingService{lifecycle: newLifecycle(tx, nil, audit)}
}

// Schedule creates a meeting for an open process and an approved committee.
func (s *MeetingService) Schedule(ctx context.Context, actor domain.Actor, req domain.ScheduleRequest) (*domain.Meeting, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, domain.Errorf(domain.ErrValidation, "location is required")
	}
	now := s.now()
	if req.At.IsZero() || domain.IsBeforeToday(req.At, now) {
		return nil, domain.Errorf(domain.ErrValidation, "meeting date %s is in the past", req.At.Format(time.DateOnly))
	}

	var created *domain.Meeting
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		p, err := repos.Processes().Get(ctx, req.ProcessID)
		if err != nil {
			return err
		}
		c, err := repos.Committees().Get(ctx, req.CommitteeID)
		if err != nil {
			return err
		}
		if p.State != domain.ProcessStateOpen {
			return domain.Errorf(domain.ErrInvalidState, "process %s is %s, meetings need an open process", p.Number, p.State)
		}
		if !c.IsApproved() {
			return domain.Errorf(domain.ErrInvalidState, "committee %s is %s, meetings need an approved committee", c.Name, c.State)
		}

		m := &domain.Meeting{
			ID:          s.newID(),
			ProcessID:   p.ID,
			CommitteeID: c.ID,
			ScheduledAt: req.At,
			Location:    location,
			State:       domain.MeetingStateScheduled,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.Meetings().Create(ctx, m); err != nil {
			return fmt.Errorf("creating meeting: %w", err)
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("scheduled meeting %s for process %s at %s", created.ID, created.ProcessID, created.ScheduledAt.Format(time.RFC3339))
	s.emit(ctx, auditEvent(actor, domain.AuditActionCreate, domain.AuditEntityMeeting, created.ID, map[string]string{
		"process_id":   created.ProcessID,
		"committee_id": created.CommitteeID,
		"scheduled_at": created.ScheduledAt.Format(time.RFC3339),
	}))
	return created, nil
}

// EditState advances a meeting one step. The requested state only matters
// when it is cancelled or names the current step; see domain.NextMeetingState.
func (s *MeetingService) EditState(
	ctx context.Context,
	actor domain.Actor,
	id string,
	requested domain.MeetingState,
) (*domain.MeetingTransition, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	now := s.now()
	var (
		result   domain.MeetingTransition
		previous domain.MeetingState
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		m, err := repos.Meetings().Get(ctx, id)
		if err != nil {
			return err
		}
		previous = m.State
		next, changed, err := domain.NextMeetingState(m.State, requested)
		if err != nil {
			return err
		}
		if !changed {
			result = domain.MeetingTransition{
				Meeting: *m,
				Message: fmt.Sprintf("meeting is already %s", m.State),
			}
			return nil
		}
		m.State = next
		m.UpdatedAt = now
		if err := repos.Meetings().Update(ctx, m); err != nil {
			return fmt.Errorf("updating meeting: %w", err)
		}
		result = domain.MeetingTransition{Meeting: *m, Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Changed {
		return &result, nil
	}

	logger.Debug("meeting %s: %s -> %s (requested %q)", id, previous, result.Meeting.State, requested)
	s.emit(ctx, auditEvent(actor, domain.AuditActionUpdate, domain.AuditEntityMeeting, id, map[string]string{
		"from":      previous.String(),
		"to":        result.Meeting.State.String(),
		"requested": requested.String(),
	}))
	return &result, nil
}

// Reschedule moves a scheduled meeting to a later date or a new location.
func (s *MeetingService) Reschedule(
	ctx context.Context,
	actor domain.Actor,
	id string,
	at time.Time,
	location string,
) (*domain.Meeting, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	now := s.now()
	if at.IsZero() || domain.IsBeforeToday(at, now) {
		return nil, domain.Errorf(domain.ErrValidation, "meeting date %s is in the past", at.Format(time.DateOnly))
	}
	location = strings.TrimSpace(location)

	var (
		updated *domain.Meeting
		before  time.Time
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		m, err := repos.Meetings().Get(ctx, id)
		if err != nil {
			return err
		}
		if m.State != domain.MeetingStateScheduled {
			return domain.Errorf(domain.ErrInvalidState, "meeting is %s, only scheduled meetings may be rescheduled", m.State)
		}
		if at.Before(m.ScheduledAt) {
			return domain.Errorf(domain.ErrValidation, "cannot move meeting back from %s to %s",
				m.ScheduledAt.Format(time.RFC3339), at.Format(time.RFC3339))
		}
		before = m.ScheduledAt
		m.ScheduledAt = at
		if location != "" {
			m.Location = location
		}
		m.UpdatedAt = now
		if err := repos.Meetings().Update(ctx, m); err != nil {
			return fmt.Errorf("updating meeting: %w", err)
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, auditEvent(actor, domain.AuditActionUpdate, domain.AuditEntityMeeting, id, map[string]string{
		"from_date": before.Format(time.RFC3339),
		"to_date":   updated.ScheduledAt.Format(time.RFC3339),
		"location":  updated.Location,
	}))
	return updated, nil
}

// Get retrieves a meeting of a process visible to the actor.
func (s *MeetingService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Meeting, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var found *domain.Meeting
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		m, err := repos.Meetings().Get(ctx, id)
		if err != nil {
			return err
		}
		if _, err := visibleProcess(ctx, repos, actor, m.ProcessID); err != nil {
			return domain.Errorf(domain.ErrNotFound, "meeting %s", id)
		}
		found = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByProcess returns the meetings of a process visible to the actor.
func (s *MeetingService) ListByProcess(ctx context.Context, actor domain.Actor, processID string) ([]domain.Meeting, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var meetings []domain.Meeting
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		if _, err := visibleProcess(ctx, repos, actor, processID); err != nil {
			return err
		}
		list, err := repos.Meetings().ListByProcess(ctx, processID)
		if err != nil {
			return fmt.Errorf("listing meetings: %w", err)
		}
		meetings = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meetings, nil
}
