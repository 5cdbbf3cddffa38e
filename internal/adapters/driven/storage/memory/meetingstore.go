package memory

import (
	"context"
	"sort"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure meetingStore implements the interface.
var _ driven.MeetingStore = (*meetingStore)(nil)

type meetingStore struct {
	st *state
}

// Create inserts a new meeting.
func (s *meetingStore) Create(_ context.Context, m *domain.Meeting) error {
	if _, ok := s.st.processes[m.ProcessID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "process %s", m.ProcessID)
	}
	if _, ok := s.st.committees[m.CommitteeID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "committee %s", m.CommitteeID)
	}
	if _, ok := s.st.meetings[m.ID]; ok {
		return domain.Errorf(domain.ErrConflict, "meeting %s exists", m.ID)
	}
	s.st.meetings[m.ID] = *m
	return nil
}

// Get retrieves a meeting by ID.
func (s *meetingStore) Get(_ context.Context, id string) (*domain.Meeting, error) {
	m, ok := s.st.meetings[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "meeting %s", id)
	}
	return &m, nil
}

// Update overwrites an existing meeting.
func (s *meetingStore) Update(_ context.Context, m *domain.Meeting) error {
	if _, ok := s.st.meetings[m.ID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "meeting %s", m.ID)
	}
	s.st.meetings[m.ID] = *m
	return nil
}

// ListByProcess returns the meetings of a process ordered by ScheduledAt.
func (s *meetingStore) ListByProcess(_ context.Context, processID string) ([]domain.Meeting, error) {
	var out []domain.Meeting
	for _, m := range s.st.meetings {
		if m.ProcessID == processID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}
