package memory

import (
	"context"
	"sort"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure processStore implements the interface.
var _ driven.ProcessStore = (*processStore)(nil)

type processStore struct {
	st *state
}

// NextSequence reserves the next zero-based sequence for year.
func (s *processStore) NextSequence(_ context.Context, year int) (int64, error) {
	next := s.st.sequences[year]
	s.st.sequences[year] = next + 1
	return next, nil
}

// Create inserts a new process.
func (s *processStore) Create(_ context.Context, p *domain.Process) error {
	if _, ok := s.st.processes[p.ID]; ok {
		return domain.Errorf(domain.ErrConflict, "process %s exists", p.ID)
	}
	for _, existing := range s.st.processes {
		if existing.Number == p.Number {
			return domain.Errorf(domain.ErrConflict, "process number %s is taken", p.Number)
		}
	}
	s.st.processes[p.ID] = *p
	return nil
}

// Get retrieves a process by ID.
func (s *processStore) Get(_ context.Context, id string) (*domain.Process, error) {
	p, ok := s.st.processes[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "process %s", id)
	}
	return &p, nil
}

// Update overwrites an existing process.
func (s *processStore) Update(_ context.Context, p *domain.Process) error {
	if _, ok := s.st.processes[p.ID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "process %s", p.ID)
	}
	s.st.processes[p.ID] = *p
	return nil
}

// List returns processes newest first, with the total before paging.
func (s *processStore) List(_ context.Context, filter driven.ProcessFilter) ([]domain.Process, int, error) {
	matched := make([]domain.Process, 0, len(s.st.processes))
	for _, p := range s.st.processes {
		if filter.ResponsibleID != "" && p.ResponsibleID != filter.ResponsibleID {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].OpenedAt.Equal(matched[j].OpenedAt) {
			return matched[i].OpenedAt.After(matched[j].OpenedAt)
		}
		return matched[i].Number > matched[j].Number
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}
