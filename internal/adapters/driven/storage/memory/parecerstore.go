package memory

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure parecerStore implements the interface.
var _ driven.ParecerStore = (*parecerStore)(nil)

type parecerStore struct {
	st *state
}

// Create inserts a parecer, one per process.
func (s *parecerStore) Create(_ context.Context, p *domain.Parecer) error {
	if _, ok := s.st.processes[p.ProcessID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "process %s", p.ProcessID)
	}
	if _, ok := s.st.pareceres[p.ProcessID]; ok {
		return domain.Errorf(domain.ErrConflict, "process %s already has a parecer", p.ProcessID)
	}
	s.st.pareceres[p.ProcessID] = *p
	return nil
}

// GetByProcess retrieves the parecer of a process.
func (s *parecerStore) GetByProcess(_ context.Context, processID string) (*domain.Parecer, error) {
	p, ok := s.st.pareceres[processID]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "parecer for process %s", processID)
	}
	return &p, nil
}
