package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure committeeStore implements the interface.
var _ driven.CommitteeStore = (*committeeStore)(nil)

type committeeStore struct {
	st *state
}

// Save stores or replaces a committee.
func (s *committeeStore) Save(_ context.Context, c domain.Committee) error {
	c.Members = slices.Clone(c.Members)
	s.st.committees[c.ID] = c
	return nil
}

// Get retrieves a committee by ID.
func (s *committeeStore) Get(_ context.Context, id string) (*domain.Committee, error) {
	c, ok := s.st.committees[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "committee %s", id)
	}
	c.Members = slices.Clone(c.Members)
	return &c, nil
}

// List returns all committees ordered by name.
func (s *committeeStore) List(_ context.Context) ([]domain.Committee, error) {
	out := make([]domain.Committee, 0, len(s.st.committees))
	for _, c := range s.st.committees {
		c.Members = slices.Clone(c.Members)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
