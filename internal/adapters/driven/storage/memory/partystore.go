package memory

import (
	"context"
	"sort"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure partyStore implements the interface.
var _ driven.PartyStore = (*partyStore)(nil)

type partyStore struct {
	st *state
}

// Upsert returns the party with p's identification number, creating it if new.
func (s *partyStore) Upsert(_ context.Context, p domain.Party) (*domain.Party, error) {
	if id, ok := s.st.partyByNum[p.IdentificationNumber]; ok {
		existing := s.st.parties[id]
		return &existing, nil
	}
	s.st.parties[p.ID] = p
	s.st.partyByNum[p.IdentificationNumber] = p.ID
	return &p, nil
}

// Get retrieves a party by ID.
func (s *partyStore) Get(_ context.Context, id string) (*domain.Party, error) {
	p, ok := s.st.parties[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "party %s", id)
	}
	return &p, nil
}

// IsAttached reports whether a party with identificationNumber is attached.
func (s *partyStore) IsAttached(_ context.Context, processID, identificationNumber string) (bool, error) {
	id, ok := s.st.partyByNum[identificationNumber]
	if !ok {
		return false, nil
	}
	_, attached := s.st.attachments[processID][id]
	return attached, nil
}

// Attach inserts the join row, enforcing one row per (process, party).
func (s *partyStore) Attach(_ context.Context, pp domain.ProcessParty) error {
	if _, ok := s.st.processes[pp.ProcessID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "process %s", pp.ProcessID)
	}
	if _, ok := s.st.parties[pp.Party.ID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "party %s", pp.Party.ID)
	}
	rows := s.st.attachments[pp.ProcessID]
	if rows == nil {
		rows = make(map[string]domain.ProcessParty)
		s.st.attachments[pp.ProcessID] = rows
	}
	if _, ok := rows[pp.Party.ID]; ok {
		return domain.Errorf(domain.ErrConflict, "party %s is already attached to process %s",
			pp.Party.IdentificationNumber, pp.ProcessID)
	}
	rows[pp.Party.ID] = pp
	return nil
}

// Detach deletes the join row.
func (s *partyStore) Detach(_ context.Context, processID, partyID string) error {
	rows := s.st.attachments[processID]
	if _, ok := rows[partyID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "party %s is not attached to process %s", partyID, processID)
	}
	delete(rows, partyID)
	return nil
}

// ListByProcess returns the parties attached to a process ordered by AddedAt.
func (s *partyStore) ListByProcess(_ context.Context, processID string) ([]domain.ProcessParty, error) {
	rows := s.st.attachments[processID]
	out := make([]domain.ProcessParty, 0, len(rows))
	for _, pp := range rows {
		out = append(out, pp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].Party.Name < out[j].Party.Name
	})
	return out, nil
}
