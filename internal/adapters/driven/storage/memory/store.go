// Package memory provides in-memory implementations of the driven ports.
//
// Store implements driven.Transactor by running every unit of work against a
// private copy of its state and swapping the copy in on success, so a failed
// unit of work leaves nothing behind. Units of work are serialised.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.Transactor = (*Store)(nil)

// state is everything a Store holds.
type state struct {
	processes  map[string]domain.Process
	sequences  map[int]int64
	meetings   map[string]domain.Meeting
	documents  map[string]domain.Document
	parties    map[string]domain.Party
	partyByNum map[string]string
	// attachments is process ID -> party ID -> join row.
	attachments map[string]map[string]domain.ProcessParty
	// pareceres is keyed by process ID.
	pareceres  map[string]domain.Parecer
	committees map[string]domain.Committee
}

func newState() *state {
	return &state{
		processes:   make(map[string]domain.Process),
		sequences:   make(map[int]int64),
		meetings:    make(map[string]domain.Meeting),
		documents:   make(map[string]domain.Document),
		parties:     make(map[string]domain.Party),
		partyByNum:  make(map[string]string),
		attachments: make(map[string]map[string]domain.ProcessParty),
		pareceres:   make(map[string]domain.Parecer),
		committees:  make(map[string]domain.Committee),
	}
}

func (s *state) clone() *state {
	c := &state{
		processes:   cloneMap(s.processes),
		sequences:   cloneMap(s.sequences),
		meetings:    cloneMap(s.meetings),
		documents:   cloneMap(s.documents),
		parties:     cloneMap(s.parties),
		partyByNum:  cloneMap(s.partyByNum),
		attachments: make(map[string]map[string]domain.ProcessParty, len(s.attachments)),
		pareceres:   cloneMap(s.pareceres),
		committees:  cloneMap(s.committees),
	}
	for pid, rows := range s.attachments {
		c.attachments[pid] = cloneMap(rows)
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store is an in-memory persistence collaborator.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: newState()}
}

// WithinTx runs fn against a copy of the store and keeps the copy only if fn
// succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos driven.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.data.clone()
	if err := fn(ctx, &repositories{st: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// repositories exposes the per-aggregate stores over one working copy.
type repositories struct {
	st *state
}

func (r *repositories) Processes() driven.ProcessStore { return &processStore{st: r.st} }
func (r *repositories) Meetings() driven.MeetingStore { return &meetingStore{st: r.st} }
func (r *repositories) Documents() driven.DocumentStore { return &documentStore{st: r.st} }
func (r *repositories) Parties() driven.PartyStore { return &partyStore{st: r.st} }
func (r *repositories) Pareceres() driven.ParecerStore { return &parecerStore{st: r.st} }
func (r *repositories) Committees() driven.CommitteeStore { return &committeeStore{st: r.st} }
