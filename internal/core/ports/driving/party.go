package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// PartyService attaches parties to processes.
type PartyService interface {
	// Add attaches a party, creating the party record if new.
	Add(ctx context.Context, actor domain.Actor, req domain.AddPartyRequest) (*domain.ProcessParty, error)

	// Remove detaches a party and returns a confirmation message.
	Remove(ctx context.Context, actor domain.Actor, processID, partyID string) (string, error)

	// List returns the parties of a process. Supervisors may list any process.
	List(ctx context.Context, actor domain.Actor, processID string) ([]domain.ProcessParty, error)
}
