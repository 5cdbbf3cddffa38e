package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// Ensure PartyService implements the interface.
var _ driving.PartyService = (*PartyService)(nil)

// PartyService attaches parties to processes without duplicating identities.
type PartyService struct {
	lifecycle
}

// NewPartyService creates a new party service.
func NewPartyService(tx driven.Transactor, audit driven.AuditSink) *PartyService {
	return &PartyService{lifecycle: newLifecycle(tx, nil, audit)}
}

// Add attaches a party to an open process owned by the actor.
func (s *PartyService) Add(ctx context.Context, actor domain.Actor, req domain.AddPartyRequest) (*domain.ProcessParty, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	explicitKind := req.Kind != ""
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var attached *domain.ProcessParty
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		p, err := editableProcess(ctx, repos, actor, req.ProcessID)
		if err != nil {
			return err
		}
		exists, err := repos.Parties().IsAttached(ctx, p.ID, req.IdentificationNumber)
		if err != nil {
			return fmt.Errorf("checking parties: %w", err)
		}
		if exists {
			return domain.Errorf(domain.ErrConflict, "party %s is already attached to process %s", req.IdentificationNumber, p.Number)
		}

		party, err := repos.Parties().Upsert(ctx, domain.Party{
			ID:                   s.newID(),
			Name:                 req.Name,
			IdentificationNumber: req.IdentificationNumber,
			Kind:                 req.Kind,
			CreatedAt:            now,
		})
		if err != nil {
			return fmt.Errorf("saving party: %w", err)
		}
		// Identities are shared across processes and never rewritten here.
		if !strings.EqualFold(party.Name, req.Name) {
			return domain.Errorf(domain.ErrValidation, "identification number %s is registered to %q", req.IdentificationNumber, party.Name)
		}
		if explicitKind && party.Kind != req.Kind {
			return domain.Errorf(domain.ErrValidation, "identification number %s is registered as %s", req.IdentificationNumber, party.Kind)
		}
		pp := domain.ProcessParty{
			ProcessID: p.ID,
			Party:     *party,
			Role:      req.Role,
			AddedAt:   now,
			AddedBy:   actor.ID,
		}
		// The storage constraint catches a concurrent add that passed the check.
		if err := repos.Parties().Attach(ctx, pp); err != nil {
			return err
		}
		attached = &pp
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("attached party %s to process %s as %s", attached.Party.ID, attached.ProcessID, attached.Role)
	s.emit(ctx, auditEvent(actor, domain.AuditActionCreate, domain.AuditEntityParty, attached.Party.ID, map[string]string{
		"process_id": attached.ProcessID,
		"role":       attached.Role.String(),
	}))
	return attached, nil
}

// Remove detaches a party from an open process owned by the actor.
func (s *PartyService) Remove(ctx context.Context, actor domain.Actor, processID, partyID string) (string, error) {
	if s.tx == nil {
		return "", domain.ErrNotImplemented
	}
	var number string
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		p, err := editableProcess(ctx, repos, actor, processID)
		if err != nil {
			return err
		}
		number = p.Number
		return repos.Parties().Detach(ctx, processID, partyID)
	})
	if err != nil {
		return "", err
	}

	s.emit(ctx, auditEvent(actor, domain.AuditActionDelete, domain.AuditEntityParty, partyID, map[string]string{
		"process_id": processID,
	}))
	return fmt.Sprintf("party %s removed from process %s", partyID, number), nil
}

// List returns the parties of a process. Supervisors may list any process.
func (s *PartyService) List(ctx context.Context, actor domain.Actor, processID string) ([]domain.ProcessParty, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var parties []domain.ProcessParty
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		if !actor.IsSupervisor() {
			if _, err := ownedProcess(ctx, repos, actor, processID); err != nil {
				return err
			}
		} else if _, err := repos.Processes().Get(ctx, processID); err != nil {
			return err
		}
		list, err := repos.Parties().ListByProcess(ctx, processID)
		if err != nil {
			return fmt.Errorf("listing parties: %w", err)
		}
		parties = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parties, nil
}

// editableProcess loads a process the actor owns whose parties may change.
func editableProcess(ctx context.Context, repos driven.Repositories, actor domain.Actor, id string) (*domain.Process, error) {
	p, err := ownedProcess(ctx, repos, actor, id)
	if err != nil {
		return nil, err
	}
	if p.IsClosed() {
		return nil, domain.Errorf(domain.ErrInvalidState, "process %s is closed", p.Number)
	}
	return p, nil
}
