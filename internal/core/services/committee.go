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

// Ensure CommitteeService implements the interface.
var _ driving.CommitteeService = (*CommitteeService)(nil)

// CommitteeService reads committees and imports rosters maintained elsewhere.
type CommitteeService struct {
	tx driven.Transactor
}

// NewCommitteeService creates a new committee service.
func NewCommitteeService(tx driven.Transactor) *CommitteeService {
	return &CommitteeService{tx: tx}
}

// Import validates every committee first, then saves them all in one
// transaction.
func (s *CommitteeService) Import(ctx context.Context, committees []domain.Committee) (int, error) {
	if s.tx == nil {
		return 0, domain.ErrNotImplemented
	}
	seen := make(map[string]bool, len(committees))
	for i := range committees {
		c := &committees[i]
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" || c.Name == "" {
			return 0, domain.Errorf(domain.ErrValidation, "committee %d: id and name are required", i+1)
		}
		if !c.State.IsValid() {
			return 0, domain.Errorf(domain.ErrValidation, "committee %s: unknown state %q", c.ID, c.State)
		}
		if seen[c.ID] {
			return 0, domain.Errorf(domain.ErrValidation, "committee %s listed twice", c.ID)
		}
		seen[c.ID] = true
		for _, m := range c.Members {
			if strings.TrimSpace(m.EmployeeID) == "" {
				return 0, domain.Errorf(domain.ErrValidation, "committee %s: member without employee id", c.ID)
			}
		}
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		for _, c := range committees {
			if err := repos.Committees().Save(ctx, c); err != nil {
				return fmt.Errorf("saving committee %s: %w", c.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Info("imported %d committees", len(committees))
	return len(committees), nil
}

// Get retrieves a committee by ID.
func (s *CommitteeService) Get(ctx context.Context, id string) (*domain.Committee, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var found *domain.Committee
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		c, err := repos.Committees().Get(ctx, id)
		found = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List returns all committees.
func (s *CommitteeService) List(ctx context.Context) ([]domain.Committee, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var list []domain.Committee
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		var err error
		list, err = repos.Committees().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
