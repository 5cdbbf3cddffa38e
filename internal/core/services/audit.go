package services

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// Ensure AuditService implements the interface.
var _ driving.AuditService = (*AuditService)(nil)

// defaultAuditLimit caps listings that do not ask for a limit.
const defaultAuditLimit = 50

// AuditService reads the persisted audit log.
type AuditService struct {
	log driven.AuditLog
}

// NewAuditService creates a new audit service. log may be nil.
func NewAuditService(log driven.AuditLog) *AuditService {
	return &AuditService{log: log}
}

// List returns matching events, most recent first.
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	if s.log == nil {
		return nil, domain.ErrNotImplemented
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditLimit
	}
	return s.log.List(ctx, filter)
}
