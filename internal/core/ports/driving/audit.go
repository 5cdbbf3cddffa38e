package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// AuditService reads the audit history.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error)
}
