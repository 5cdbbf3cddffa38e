package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// AuditSink receives audit events after a mutation has committed.
// Sinks are one-way: the core never reads back what it emitted.
type AuditSink interface {
	Emit(ctx context.Context, event domain.AuditEvent) error
}

// AuditLog is an append-only sink that can also be queried.
type AuditLog interface {
	AuditSink

	// List returns events matching filter, most recent first.
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error)
}
