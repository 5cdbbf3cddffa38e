package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// DocumentSideEffectRule reacts to a document being attached. Rules run
// inside the attachment transaction, so a failing rule rolls back the
// document as well.
type DocumentSideEffectRule interface {
	// Name identifies the rule in logs and audit details.
	Name() string

	// Applies reports whether the rule reacts to doc.
	Applies(doc *domain.Document) bool

	// Apply performs the side effect and returns the audit events to emit
	// once the transaction commits.
	Apply(ctx context.Context, repos driven.Repositories, actor domain.Actor, doc *domain.Document, at time.Time) ([]domain.AuditEvent, error)
}

// ArchiveOnDecisionRule archives the owning process when a Decisão is
// attached. It creates no parecer.
type ArchiveOnDecisionRule struct{}

// Name implements DocumentSideEffectRule.
func (ArchiveOnDecisionRule) Name() string {
	return "archive-on-decision"
}

// Applies implements DocumentSideEffectRule.
func (ArchiveOnDecisionRule) Applies(doc *domain.Document) bool {
	return doc.Type == domain.DocumentTypeDecisao
}

// Apply implements DocumentSideEffectRule.
func (r ArchiveOnDecisionRule) Apply(
	ctx context.Context,
	repos driven.Repositories,
	actor domain.Actor,
	doc *domain.Document,
	at time.Time,
) ([]domain.AuditEvent, error) {
	p, err := repos.Processes().Get(ctx, doc.ProcessID)
	if err != nil {
		return nil, err
	}
	if p.IsArchived() {
		return nil, domain.Errorf(domain.ErrInvalidState, "cannot attach documents to an archived process")
	}
	from := p.State
	if err := p.Archive(at); err != nil {
		return nil, err
	}
	if err := repos.Processes().Update(ctx, p); err != nil {
		return nil, fmt.Errorf("archiving process: %w", err)
	}
	return []domain.AuditEvent{
		auditEvent(actor, domain.AuditActionUpdate, domain.AuditEntityProcess, p.ID, map[string]string{
			"number":   p.Number,
			"from":     from.String(),
			"to":       p.State.String(),
			"rule":     r.Name(),
			"document": doc.ID,
		}),
	}, nil
}

// DefaultDocumentRules returns the rules every DocumentService starts with.
func DefaultDocumentRules() []DocumentSideEffectRule {
	return []DocumentSideEffectRule{ArchiveOnDecisionRule{}}
}
