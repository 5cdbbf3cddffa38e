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

// Ensure ProcessService implements the interface.
var _ driving.ProcessService = (*ProcessService)(nil)

// ProcessService registers, edits and archives processes.
type ProcessService struct {
	lifecycle
}

// NewProcessService creates a new process service.
// blobs may be nil when parecer PDFs are not accepted.
func NewProcessService(tx driven.Transactor, blobs driven.BlobStore, audit driven.AuditSink) *ProcessService {
	return &ProcessService{lifecycle: newLifecycle(tx, blobs, audit)}
}

// Register opens a new process owned by the actor.
func (s *ProcessService) Register(
	ctx context.Context,
	actor domain.Actor,
	subject string,
	processType domain.ProcessType,
) (*domain.Process, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, domain.Errorf(domain.ErrValidation, "subject is required")
	}
	if !processType.IsValid() {
		return nil, domain.Errorf(domain.ErrValidation, "unknown process type %q", processType)
	}

	now := s.now()
	var created *domain.Process
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		seq, err := repos.Processes().NextSequence(ctx, now.Year())
		if err != nil {
			return fmt.Errorf("reserving process sequence: %w", err)
		}
		p := &domain.Process{
			ID:            s.newID(),
			Number:        domain.ProcessNumber(now.Year(), processType, seq),
			Subject:       subject,
			Type:          processType,
			State:         domain.ProcessStateOpen,
			OpenedAt:      now,
			UpdatedAt:     now,
			ResponsibleID: actor.ID,
		}
		if err := repos.Processes().Create(ctx, p); err != nil {
			return fmt.Errorf("creating process: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("registered process %s for %s", created.Number, actor.ID)
	s.emit(ctx, auditEvent(actor, domain.AuditActionCreate, domain.AuditEntityProcess, created.ID, map[string]string{
		"number": created.Number,
		"type":   created.Type.String(),
	}))
	return created, nil
}

// Edit applies the fields present in edit to a process the actor owns.
//
// Archiving through Edit stamps ClosedAt but creates no parecer; Archive is
// the path that records a closing opinion.
func (s *ProcessService) Edit(
	ctx context.Context,
	actor domain.Actor,
	id string,
	edit domain.ProcessEdit,
) (*domain.Process, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	if edit.IsEmpty() {
		return nil, domain.Errorf(domain.ErrValidation, "nothing to update")
	}
	if edit.Subject != nil && strings.TrimSpace(*edit.Subject) == "" {
		return nil, domain.Errorf(domain.ErrValidation, "subject cannot be empty")
	}
	if edit.Type != nil && !edit.Type.IsValid() {
		return nil, domain.Errorf(domain.ErrValidation, "unknown process type %q", *edit.Type)
	}

	now := s.now()
	var (
		updated  *domain.Process
		previous domain.ProcessState
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		p, err := ownedProcessHidden(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		if p.IsArchived() {
			return domain.Errorf(domain.ErrInvalidState, "process %s is archived and cannot be edited", p.Number)
		}
		previous = p.State

		if edit.Subject != nil {
			p.Subject = strings.TrimSpace(*edit.Subject)
		}
		if edit.Type != nil {
			p.Type = *edit.Type
		}
		if edit.State != nil {
			if err := p.MoveTo(*edit.State, now); err != nil {
				return err
			}
		}
		p.UpdatedAt = now

		if err := repos.Processes().Update(ctx, p); err != nil {
			return fmt.Errorf("updating process: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	details := map[string]string{"number": updated.Number}
	if updated.State != previous {
		details["from"] = previous.String()
		details["to"] = updated.State.String()
		if updated.IsArchived() {
			details["parecer"] = "none"
			logger.Warn("process %s archived through edit without a parecer", updated.Number)
		}
	}
	s.emit(ctx, auditEvent(actor, domain.AuditActionUpdate, domain.AuditEntityProcess, updated.ID, details))
	return updated, nil
}

// Archive closes a process and records its parecer in one unit of work.
func (s *ProcessService) Archive(
	ctx context.Context,
	actor domain.Actor,
	id string,
	req domain.ArchiveRequest,
) (*domain.Process, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	text := strings.TrimSpace(req.ParecerText)
	if text == "" {
		return nil, domain.Errorf(domain.ErrValidation, "parecer text is required")
	}
	if req.PDF != nil {
		if err := req.PDF.Validate(s.maxSize()); err != nil {
			return nil, err
		}
	}

	now := s.now()
	parecer := &domain.Parecer{
		ID:        s.newID(),
		ProcessID: id,
		Text:      text,
		EmittedAt: now,
		AuthorID:  actor.ID,
	}

	// Refuse early so a doomed request never writes a blob.
	if err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		p, err := ownedProcessHidden(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		if p.IsArchived() {
			return domain.Errorf(domain.ErrConflict, "process %s is already archived", p.Number)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if req.PDF != nil {
		key := parecerKey(id, parecer.ID)
		sum, err := s.storeUpload(ctx, key, *req.PDF)
		if err != nil {
			return nil, err
		}
		parecer.BlobKey = key
		parecer.Filename = req.PDF.Filename
		parecer.Size = req.PDF.Size()
		parecer.Checksum = sum
	}

	var archived *domain.Process
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		p, err := ownedProcessHidden(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		if err := p.Archive(now); err != nil {
			return err
		}
		if err := repos.Pareceres().Create(ctx, parecer); err != nil {
			return fmt.Errorf("creating parecer: %w", err)
		}
		p.ParecerID = &parecer.ID
		if err := repos.Processes().Update(ctx, p); err != nil {
			return fmt.Errorf("archiving process: %w", err)
		}
		archived = p
		return nil
	})
	if err != nil {
		s.discardUpload(ctx, parecer.BlobKey)
		return nil, err
	}

	logger.Debug("archived process %s with parecer %s", archived.Number, parecer.ID)
	s.emit(ctx,
		auditEvent(actor, domain.AuditActionCreate, domain.AuditEntityParecer, parecer.ID, map[string]string{
			"process_id": archived.ID,
		}),
		auditEvent(actor, domain.AuditActionUpdate, domain.AuditEntityProcess, archived.ID, map[string]string{
			"number":  archived.Number,
			"to":      domain.ProcessStateArchived.String(),
			"parecer": parecer.ID,
		}),
	)
	return archived, nil
}

// Get retrieves a process visible to the actor.
func (s *ProcessService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Process, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var found *domain.Process
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		p, err := visibleProcess(ctx, repos, actor, id)
		found = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List returns one page of the processes visible to the actor.
// Supervisors see every process; everyone else sees their own.
func (s *ProcessService) List(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.ProcessPage, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	page = page.Normalize()
	filter := driven.ProcessFilter{Offset: page.Offset(), Limit: page.PageSize}
	if !actor.IsSupervisor() {
		filter.ResponsibleID = actor.ID
	}

	result := &domain.ProcessPage{Page: page.Page, PageSize: page.PageSize}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		items, total, err := repos.Processes().List(ctx, filter)
		if err != nil {
			return fmt.Errorf("listing processes: %w", err)
		}
		result.Items = items
		result.Total = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Parecer retrieves the closing opinion of a process visible to the actor.
func (s *ProcessService) Parecer(ctx context.Context, actor domain.Actor, processID string) (*domain.Parecer, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var found *domain.Parecer
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		if _, err := visibleProcess(ctx, repos, actor, processID); err != nil {
			return err
		}
		p, err := repos.Pareceres().GetByProcess(ctx, processID)
		found = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
