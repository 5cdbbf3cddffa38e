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

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService validates and stores documents against processes and
// meetings, then runs the side-effect rules for the attached type.
type DocumentService struct {
	lifecycle
	rules []DocumentSideEffectRule
}

// NewDocumentService creates a new document service with the default rules.
func NewDocumentService(tx driven.Transactor, blobs driven.BlobStore, audit driven.AuditSink) *DocumentService {
	return &DocumentService{
		lifecycle: newLifecycle(tx, blobs, audit),
		rules:     DefaultDocumentRules(),
	}
}

// AddRule registers an extra side-effect rule. Rules run in registration order.
func (s *DocumentService) AddRule(rule DocumentSideEffectRule) {
	s.rules = append(s.rules, rule)
}

// Attach stores a document against a process the actor owns.
func (s *DocumentService) Attach(ctx context.Context, actor domain.Actor, req domain.AttachRequest) (*domain.Document, error) {
	if s.tx == nil || s.blobs == nil {
		return nil, domain.ErrNotImplemented
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.Errorf(domain.ErrValidation, "title is required")
	}
	if !req.Type.IsValid() {
		return nil, domain.Errorf(domain.ErrValidation, "unknown document type %q", req.Type)
	}
	if err := req.File.Validate(s.maxSize()); err != nil {
		return nil, err
	}

	// Refuse early so a doomed request never writes a blob.
	if err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		_, err := attachableProcess(ctx, repos, actor, req.ProcessID)
		return err
	}); err != nil {
		return nil, err
	}

	now := s.now()
	doc := &domain.Document{
		ID:          s.newID(),
		ProcessID:   req.ProcessID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Type:        req.Type,
		Filename:    req.File.Filename,
		ContentType: domain.PDFContentType,
		Size:        req.File.Size(),
		UploadedBy:  actor.ID,
		CreatedAt:   now,
	}
	doc.BlobKey = documentKey(doc.ProcessID, doc.ID)
	sum, err := s.storeUpload(ctx, doc.BlobKey, req.File)
	if err != nil {
		return nil, err
	}
	doc.Checksum = sum

	var ruleEvents []domain.AuditEvent
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		ruleEvents = nil
		if _, err := attachableProcess(ctx, repos, actor, doc.ProcessID); err != nil {
			return err
		}
		if err := repos.Documents().Create(ctx, doc); err != nil {
			return fmt.Errorf("creating document: %w", err)
		}
		for _, rule := range s.rules {
			if !rule.Applies(doc) {
				continue
			}
			events, err := rule.Apply(ctx, repos, actor, doc, now)
			if err != nil {
				return fmt.Errorf("rule %s: %w", rule.Name(), err)
			}
			logger.Debug("rule %s applied to document %s", rule.Name(), doc.ID)
			ruleEvents = append(ruleEvents, events...)
		}
		return nil
	})
	if err != nil {
		s.discardUpload(ctx, doc.BlobKey)
		return nil, err
	}

	events := append([]domain.AuditEvent{
		auditEvent(actor, domain.AuditActionCreate, domain.AuditEntityDocument, doc.ID, map[string]string{
			"process_id": doc.ProcessID,
			"type":       doc.Type.String(),
			"checksum":   doc.Checksum,
		}),
	}, ruleEvents...)
	s.emit(ctx, events...)
	return doc, nil
}

// AttachAta stores minutes for a concluded meeting and links them to it.
func (s *DocumentService) AttachAta(
	ctx context.Context,
	actor domain.Actor,
	meetingID string,
	upload domain.AtaUpload,
) (*domain.Meeting, error) {
	if s.tx == nil || s.blobs == nil {
		return nil, domain.ErrNotImplemented
	}
	if upload.Type != domain.DocumentTypeAta {
		return nil, domain.Errorf(domain.ErrValidation, "meeting documents must be of type %s, got %q", domain.DocumentTypeAta, upload.Type)
	}
	if err := upload.File.Validate(s.maxSize()); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(upload.Title)
	if title == "" {
		title = "Ata"
	}

	var processID string
	if err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		m, err := ataTarget(ctx, repos, meetingID)
		if err != nil {
			return err
		}
		processID = m.ProcessID
		return nil
	}); err != nil {
		return nil, err
	}

	now := s.now()
	doc := &domain.Document{
		ID:          s.newID(),
		ProcessID:   processID,
		MeetingID:   &meetingID,
		Title:       title,
		Description: strings.TrimSpace(upload.Description),
		Type:        domain.DocumentTypeAta,
		Filename:    upload.File.Filename,
		ContentType: domain.PDFContentType,
		Size:        upload.File.Size(),
		UploadedBy:  actor.ID,
		CreatedAt:   now,
	}
	doc.BlobKey = documentKey(processID, doc.ID)
	sum, err := s.storeUpload(ctx, doc.BlobKey, upload.File)
	if err != nil {
		return nil, err
	}
	doc.Checksum = sum

	var linked *domain.Meeting
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		m, err := ataTarget(ctx, repos, meetingID)
		if err != nil {
			return err
		}
		if err := repos.Documents().Create(ctx, doc); err != nil {
			return fmt.Errorf("creating document: %w", err)
		}
		m.AtaDocumentID = &doc.ID
		m.UpdatedAt = now
		if err := repos.Meetings().Update(ctx, m); err != nil {
			return fmt.Errorf("linking ata: %w", err)
		}
		linked = m
		return nil
	})
	if err != nil {
		s.discardUpload(ctx, doc.BlobKey)
		return nil, err
	}

	logger.Debug("attached ata %s to meeting %s", doc.ID, meetingID)
	s.emit(ctx,
		auditEvent(actor, domain.AuditActionCreate, domain.AuditEntityDocument, doc.ID, map[string]string{
			"process_id": doc.ProcessID,
			"meeting_id": meetingID,
			"type":       doc.Type.String(),
			"checksum":   doc.Checksum,
		}),
		auditEvent(actor, domain.AuditActionUpdate, domain.AuditEntityMeeting, meetingID, map[string]string{
			"ata": doc.ID,
		}),
	)
	return linked, nil
}

// Get retrieves document metadata visible to the actor.
func (s *DocumentService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Document, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var found *domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		doc, err := repos.Documents().Get(ctx, id)
		if err != nil {
			return err
		}
		if _, err := visibleProcess(ctx, repos, actor, doc.ProcessID); err != nil {
			return domain.Errorf(domain.ErrNotFound, "document %s", id)
		}
		found = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByProcess returns the documents of a process visible to the actor.
func (s *DocumentService) ListByProcess(ctx context.Context, actor domain.Actor, processID string) ([]domain.Document, error) {
	if s.tx == nil {
		return nil, domain.ErrNotImplemented
	}
	var docs []domain.Document
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		if _, err := visibleProcess(ctx, repos, actor, processID); err != nil {
			return err
		}
		list, err := repos.Documents().ListByProcess(ctx, processID)
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		docs = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Content returns the stored payload of a document visible to the actor.
func (s *DocumentService) Content(ctx context.Context, actor domain.Actor, id string) ([]byte, error) {
	if s.blobs == nil {
		return nil, domain.ErrNotImplemented
	}
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	data, err := s.blobs.Get(ctx, doc.BlobKey)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", id, err)
	}
	if got := checksum(data); got != doc.Checksum {
		return nil, fmt.Errorf("document %s: checksum mismatch", id)
	}
	return data, nil
}

// attachableProcess loads a process the actor owns that still accepts documents.
func attachableProcess(ctx context.Context, repos driven.Repositories, actor domain.Actor, id string) (*domain.Process, error) {
	p, err := ownedProcess(ctx, repos, actor, id)
	if err != nil {
		return nil, err
	}
	if p.IsArchived() {
		return nil, domain.Errorf(domain.ErrInvalidState, "cannot attach documents to an archived process")
	}
	return p, nil
}

// ataTarget loads a meeting that can receive minutes.
func ataTarget(ctx context.Context, repos driven.Repositories, meetingID string) (*domain.Meeting, error) {
	m, err := repos.Meetings().Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m.State != domain.MeetingStateConcluded {
		return nil, domain.Errorf(domain.ErrInvalidState, "cannot attach minutes to a meeting that has not concluded")
	}
	if m.AtaDocumentID != nil {
		return nil, domain.Errorf(domain.ErrConflict, "meeting already has minutes %s", *m.AtaDocumentID)
	}
	return m, nil
}
