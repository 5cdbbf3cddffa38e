package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/logger"
)

// lifecycle holds the collaborators shared by the workflow services.
type lifecycle struct {
	tx      driven.Transactor
	audit   driven.AuditSink
	blobs   driven.BlobStore
	now     func() time.Time
	newID   func() string
	maxSize func() int64
}

func newLifecycle(tx driven.Transactor, blobs driven.BlobStore, audit driven.AuditSink) lifecycle {
	return lifecycle{
		tx:      tx,
		audit:   audit,
		blobs:   blobs,
		now:     time.Now,
		newID:   uuid.NewString,
		maxSize: func() int64 { return domain.DefaultMaxDocumentSize },
	}
}

// SetClock replaces the time source. Used by tests and by deployments that
// pin a timezone.
func (l *lifecycle) SetClock(now func() time.Time) {
	l.now = now
}

// SetMaxDocumentSize sets where the upload ceiling is read from on every call,
// so configuration reloads take effect without rewiring.
func (l *lifecycle) SetMaxDocumentSize(limit func() int64) {
	l.maxSize = limit
}

// emit records events after a successful commit. The mutation already
// happened, so a failing sink is logged and never surfaces to the caller,
// and a caller that goes away after the commit does not lose the event.
func (l *lifecycle) emit(ctx context.Context, events ...domain.AuditEvent) {
	if l.audit == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, ev := range events {
		if ev.ID == "" {
			ev.ID = l.newID()
		}
		if ev.Timestamp.IsZero() {
			ev.Timestamp = l.now()
		}
		if err := l.audit.Emit(ctx, ev); err != nil {
			logger.Warn("audit %s %s %s not recorded: %v", ev.Action, ev.Entity, ev.EntityID, err)
		}
	}
}

// storeUpload writes the payload to the blob store and returns its checksum.
func (l *lifecycle) storeUpload(ctx context.Context, key string, u domain.Upload) (string, error) {
	if l.blobs == nil {
		return "", domain.ErrNotImplemented
	}
	if err := l.blobs.Put(ctx, key, u.Data, domain.PDFContentType); err != nil {
		return "", fmt.Errorf("storing payload: %w", err)
	}
	return checksum(u.Data), nil
}

// discardUpload removes a payload whose metadata never committed.
func (l *lifecycle) discardUpload(ctx context.Context, key string) {
	if l.blobs == nil || key == "" {
		return
	}
	if err := l.blobs.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Warn("orphaned blob %s: %v", key, err)
	}
}

func checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func auditEvent(actor domain.Actor, action domain.AuditAction, entity domain.AuditEntity, id string, details map[string]string) domain.AuditEvent {
	return domain.AuditEvent{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		Details:  details,
	}
}

// ownedProcess loads a process the actor is responsible for.
// A missing process is ErrNotFound, someone else's is ErrForbidden.
func ownedProcess(ctx context.Context, repos driven.Repositories, actor domain.Actor, id string) (*domain.Process, error) {
	p, err := repos.Processes().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actor.ID) {
		return nil, domain.Errorf(domain.ErrForbidden, "process %s is not yours", p.Number)
	}
	return p, nil
}

// ownedProcessHidden is ownedProcess without revealing that other actors'
// processes exist.
func ownedProcessHidden(ctx context.Context, repos driven.Repositories, actor domain.Actor, id string) (*domain.Process, error) {
	p, err := repos.Processes().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actor.ID) {
		return nil, domain.Errorf(domain.ErrNotFound, "process %s", id)
	}
	return p, nil
}

// visibleProcess loads a process the actor may read.
func visibleProcess(ctx context.Context, repos driven.Repositories, actor domain.Actor, id string) (*domain.Process, error) {
	p, err := repos.Processes().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(actor) {
		return nil, domain.Errorf(domain.ErrNotFound, "process %s", id)
	}
	return p, nil
}

func documentKey(processID, documentID string) string {
	return "processes/" + processID + "/documents/" + documentID + ".pdf"
}

func parecerKey(processID, parecerID string) string {
	return "processes/" + processID + "/parecer/" + parecerID + ".pdf"
}
