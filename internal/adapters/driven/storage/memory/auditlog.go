package memory

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure AuditLog implements the interface.
var _ driven.AuditLog = (*AuditLog)(nil)

// ErrSinkDown is returned by a failing AuditLog.
var ErrSinkDown = errors.New("audit sink unavailable")

// AuditLog is an in-memory implementation of driven.AuditLog for testing.
type AuditLog struct {
	mu     sync.RWMutex
	events []domain.AuditEvent
	fail   bool
}

// NewAuditLog creates a new in-memory audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// SetFailing makes every following Emit fail with ErrSinkDown.
func (l *AuditLog) SetFailing(fail bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail = fail
}

// Emit appends an event.
func (l *AuditLog) Emit(_ context.Context, event domain.AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return ErrSinkDown
	}
	event.Details = maps.Clone(event.Details)
	l.events = append(l.events, event)
	return nil
}

// List returns matching events, most recent first.
func (l *AuditLog) List(_ context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.AuditEvent
	for i := len(l.events) - 1; i >= 0; i-- {
		ev := l.events[i]
		if filter.Entity != "" && ev.Entity != filter.Entity {
			continue
		}
		if filter.EntityID != "" && ev.EntityID != filter.EntityID {
			continue
		}
		out = append(out, ev)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// Events returns every event in emission order.
func (l *AuditLog) Events() []domain.AuditEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.AuditEvent, len(l.events))
	copy(out, l.events)
	return out
}
