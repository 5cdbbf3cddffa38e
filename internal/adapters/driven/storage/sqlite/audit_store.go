package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// ==================== Audit Log ====================

// auditLog implements driven.AuditLog. It writes outside the mutation's
// transaction because events are emitted after commit.
type auditLog struct {
	db querier
}

var _ driven.AuditLog = (*auditLog)(nil)

// Emit appends an event.
func (s *auditLog) Emit(ctx context.Context, event domain.AuditEvent) error {
	details := "{}"
	if len(event.Details) > 0 {
		raw, err := json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("marshalling audit details: %w", err)
		}
		details = string(raw)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, timestamp, actor_id, action, entity, entity_id, details)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.ID, formatTime(event.Timestamp), event.ActorID, string(event.Action),
		string(event.Entity), event.EntityID, details)
	if err != nil {
		return mapConstraint(err, "audit event "+event.ID)
	}
	return nil
}

// List returns matching events, most recent first.
func (s *auditLog) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Entity != "" {
		conds = append(conds, "entity = ?")
		args = append(args, string(filter.Entity))
	}
	if filter.EntityID != "" {
		conds = append(conds, "entity_id = ?")
		args = append(args, filter.EntityID)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}

	// rowid breaks ties between events sharing a timestamp.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, actor_id, action, entity, entity_id, details
		FROM audit_events`+where+`
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditEvent
	for rows.Next() {
		var (
			ev                      domain.AuditEvent
			ts, action, entity, raw string
		)
		if err := rows.Scan(&ev.ID, &ts, &ev.ActorID, &action, &entity, &ev.EntityID, &raw); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		if ev.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		ev.Action = domain.AuditAction(action)
		ev.Entity = domain.AuditEntity(entity)
		if err := json.Unmarshal([]byte(raw), &ev.Details); err != nil {
			return nil, fmt.Errorf("unmarshalling audit details: %w", err)
		}
		if len(ev.Details) == 0 {
			ev.Details = nil
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
