package domain

import "time"

// AuditAction is the kind of mutation recorded.
type AuditAction string

// Audit actions.
const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditEntity names the aggregate an event refers to.
type AuditEntity string

// Audited entities.
const (
	AuditEntityProcess  AuditEntity = "process"
	AuditEntityMeeting  AuditEntity = "meeting"
	AuditEntityDocument AuditEntity = "document"
	AuditEntityParty    AuditEntity = "party"
	AuditEntityParecer  AuditEntity = "parecer"
)

// AuditEvent is emitted once per successful mutation. It is transport
// agnostic so sinks can persist or publish it.
type AuditEvent struct {
	ID        string
	Timestamp time.Time
	ActorID   string
	Action    AuditAction
	Entity    AuditEntity
	EntityID  string
	Details   map[string]string
}

// AuditFilter narrows an audit log query. Zero values match everything.
type AuditFilter struct {
	Entity   AuditEntity
	EntityID string
	Limit    int
}
