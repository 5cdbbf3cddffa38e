// Package domain defines the core business entities for juris.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Process: a legal or disciplinary case and its lifecycle
//   - Meeting: a committee session tied to a process
//   - Document: an immutable PDF attached to a process
//   - Party / ProcessParty: people or entities involved in a process
//   - Parecer: the closing opinion created when a process is archived
//   - AuditEvent: the record emitted after every mutation
//
// The state machines for Process and Meeting live here as pure functions
// so that every adapter and service agrees on what a legal transition is.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
