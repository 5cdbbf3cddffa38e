package mcp

import (
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Process registers, archives and lists processes.
	Process driving.ProcessService

	// Meeting schedules and advances committee meetings.
	Meeting driving.MeetingService

	// Document lists documents attached to a process.
	Document driving.DocumentService

	// Party records the people involved in a process.
	Party driving.PartyService

	// Actor is used for tool calls that do not name one.
	Actor domain.Actor
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Process == nil {
		return ErrMissingProcessService
	}
	if p.Actor.ID == "" {
		return ErrMissingActor
	}
	// Meeting, Document and Party are optional; their tools report
	// ErrNotImplemented when unset.
	return nil
}
