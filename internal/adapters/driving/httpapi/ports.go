package httpapi

import (
	"errors"

	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// ErrMissingProcessService is returned when the process service is not provided.
var ErrMissingProcessService = errors.New("httpapi: process service is required")

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Process  driving.ProcessService
	Meeting  driving.MeetingService
	Document driving.DocumentService
	Party    driving.PartyService

	// MaxUploadSize bounds multipart bodies. It is read per request so a
	// reloaded config applies without a restart. Nil means the domain default.
	MaxUploadSize func() int64
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Process == nil {
		return ErrMissingProcessService
	}
	return nil
}
