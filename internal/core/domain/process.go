package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProcessType tags the legal area of a process.
type ProcessType string

// Available process types. The values appear verbatim in process numbers.
const (
	ProcessTypeDisciplinary   ProcessType = "Disciplinar"
	ProcessTypeLabor          ProcessType = "Trabalhista"
	ProcessTypeAdministrative ProcessType = "Administrativo"
	ProcessTypeCivil          ProcessType = "Civil"
	ProcessTypeCriminal       ProcessType = "Criminal"
)

// ProcessTypes lists every recognised process type.
func ProcessTypes() []ProcessType {
	return []ProcessType{
		ProcessTypeDisciplinary,
		ProcessTypeLabor,
		ProcessTypeAdministrative,
		ProcessTypeCivil,
		ProcessTypeCriminal,
	}
}

// IsValid returns true if the process type is recognised.
func (t ProcessType) IsValid() bool {
	for _, known := range ProcessTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (t ProcessType) String() string {
	return string(t)
}

// ParseProcessType matches s case-insensitively against the known types.
func ParseProcessType(s string) (ProcessType, error) {
	for _, known := range ProcessTypes() {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", Errorf(ErrValidation, "unknown process type %q", s)
}

// ProcessState is the lifecycle state of a process.
type ProcessState string

// Process states. Archived is terminal.
const (
	ProcessStateOpen       ProcessState = "open"
	ProcessStateInProgress ProcessState = "in_progress"
	ProcessStateArchived   ProcessState = "archived"
)

// IsValid returns true if the process state is recognised.
func (s ProcessState) IsValid() bool {
	switch s {
	case ProcessStateOpen, ProcessStateInProgress, ProcessStateArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ProcessState) String() string {
	return string(s)
}

// IsTerminal reports whether no transition may leave s.
func (s ProcessState) IsTerminal() bool {
	return s == ProcessStateArchived
}

// CanTransitionTo returns true if the process may move from s to target.
// Staying in the same non-terminal state is allowed.
func (s ProcessState) CanTransitionTo(target ProcessState) bool {
	switch s {
	case ProcessStateOpen:
		return target == ProcessStateOpen || target == ProcessStateInProgress || target == ProcessStateArchived
	case ProcessStateInProgress:
		return target == ProcessStateInProgress || target == ProcessStateArchived
	case ProcessStateArchived:
		return false
	default:
		return false
	}
}

// Process is a legal or disciplinary case.
type Process struct {
	// ID is the unique identifier for the process.
	ID string

	// Number is the human-readable process number, immutable after creation.
	Number string

	// Subject describes the matter.
	Subject string

	// Type is the legal area.
	Type ProcessType

	// State is the lifecycle state.
	State ProcessState

	// OpenedAt is when the process was registered.
	OpenedAt time.Time

	// ClosedAt is set if and only if State is archived.
	ClosedAt *time.Time

	// ResponsibleID is the owning actor; only they may mutate the process.
	ResponsibleID string

	// ParecerID links the closing opinion, when archived through Archive.
	ParecerID *string

	// UpdatedAt is when the process was last changed.
	UpdatedAt time.Time
}

// IsArchived reports whether the process reached its terminal state.
func (p *Process) IsArchived() bool {
	return p.State == ProcessStateArchived
}

// IsClosed reports whether the process has a closing timestamp.
func (p *Process) IsClosed() bool {
	return p.ClosedAt != nil
}

// OwnedBy reports whether actorID is the responsible actor.
func (p *Process) OwnedBy(actorID string) bool {
	return p.ResponsibleID == actorID
}

// VisibleTo reports whether the actor may read the process.
func (p *Process) VisibleTo(actor Actor) bool {
	return actor.IsSupervisor() || p.OwnedBy(actor.ID)
}

// Archive moves the process to its terminal state and stamps ClosedAt.
func (p *Process) Archive(at time.Time) error {
	if p.IsArchived() {
		return Errorf(ErrConflict, "process %s is already archived", p.Number)
	}
	closed := at
	p.State = ProcessStateArchived
	p.ClosedAt = &closed
	p.UpdatedAt = at
	return nil
}

// MoveTo applies a requested state change, keeping ClosedAt consistent.
func (p *Process) MoveTo(target ProcessState, at time.Time) error {
	if !target.IsValid() {
		return Errorf(ErrValidation, "unknown process state %q", target)
	}
	if !p.State.CanTransitionTo(target) {
		return Errorf(ErrInvalidState, "process cannot move from %s to %s", p.State, target)
	}
	if target == ProcessStateArchived {
		return p.Archive(at)
	}
	p.State = target
	p.UpdatedAt = at
	return nil
}

// ProcessNumber formats the yearly process number, e.g. 2025-Disciplinar-000000000.
func ProcessNumber(year int, t ProcessType, sequence int64) string {
	return fmt.Sprintf("%d-%s-%09d", year, t, sequence)
}

// ProcessEdit carries the optional fields of a partial process update.
type ProcessEdit struct {
	Subject *string
	Type    *ProcessType
	State   *ProcessState
}

// IsEmpty reports whether no field was supplied.
func (e ProcessEdit) IsEmpty() bool {
	return e.Subject == nil && e.Type == nil && e.State == nil
}

// PageRequest asks for one page of a listing. Page is 1-based.
type PageRequest struct {
	Page     int
	PageSize int
}

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize fills defaults and clamps the page size.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset returns the zero-based index of the first item.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// ProcessPage is one page of processes plus the total count.
type ProcessPage struct {
	Items    []Process
	Total    int
	Page     int
	PageSize int
}
