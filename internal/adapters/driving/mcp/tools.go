package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// ActorInput identifies who a tool call acts for. Empty fields fall back
// to the server's default actor. The server does not authenticate these
// fields: the upstream caller that owns the MCP session must set them.
type ActorInput struct {
	ActorID string `json:"actor_id,omitempty" jsonschema:"employee id to act as (defaults to the server actor). Trusted input: not authenticated by this server, the upstream caller must set it"`
	Role    string `json:"role,omitempty" jsonschema:"owner or supervisor. Trusted input: not authenticated by this server, the upstream caller must set it"`
}

// RegisterProcessInput is the input schema for the register_process tool.
type RegisterProcessInput struct {
	ActorInput
	Subject string `json:"subject" jsonschema:"what the process is about"`
	Type    string `json:"type" jsonschema:"Disciplinar, Trabalhista, Administrativo, Civil or Criminal"`
}

// ArchiveProcessInput is the input schema for the archive_process tool.
type ArchiveProcessInput struct {
	ActorInput
	ProcessID string `json:"process_id" jsonschema:"id of the process to archive"`
	Parecer   string `json:"parecer" jsonschema:"final opinion recorded with the archive"`
}

// ListProcessesInput is the input schema for the list_processes tool.
type ListProcessesInput struct {
	ActorInput
	Page     int `json:"page,omitempty" jsonschema:"page number starting at 1"`
	PageSize int `json:"page_size,omitempty" jsonschema:"results per page (default 20, max 100)"`
}

// ProcessOutput is a process as returned by the tools.
type ProcessOutput struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Subject     string `json:"subject"`
	Type        string `json:"type"`
	State       string `json:"state"`
	Responsible string `json:"responsible"`
	OpenedAt    string `json:"opened_at"`
	ClosedAt    string `json:"closed_at,omitempty"`
}

// ListProcessesOutput is the output schema for the list_processes tool.
type ListProcessesOutput struct {
	Processes []ProcessOutput `json:"processes"`
	Total     int             `json:"total"`
	Page      int             `json:"page"`
	PageSize  int             `json:"page_size"`
}

// ScheduleMeetingInput is the input schema for the schedule_meeting tool.
type ScheduleMeetingInput struct {
	ActorInput
	ProcessID   string `json:"process_id" jsonschema:"process the meeting belongs to"`
	CommitteeID string `json:"committee_id" jsonschema:"approved committee that will meet"`
	At          string `json:"at" jsonschema:"meeting time in RFC 3339 format"`
	Location    string `json:"location" jsonschema:"where the meeting takes place"`
}

// AdvanceMeetingInput is the input schema for the advance_meeting tool.
type AdvanceMeetingInput struct {
	ActorInput
	MeetingID string `json:"meeting_id" jsonschema:"id of the meeting"`
	State     string `json:"state" jsonschema:"requested state: in_progress, concluded or cancelled"`
}

// MeetingOutput is a meeting as returned by the tools.
type MeetingOutput struct {
	ID          string `json:"id"`
	ProcessID   string `json:"process_id"`
	CommitteeID string `json:"committee_id"`
	ScheduledAt string `json:"scheduled_at"`
	Location    string `json:"location,omitempty"`
	State       string `json:"state"`
}

// AdvanceMeetingOutput is the output schema for the advance_meeting tool.
type AdvanceMeetingOutput struct {
	MeetingOutput
	Changed bool   `json:"changed"`
	Message string `json:"message,omitempty"`
}

// AddPartyInput is the input schema for the add_party tool.
type AddPartyInput struct {
	ActorInput
	ProcessID            string `json:"process_id" jsonschema:"process to attach the party to"`
	Name                 string `json:"name" jsonschema:"full name of the party"`
	IdentificationNumber string `json:"identification_number" jsonschema:"CPF, CNPJ or employee number"`
	Kind                 string `json:"kind,omitempty" jsonschema:"external (default) or employee"`
	Role                 string `json:"role" jsonschema:"author, defendant, witness, expert or other"`
}

// PartyOutput is an attached party as returned by the tools.
type PartyOutput struct {
	PartyID              string `json:"party_id"`
	ProcessID            string `json:"process_id"`
	Name                 string `json:"name"`
	IdentificationNumber string `json:"identification_number"`
	Role                 string `json:"role"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "register_process",
		Description: "Open a new process owned by the acting employee",
	}, s.handleRegisterProcess)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "archive_process",
		Description: "Archive a process and record its final parecer",
	}, s.handleArchiveProcess)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_processes",
		Description: "List the processes visible to the acting employee, newest first",
	}, s.handleListProcesses)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "schedule_meeting",
		Description: "Schedule a committee meeting for a process",
	}, s.handleScheduleMeeting)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "advance_meeting",
		Description: "Move a meeting forward one step or cancel it",
	}, s.handleAdvanceMeeting)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_party",
		Description: "Attach a party to a process with a role",
	}, s.handleAddParty)
}

func (s *Server) handleRegisterProcess(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegisterProcessInput,
) (*mcp.CallToolResult, ProcessOutput, error) {
	actor, err := s.actor(input.ActorInput)
	if err != nil {
		return nil, ProcessOutput{}, err
	}
	processType, err := domain.ParseProcessType(input.Type)
	if err != nil {
		return nil, ProcessOutput{}, err
	}

	p, err := s.ports.Process.Register(ctx, actor, input.Subject, processType)
	if err != nil {
		return nil, ProcessOutput{}, err
	}
	return nil, toProcessOutput(p), nil
}

func (s *Server) handleArchiveProcess(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ArchiveProcessInput,
) (*mcp.CallToolResult, ProcessOutput, error) {
	actor, err := s.actor(input.ActorInput)
	if err != nil {
		return nil, ProcessOutput{}, err
	}

	p, err := s.ports.Process.Archive(ctx, actor, input.ProcessID, domain.ArchiveRequest{ParecerText: input.Parecer})
	if err != nil {
		return nil, ProcessOutput{}, err
	}
	return nil, toProcessOutput(p), nil
}

func (s *Server) handleListProcesses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListProcessesInput,
) (*mcp.CallToolResult, ListProcessesOutput, error) {
	actor, err := s.actor(input.ActorInput)
	if err != nil {
		return nil, ListProcessesOutput{}, err
	}

	page, err := s.ports.Process.List(ctx, actor, domain.PageRequest{Page: input.Page, PageSize: input.PageSize})
	if err != nil {
		return nil, ListProcessesOutput{}, err
	}

	output := ListProcessesOutput{
		Processes: make([]ProcessOutput, len(page.Items)),
		Total:     page.Total,
		Page:      page.Page,
		PageSize:  page.PageSize,
	}
	for i := range page.Items {
		output.Processes[i] = toProcessOutput(&page.Items[i])
	}
	return nil, output, nil
}

func (s *Server) handleScheduleMeeting(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScheduleMeetingInput,
) (*mcp.CallToolResult, MeetingOutput, error) {
	if s.ports.Meeting == nil {
		return nil, MeetingOutput{}, domain.ErrNotImplemented
	}
	actor, err := s.actor(input.ActorInput)
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	at, err := time.Parse(time.RFC3339, input.At)
	if err != nil {
		return nil, MeetingOutput{}, domain.Errorf(domain.ErrValidation, "meeting time %q is not RFC 3339", input.At)
	}

	m, err := s.ports.Meeting.Schedule(ctx, actor, domain.ScheduleRequest{
		ProcessID:   input.ProcessID,
		CommitteeID: input.CommitteeID,
		At:          at,
		Location:    input.Location,
	})
	if err != nil {
		return nil, MeetingOutput{}, err
	}
	return nil, toMeetingOutput(m), nil
}

func (s *Server) handleAdvanceMeeting(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AdvanceMeetingInput,
) (*mcp.CallToolResult, AdvanceMeetingOutput, error) {
	if s.ports.Meeting == nil {
		return nil, AdvanceMeetingOutput{}, domain.ErrNotImplemented
	}
	actor, err := s.actor(input.ActorInput)
	if err != nil {
		return nil, AdvanceMeetingOutput{}, err
	}

	tr, err := s.ports.Meeting.EditState(ctx, actor, input.MeetingID, domain.MeetingState(input.State))
	if err != nil {
		return nil, AdvanceMeetingOutput{}, err
	}
	return nil, AdvanceMeetingOutput{
		MeetingOutput: toMeetingOutput(&tr.Meeting),
		Changed:       tr.Changed,
		Message:       tr.Message,
	}, nil
}

func (s *Server) handleAddParty(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddPartyInput,
) (*mcp.CallToolResult, PartyOutput, error) {
	if s.ports.Party == nil {
		return nil, PartyOutput{}, domain.ErrNotImplemented
	}
	actor, err := s.actor(input.ActorInput)
	if err != nil {
		return nil, PartyOutput{}, err
	}

	pp, err := s.ports.Party.Add(ctx, actor, domain.AddPartyRequest{
		ProcessID:            input.ProcessID,
		Name:                 input.Name,
		IdentificationNumber: input.IdentificationNumber,
		Kind:                 domain.PartyKind(input.Kind),
		Role:                 domain.PartyRole(input.Role),
	})
	if err != nil {
		return nil, PartyOutput{}, err
	}
	return nil, PartyOutput{
		PartyID:              pp.Party.ID,
		ProcessID:            pp.ProcessID,
		Name:                 pp.Party.Name,
		IdentificationNumber: pp.Party.IdentificationNumber,
		Role:                 pp.Role.String(),
	}, nil
}

// actor resolves the acting employee for a tool call.
func (s *Server) actor(in ActorInput) (domain.Actor, error) {
	actor := s.ports.Actor
	if in.ActorID != "" {
		actor = domain.Actor{ID: in.ActorID, Role: domain.RoleOwner}
	}
	if in.Role != "" {
		actor.Role = domain.Role(in.Role)
	}
	if !actor.Role.IsValid() {
		return domain.Actor{}, domain.Errorf(domain.ErrValidation, "unknown role %q", actor.Role)
	}
	return actor, nil
}

func toProcessOutput(p *domain.Process) ProcessOutput {
	out := ProcessOutput{
		ID:          p.ID,
		Number:      p.Number,
		Subject:     p.Subject,
		Type:        p.Type.String(),
		State:       p.State.String(),
		Responsible: p.ResponsibleID,
		OpenedAt:    p.OpenedAt.Format(time.RFC3339),
	}
	if p.ClosedAt != nil {
		out.ClosedAt = p.ClosedAt.Format(time.RFC3339)
	}
	return out
}

func toMeetingOutput(m *domain.Meeting) MeetingOutput {
	return MeetingOutput{
		ID:          m.ID,
		ProcessID:   m.ProcessID,
		CommitteeID: m.CommitteeID,
		ScheduledAt: m.ScheduledAt.Format(time.RFC3339),
		Location:    m.Location,
		State:       m.State.String(),
	}
}
