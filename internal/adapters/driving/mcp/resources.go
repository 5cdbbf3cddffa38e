package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/juris/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Juris resources.
	uriScheme = "juris://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for a process with its meetings, documents and parties.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "processes/{processId}",
		Name:        "process",
		Description: "A process with its meetings, documents and parties",
		MIMEType:    "application/json",
	}, s.handleProcessResource)
}

type processResource struct {
	ProcessOutput
	Meetings  []MeetingOutput `json:"meetings"`
	Documents []documentInfo  `json:"documents"`
	Parties   []PartyOutput   `json:"parties"`
	Parecer   *parecerInfo    `json:"parecer,omitempty"`
}

type documentInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	MeetingID string `json:"meeting_id,omitempty"`
}

type parecerInfo struct {
	Text      string `json:"text"`
	AuthorID  string `json:"author_id"`
	EmittedAt string `json:"emitted_at"`
	HasPDF    bool   `json:"has_pdf"`
}

// handleProcessResource returns a process and everything attached to it.
func (s *Server) handleProcessResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract processId from URI: juris://processes/{processId}
	processID := extractProcessID(req.Params.URI)
	if processID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	actor := s.ports.Actor
	p, err := s.ports.Process.Get(ctx, actor, processID)
	if domain.KindOf(err) == domain.KindNotFound {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting process: %w", err)
	}

	res := processResource{
		ProcessOutput: toProcessOutput(p),
		Meetings:      []MeetingOutput{},
		Documents:     []documentInfo{},
		Parties:       []PartyOutput{},
	}

	if s.ports.Meeting != nil {
		meetings, err := s.ports.Meeting.ListByProcess(ctx, actor, processID)
		if err != nil {
			return nil, fmt.Errorf("listing meetings: %w", err)
		}
		for i := range meetings {
			res.Meetings = append(res.Meetings, toMeetingOutput(&meetings[i]))
		}
	}

	if s.ports.Document != nil {
		docs, err := s.ports.Document.ListByProcess(ctx, actor, processID)
		if err != nil {
			return nil, fmt.Errorf("listing documents: %w", err)
		}
		for _, d := range docs {
			info := documentInfo{
				ID:       d.ID,
				Title:    d.Title,
				Type:     d.Type.String(),
				Filename: d.Filename,
				Size:     d.Size,
			}
			if d.MeetingID != nil {
				info.MeetingID = *d.MeetingID
			}
			res.Documents = append(res.Documents, info)
		}
	}

	if s.ports.Party != nil {
		parties, err := s.ports.Party.List(ctx, actor, processID)
		if err != nil {
			return nil, fmt.Errorf("listing parties: %w", err)
		}
		for _, pp := range parties {
			res.Parties = append(res.Parties, PartyOutput{
				PartyID:              pp.Party.ID,
				ProcessID:            pp.ProcessID,
				Name:                 pp.Party.Name,
				IdentificationNumber: pp.Party.IdentificationNumber,
				Role:                 pp.Role.String(),
			})
		}
	}

	if p.ParecerID != nil {
		parecer, err := s.ports.Process.Parecer(ctx, actor, processID)
		if err != nil {
			return nil, fmt.Errorf("getting parecer: %w", err)
		}
		res.Parecer = &parecerInfo{
			Text:      parecer.Text,
			AuthorID:  parecer.AuthorID,
			EmittedAt: parecer.EmittedAt.Format(time.RFC3339),
			HasPDF:    parecer.HasPDF(),
		}
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling process: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProcessID extracts the process ID from a juris://processes/{id} URI.
func extractProcessID(uri string) string {
	prefix := uriScheme + "processes/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
