package httpapi

import (
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// ProcessResponse is the JSON form of a process.
type ProcessResponse struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	Subject       string     `json:"subject"`
	Type          string     `json:"type"`
	State         string     `json:"state"`
	OpenedAt      time.Time  `json:"openedAt"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
	ResponsibleID string     `json:"responsibleId"`
	ParecerID     *string    `json:"parecerId,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ProcessPageResponse is the body of GET /process/list.
type ProcessPageResponse struct {
	Items    []ProcessResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// MeetingResponse is the JSON form of a meeting.
type MeetingResponse struct {
	ID            string    `json:"id"`
	ProcessID     string    `json:"processId"`
	CommitteeID   string    `json:"committeeId"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Location      string    `json:"location"`
	State         string    `json:"state"`
	AtaDocumentID *string   `json:"ataDocumentId,omitempty"`
}

// MeetingTransitionResponse is the body of PATCH /reuniao/editar/{id}.
type MeetingTransitionResponse struct {
	Meeting MeetingResponse `json:"meeting"`
	Changed bool            `json:"changed"`
	Message string          `json:"message,omitempty"`
}

// DocumentResponse is the JSON form of a document's metadata.
type DocumentResponse struct {
	ID          string    `json:"id"`
	ProcessID   string    `json:"processId"`
	MeetingID   *string   `json:"meetingId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Checksum    string    `json:"checksum"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PartyResponse is the JSON form of a party attached to a process.
type PartyResponse struct {
	ProcessID            string    `json:"processId"`
	PartyID              string    `json:"partyId"`
	Name                 string    `json:"name"`
	IdentificationNumber string    `json:"identificationNumber"`
	Kind                 string    `json:"kind"`
	Role                 string    `json:"role"`
	AddedAt              time.Time `json:"addedAt"`
	AddedBy              string    `json:"addedBy"`
}

func toProcessResponse(p *domain.Process) ProcessResponse {
	return ProcessResponse{
		ID:            p.ID,
		Number:        p.Number,
		Subject:       p.Subject,
		Type:          p.Type.String(),
		State:         p.State.String(),
		OpenedAt:      p.OpenedAt,
		ClosedAt:      p.ClosedAt,
		ResponsibleID: p.ResponsibleID,
		ParecerID:     p.ParecerID,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toMeetingResponse(m *domain.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:            m.ID,
		ProcessID:     m.ProcessID,
		CommitteeID:   m.CommitteeID,
		ScheduledAt:   m.ScheduledAt,
		Location:      m.Location,
		State:         m.State.String(),
		AtaDocumentID: m.AtaDocumentID,
	}
}

func toDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		ProcessID:   d.ProcessID,
		MeetingID:   d.MeetingID,
		Title:       d.Title,
		Description: d.Description,
		Type:        d.Type.String(),
		Filename:    d.Filename,
		ContentType: d.ContentType,
		Size:        d.Size,
		Checksum:    d.Checksum,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func toPartyResponse(pp *domain.ProcessParty) PartyResponse {
	return PartyResponse{
		ProcessID:            pp.ProcessID,
		PartyID:              pp.Party.ID,
		Name:                 pp.Party.Name,
		IdentificationNumber: pp.Party.IdentificationNumber,
		Kind:                 string(pp.Party.Kind),
		Role:                 pp.Role.String(),
		AddedAt:              pp.AddedAt,
		AddedBy:              pp.AddedBy,
	}
}
