package httpapi

import (
	"net/http"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func (s *Server) registerMeetingRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /reuniao/agendar", s.handleScheduleMeeting)
	mux.HandleFunc("PATCH /reuniao/editar/{id}", s.handleEditMeeting)
	mux.HandleFunc("PATCH /reuniao/reagendar/{id}", s.handleRescheduleMeeting)
	mux.HandleFunc("POST /reuniao/anexardocumento", s.handleAttachAta)
	mux.HandleFunc("GET /reuniao/{id}", s.handleGetMeeting)
	mux.HandleFunc("GET /reuniao/process/{processId}", s.handleListMeetings)
}

// ScheduleMeetingRequest is the body of POST /reuniao/agendar.
type ScheduleMeetingRequest struct {
	ProcessID   string `json:"processId"`
	CommitteeID string `json:"committeeId"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// EditMeetingRequest is the body of PATCH /reuniao/editar/{id}.
type EditMeetingRequest struct {
	State string `json:"state"`
}

// RescheduleMeetingRequest is the body of PATCH /reuniao/reagendar/{id}.
// An empty location keeps the current one.
type RescheduleMeetingRequest struct {
	Date     string `json:"date"`
	Location string `json:"location,omitempty"`
}

func (s *Server) handleScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Meeting == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	var req ScheduleMeetingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	at, err := parseTime("date", req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	m, err := s.ports.Meeting.Schedule(r.Context(), actor, domain.ScheduleRequest{
		ProcessID:   req.ProcessID,
		CommitteeID: req.CommitteeID,
		At:          at,
		Location:    req.Location,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toMeetingResponse(m))
}

func (s *Server) handleEditMeeting(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Meeting == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	var req EditMeetingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	tr, err := s.ports.Meeting.EditState(r.Context(), actor, r.PathValue("id"), domain.MeetingState(req.State))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, MeetingTransitionResponse{
		Meeting: toMeetingResponse(&tr.Meeting),
		Changed: tr.Changed,
		Message: tr.Message,
	})
}

func (s *Server) handleRescheduleMeeting(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Meeting == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	var req RescheduleMeetingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	at, err := parseTime("date", req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	m, err := s.ports.Meeting.Reschedule(r.Context(), actor, r.PathValue("id"), at, req.Location)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

func (s *Server) handleAttachAta(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Document == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	if err := s.parseMultipart(w, r); err != nil {
		s.writeError(w, r, err)
		return
	}
	title, description, docType, file, err := uploadForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	m, err := s.ports.Document.AttachAta(r.Context(), actor, r.FormValue("meetingId"), domain.AtaUpload{
		Title:       title,
		Description: description,
		Type:        docType,
		File:        file,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toMeetingResponse(m))
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Meeting == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	m, err := s.ports.Meeting.Get(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Meeting == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	meetings, err := s.ports.Meeting.ListByProcess(r.Context(), actor, r.PathValue("processId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := make([]MeetingResponse, len(meetings))
	for i := range meetings {
		resp[i] = toMeetingResponse(&meetings[i])
	}
	s.writeJSON(w, http.StatusOK, resp)
}
