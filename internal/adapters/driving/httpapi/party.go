package httpapi

import (
	"net/http"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func (s *Server) registerPartyRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /parteenvolvido/add", s.handleAddParty)
	mux.HandleFunc("DELETE /parteenvolvido/remove/{processId}/{partyId}", s.handleRemoveParty)
	mux.HandleFunc("GET /parteenvolvido/list/{processId}", s.handleListParties)
}

// AddPartyRequest is the body of POST /parteenvolvido/add.
type AddPartyRequest struct {
	ProcessID            string `json:"processId"`
	Name                 string `json:"name"`
	IdentificationNumber string `json:"identificationNumber"`
	Kind                 string `json:"kind,omitempty"`
	Role                 string `json:"role"`
}

func (s *Server) handleAddParty(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Party == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	var req AddPartyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	pp, err := s.ports.Party.Add(r.Context(), actor, domain.AddPartyRequest{
		ProcessID:            req.ProcessID,
		Name:                 req.Name,
		IdentificationNumber: req.IdentificationNumber,
		Kind:                 domain.PartyKind(req.Kind),
		Role:                 domain.PartyRole(req.Role),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toPartyResponse(pp))
}

func (s *Server) handleRemoveParty(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Party == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	msg, err := s.ports.Party.Remove(r.Context(), actor, r.PathValue("processId"), r.PathValue("partyId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, http.StatusOK, msg)
}

func (s *Server) handleListParties(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Party == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	parties, err := s.ports.Party.List(r.Context(), actor, r.PathValue("processId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := make([]PartyResponse, len(parties))
	for i := range parties {
		resp[i] = toPartyResponse(&parties[i])
	}
	s.writeJSON(w, http.StatusOK, resp)
}
