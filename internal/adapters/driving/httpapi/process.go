package httpapi

import (
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func (s *Server) registerProcessRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /process/register", s.handleRegisterProcess)
	mux.HandleFunc("PATCH /process/edit/{id}", s.handleEditProcess)
	mux.HandleFunc("POST /process/archive/{id}", s.handleArchiveProcess)
	mux.HandleFunc("GET /process/list", s.handleListProcesses)
	mux.HandleFunc("GET /process/{id}", s.handleGetProcess)
	mux.HandleFunc("GET /process/{id}/parecer", s.handleGetParecer)
}

// RegisterProcessRequest is the body of POST /process/register.
type RegisterProcessRequest struct {
	Subject string `json:"subject"`
	Type    string `json:"type"`
}

// EditProcessRequest is the body of PATCH /process/edit/{id}. Absent fields
// are left unchanged.
type EditProcessRequest struct {
	Subject *string `json:"subject,omitempty"`
	Type    *string `json:"type,omitempty"`
	State   *string `json:"state,omitempty"`
}

// ArchiveProcessRequest is the JSON body of POST /process/archive/{id}.
// Multipart requests carry the same field plus an optional PDF in "file".
type ArchiveProcessRequest struct {
	Parecer string `json:"parecer"`
}

// ParecerResponse is the body of GET /process/{id}/parecer.
type ParecerResponse struct {
	ID        string `json:"id"`
	ProcessID string `json:"processId"`
	Text      string `json:"text"`
	AuthorID  string `json:"authorId"`
	EmittedAt string `json:"emittedAt"`
	Filename  string `json:"filename,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Checksum  string `json:"checksum,omitempty"`
}

func (s *Server) handleRegisterProcess(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	var req RegisterProcessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	processType, err := domain.ParseProcessType(req.Type)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.ports.Process.Register(r.Context(), actor, req.Subject, processType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toProcessResponse(p))
}

func (s *Server) handleEditProcess(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	var req EditProcessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	edit := domain.ProcessEdit{Subject: req.Subject}
	if req.Type != nil {
		t, err := domain.ParseProcessType(*req.Type)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		edit.Type = &t
	}
	if req.State != nil {
		state := domain.ProcessState(*req.State)
		edit.State = &state
	}

	p, err := s.ports.Process.Edit(r.Context(), actor, r.PathValue("id"), edit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProcessResponse(p))
}

func (s *Server) handleArchiveProcess(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	var req domain.ArchiveRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := s.parseMultipart(w, r); err != nil {
			s.writeError(w, r, err)
			return
		}
		req.ParecerText = r.FormValue("parecer")
		upload, present, err := formFile(r, "file")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if present {
			req.PDF = &upload
		}
	} else {
		var body ArchiveProcessRequest
		if err := decodeJSON(w, r, &body); err != nil {
			s.writeError(w, r, err)
			return
		}
		req.ParecerText = body.Parecer
	}

	p, err := s.ports.Process.Archive(r.Context(), actor, r.PathValue("id"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProcessResponse(p))
}

func (s *Server) handleListProcesses(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pageSize, err := queryInt(r, "pageSize")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.ports.Process.List(r.Context(), actor, domain.PageRequest{Page: page, PageSize: pageSize})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := ProcessPageResponse{
		Items:    make([]ProcessResponse, len(result.Items)),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}
	for i := range result.Items {
		resp.Items[i] = toProcessResponse(&result.Items[i])
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProcess(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	p, err := s.ports.Process.Get(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProcessResponse(p))
}

func (s *Server) handleGetParecer(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	p, err := s.ports.Process.Parecer(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ParecerResponse{
		ID:        p.ID,
		ProcessID: p.ProcessID,
		Text:      p.Text,
		AuthorID:  p.AuthorID,
		EmittedAt: p.EmittedAt.Format(time.RFC3339),
		Filename:  p.Filename,
		Size:      p.Size,
		Checksum:  p.Checksum,
	})
}

// queryInt parses an optional integer query parameter. Absent means zero.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Errorf(domain.ErrValidation, "%s must be an integer", name)
	}
	return n, nil
}
