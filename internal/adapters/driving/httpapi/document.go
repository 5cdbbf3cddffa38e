package httpapi

import (
	"net/http"
	"strconv"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func (s *Server) registerDocumentRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /documents/attach", s.handleAttachDocument)
	mux.HandleFunc("GET /documents/process/{processId}", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.HandleFunc("GET /documents/content/{id}", s.handleDocumentContent)
}

// uploadForm reads the shared fields of a document upload.
func uploadForm(r *http.Request) (title, description string, docType domain.DocumentType, file domain.Upload, err error) {
	title = r.FormValue("title")
	description = r.FormValue("description")
	docType, err = domain.ParseDocumentType(r.FormValue("type"))
	if err != nil {
		return "", "", "", domain.Upload{}, err
	}
	file, present, err := formFile(r, "file")
	if err != nil {
		return "", "", "", domain.Upload{}, err
	}
	if !present {
		return "", "", "", domain.Upload{}, domain.Errorf(domain.ErrValidation, "file is required")
	}
	return title, description, docType, file, nil
}

func (s *Server) handleAttachDocument(w http.ResponseWriter, r *http.Request) {
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

	doc, err := s.ports.Document.Attach(r.Context(), actor, domain.AttachRequest{
		ProcessID:   r.FormValue("processId"),
		Title:       title,
		Description: description,
		Type:        docType,
		File:        file,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Document == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	docs, err := s.ports.Document.ListByProcess(r.Context(), actor, r.PathValue("processId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := make([]DocumentResponse, len(docs))
	for i := range docs {
		resp[i] = toDocumentResponse(&docs[i])
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Document == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	doc, err := s.ports.Document.Get(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

func (s *Server) handleDocumentContent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireActor(w, r)
	if !ok {
		return
	}
	if s.ports.Document == nil {
		s.writeError(w, r, domain.ErrNotImplemented)
		return
	}
	doc, err := s.ports.Document.Get(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.ports.Document.Content(r.Context(), actor, doc.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", "inline; filename="+strconv.Quote(doc.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write document content", "id", doc.ID, "error", err)
	}
}
