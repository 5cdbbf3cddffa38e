package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// Headers set by the upstream authenticator.
const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

// maxJSONBodySize limits JSON request bodies.
const maxJSONBodySize = 1 << 20

// multipartOverhead is allowed on top of the upload limit for form fields
// and part headers.
const multipartOverhead = 1 << 20

// errNoActor is reported as 401 rather than through the domain kinds.
var errNoActor = errors.New("missing " + headerActorID + " header")

// actorFrom reads the acting employee from the request headers.
func actorFrom(r *http.Request) (domain.Actor, error) {
	id := strings.TrimSpace(r.Header.Get(headerActorID))
	if id == "" {
		return domain.Actor{}, errNoActor
	}
	role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(headerActorRole))))
	if role == "" {
		role = domain.RoleOwner
	}
	if !role.IsValid() {
		return domain.Actor{}, domain.Errorf(domain.ErrValidation, "unknown role %q", role)
	}
	return domain.Actor{ID: id, Role: role}, nil
}

// requireActor writes the failure response and returns false when the
// request carries no usable actor.
func (s *Server) requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, err := actorFrom(r)
	if errors.Is(err, errNoActor) {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return domain.Actor{}, false
	}
	if err != nil {
		s.writeError(w, r, err)
		return domain.Actor{}, false
	}
	return actor, true
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Errorf(domain.ErrValidation, "request body is empty")
		}
		return domain.Errorf(domain.ErrValidation, "invalid request body: %v", err)
	}
	return nil
}

// parseMultipart bounds and parses a multipart form.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	limit := s.maxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Errorf(domain.ErrValidation, "request exceeds the %d byte upload limit", limit)
		}
		return domain.Errorf(domain.ErrValidation, "invalid multipart form: %v", err)
	}
	return nil
}

// formFile reads the named file part. A missing part returns ok=false.
func formFile(r *http.Request, field string) (domain.Upload, bool, error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return domain.Upload{}, false, nil
	}
	if err != nil {
		return domain.Upload{}, false, domain.Errorf(domain.ErrValidation, "reading %s: %v", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, false, fmt.Errorf("reading upload: %w", err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return domain.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, true, nil
}

func (s *Server) maxUploadSize() int64 {
	if s.ports.MaxUploadSize != nil {
		if limit := s.ports.MaxUploadSize(); limit > 0 {
			return limit
		}
	}
	return domain.DefaultMaxDocumentSize
}

// parseTime accepts RFC 3339 timestamps and bare dates.
func parseTime(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, domain.Errorf(domain.ErrValidation, "%s %q is not an RFC 3339 time or a date", field, value)
}
