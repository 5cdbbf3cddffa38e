package memory

import (
	"context"
	"sort"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// Ensure documentStore implements the interface.
var _ driven.DocumentStore = (*documentStore)(nil)

type documentStore struct {
	st *state
}

// Create inserts a new document.
func (s *documentStore) Create(_ context.Context, doc *domain.Document) error {
	if _, ok := s.st.processes[doc.ProcessID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "process %s", doc.ProcessID)
	}
	if _, ok := s.st.documents[doc.ID]; ok {
		return domain.Errorf(domain.ErrConflict, "document %s exists", doc.ID)
	}
	s.st.documents[doc.ID] = *doc
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := s.st.documents[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "document %s", id)
	}
	return &doc, nil
}

// ListByProcess returns the documents of a process ordered by CreatedAt.
func (s *documentStore) ListByProcess(_ context.Context, processID string) ([]domain.Document, error) {
	var out []domain.Document
	for _, doc := range s.st.documents {
		if doc.ProcessID == processID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
