package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	q querier
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, process_id, meeting_id, title, description, type, filename,
	content_type, size, checksum, blob_key, uploaded_by, created_at`

// Create inserts a new document.
func (s *documentStore) Create(ctx context.Context, doc *domain.Document) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.ProcessID, nullString(doc.MeetingID), doc.Title, doc.Description,
		string(doc.Type), doc.Filename, doc.ContentType, doc.Size, doc.Checksum,
		doc.BlobKey, doc.UploadedBy, formatTime(doc.CreatedAt))
	if err != nil {
		return mapConstraint(err, "document "+doc.ID)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, notFound(err, "document "+id)
	}
	return doc, nil
}

// ListByProcess returns the documents of a process ordered by CreatedAt.
func (s *documentStore) ListByProcess(ctx context.Context, processID string) ([]domain.Document, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+documentColumns+` FROM documents
		WHERE process_id = ?
		ORDER BY created_at, id
	`, processID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

func scanDocument(row scanner) (*domain.Document, error) {
	var (
		doc       domain.Document
		meetingID sql.NullString
		typ       string
		createdAt string
	)
	if err := row.Scan(&doc.ID, &doc.ProcessID, &meetingID, &doc.Title, &doc.Description,
		&typ, &doc.Filename, &doc.ContentType, &doc.Size, &doc.Checksum,
		&doc.BlobKey, &doc.UploadedBy, &createdAt); err != nil {
		return nil, err
	}
	doc.MeetingID = stringPtr(meetingID)
	doc.Type = domain.DocumentType(typ)

	var err error
	if doc.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &doc, nil
}
