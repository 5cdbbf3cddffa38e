package sqlite

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// ==================== Parecer Store ====================

// parecerStore implements driven.ParecerStore.
type parecerStore struct {
	q querier
}

var _ driven.ParecerStore = (*parecerStore)(nil)

// Create inserts a parecer. The unique process_id column rejects a second
// parecer for the same process.
func (s *parecerStore) Create(ctx context.Context, p *domain.Parecer) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO pareceres (id, process_id, text, emitted_at, author_id, filename, size, checksum, blob_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ProcessID, p.Text, formatTime(p.EmittedAt), p.AuthorID,
		p.Filename, p.Size, p.Checksum, p.BlobKey)
	if err != nil {
		return mapConstraint(err, "parecer for process "+p.ProcessID)
	}
	return nil
}

// GetByProcess retrieves the parecer of a process.
func (s *parecerStore) GetByProcess(ctx context.Context, processID string) (*domain.Parecer, error) {
	var (
		p         domain.Parecer
		emittedAt string
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT id, process_id, text, emitted_at, author_id, filename, size, checksum, blob_key
		FROM pareceres WHERE process_id = ?
	`, processID).Scan(&p.ID, &p.ProcessID, &p.Text, &emittedAt, &p.AuthorID,
		&p.Filename, &p.Size, &p.Checksum, &p.BlobKey)
	if err != nil {
		return nil, notFound(err, "parecer for process "+processID)
	}
	if p.EmittedAt, err = parseTime(emittedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
