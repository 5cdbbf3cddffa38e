package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// ==================== Process Store ====================

// processStore implements driven.ProcessStore.
type processStore struct {
	q querier
}

var _ driven.ProcessStore = (*processStore)(nil)

const processColumns = `id, number, subject, type, state, opened_at, closed_at, responsible_id, parecer_id, updated_at`

// NextSequence reserves the next sequence for year. The first call for a
// year inserts the counter row and returns 0.
func (s *processStore) NextSequence(ctx context.Context, year int) (int64, error) {
	var seq int64
	err := s.q.QueryRowContext(ctx, `
		INSERT INTO process_sequences (year, next) VALUES (?, 1)
		ON CONFLICT(year) DO UPDATE SET next = next + 1
		RETURNING next - 1
	`, year).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("reserving sequence for %d: %w", year, err)
	}
	return seq, nil
}

// Create inserts a new process.
func (s *processStore) Create(ctx context.Context, p *domain.Process) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO processes (`+processColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Number, p.Subject, string(p.Type), string(p.State),
		formatTime(p.OpenedAt), nullTime(p.ClosedAt), p.ResponsibleID,
		nullString(p.ParecerID), formatTime(p.UpdatedAt))
	if err != nil {
		return mapConstraint(err, fmt.Sprintf("process %s", p.Number))
	}
	return nil
}

// Get retrieves a process by ID.
func (s *processStore) Get(ctx context.Context, id string) (*domain.Process, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+processColumns+` FROM processes WHERE id = ?`, id)
	p, err := scanProcess(row)
	if err != nil {
		return nil, notFound(err, "process "+id)
	}
	return p, nil
}

// Update overwrites the mutable fields of an existing process.
func (s *processStore) Update(ctx context.Context, p *domain.Process) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE processes SET
			subject = ?,
			type = ?,
			state = ?,
			closed_at = ?,
			parecer_id = ?,
			updated_at = ?
		WHERE id = ?
	`, p.Subject, string(p.Type), string(p.State), nullTime(p.ClosedAt),
		nullString(p.ParecerID), formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return mapConstraint(err, "process "+p.ID)
	}
	return requireRow(res, "process "+p.ID)
}

// List returns one page of processes, newest first, with the total count.
func (s *processStore) List(ctx context.Context, filter driven.ProcessFilter) ([]domain.Process, int, error) {
	where := ""
	var args []any
	if filter.ResponsibleID != "" {
		where = " WHERE responsible_id = ?"
		args = append(args, filter.ResponsibleID)
	}

	var total int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM processes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting processes: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+processColumns+` FROM processes`+where+`
		ORDER BY opened_at DESC, number DESC
		LIMIT ? OFFSET ?
	`, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing processes: %w", err)
	}
	defer rows.Close()

	var out []domain.Process
	for rows.Next() {
		p, err := scanProcess(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning process: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating processes: %w", err)
	}
	return out, total, nil
}

func scanProcess(row scanner) (*domain.Process, error) {
	var (
		p                   domain.Process
		typ, state          string
		openedAt, updatedAt string
		closedAt, parecerID sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Number, &p.Subject, &typ, &state, &openedAt,
		&closedAt, &p.ResponsibleID, &parecerID, &updatedAt); err != nil {
		return nil, err
	}
	p.Type = domain.ProcessType(typ)
	p.State = domain.ProcessState(state)
	p.ParecerID = stringPtr(parecerID)

	var err error
	if p.OpenedAt, err = parseTime(openedAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if p.ClosedAt, err = parseNullTime(closedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
