package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// ==================== Meeting Store ====================

// meetingStore implements driven.MeetingStore.
type meetingStore struct {
	q querier
}

var _ driven.MeetingStore = (*meetingStore)(nil)

const meetingColumns = `id, process_id, committee_id, scheduled_at, location, state, ata_document_id, created_at, updated_at`

// Create inserts a new meeting.
func (s *meetingStore) Create(ctx context.Context, m *domain.Meeting) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO meetings (`+meetingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.ProcessID, m.CommitteeID, formatTime(m.ScheduledAt), m.Location,
		string(m.State), nullString(m.AtaDocumentID), formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return mapConstraint(err, "meeting "+m.ID)
	}
	return nil
}

// Get retrieves a meeting by ID.
func (s *meetingStore) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	m, err := scanMeeting(row)
	if err != nil {
		return nil, notFound(err, "meeting "+id)
	}
	return m, nil
}

// Update overwrites the mutable fields of an existing meeting.
func (s *meetingStore) Update(ctx context.Context, m *domain.Meeting) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE meetings SET
			scheduled_at = ?,
			location = ?,
			state = ?,
			ata_document_id = ?,
			updated_at = ?
		WHERE id = ?
	`, formatTime(m.ScheduledAt), m.Location, string(m.State),
		nullString(m.AtaDocumentID), formatTime(m.UpdatedAt), m.ID)
	if err != nil {
		return mapConstraint(err, "meeting "+m.ID)
	}
	return requireRow(res, "meeting "+m.ID)
}

// ListByProcess returns the meetings of a process ordered by ScheduledAt.
func (s *meetingStore) ListByProcess(ctx context.Context, processID string) ([]domain.Meeting, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+meetingColumns+` FROM meetings
		WHERE process_id = ?
		ORDER BY scheduled_at, id
	`, processID)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	defer rows.Close()

	var out []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func scanMeeting(row scanner) (*domain.Meeting, error) {
	var (
		m                               domain.Meeting
		state                           string
		scheduledAt, createdAt, updated string
		ataID                           sql.NullString
	)
	if err := row.Scan(&m.ID, &m.ProcessID, &m.CommitteeID, &scheduledAt, &m.Location,
		&state, &ataID, &createdAt, &updated); err != nil {
		return nil, err
	}
	m.State = domain.MeetingState(state)
	m.AtaDocumentID = stringPtr(ataID)

	var err error
	if m.ScheduledAt, err = parseTime(scheduledAt); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &m, nil
}
