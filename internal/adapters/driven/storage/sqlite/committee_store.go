package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// ==================== Committee Store ====================

// committeeStore implements driven.CommitteeStore.
type committeeStore struct {
	q querier
}

var _ driven.CommitteeStore = (*committeeStore)(nil)

// Save stores or replaces a committee and its members. The committee row is
// upserted rather than replaced so meetings referencing it stay valid.
func (s *committeeStore) Save(ctx context.Context, c domain.Committee) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO committees (id, name, state) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			state = excluded.state
	`, c.ID, c.Name, string(c.State))
	if err != nil {
		return mapConstraint(err, "committee "+c.ID)
	}

	if _, err := s.q.ExecContext(ctx, `DELETE FROM committee_members WHERE committee_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clearing committee members: %w", err)
	}
	for _, m := range c.Members {
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO committee_members (committee_id, employee_id, role) VALUES (?, ?, ?)
		`, c.ID, m.EmployeeID, m.Role)
		if err != nil {
			return mapConstraint(err, fmt.Sprintf("committee %s member %s", c.ID, m.EmployeeID))
		}
	}
	return nil
}

// Get retrieves a committee by ID.
func (s *committeeStore) Get(ctx context.Context, id string) (*domain.Committee, error) {
	var (
		c     domain.Committee
		state string
	)
	err := s.q.QueryRowContext(ctx, `SELECT id, name, state FROM committees WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &state)
	if err != nil {
		return nil, notFound(err, "committee "+id)
	}
	c.State = domain.CommitteeState(state)

	members, err := s.members(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Members = members
	return &c, nil
}

// List returns all committees ordered by name.
func (s *committeeStore) List(ctx context.Context) ([]domain.Committee, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, name, state FROM committees ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing committees: %w", err)
	}
	var out []domain.Committee
	for rows.Next() {
		var (
			c     domain.Committee
			state string
		)
		if err := rows.Scan(&c.ID, &c.Name, &state); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning committee: %w", err)
		}
		c.State = domain.CommitteeState(state)
		out = append(out, c)
	}
	// Members are read after the cursor closes; a transaction holds a
	// single connection.
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing committee rows: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating committees: %w", err)
	}

	for i := range out {
		members, err := s.members(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Members = members
	}
	return out, nil
}

func (s *committeeStore) members(ctx context.Context, committeeID string) ([]domain.CommitteeMember, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT employee_id, role FROM committee_members
		WHERE committee_id = ?
		ORDER BY employee_id
	`, committeeID)
	if err != nil {
		return nil, fmt.Errorf("listing committee members: %w", err)
	}
	defer rows.Close()

	var out []domain.CommitteeMember
	for rows.Next() {
		var m domain.CommitteeMember
		if err := rows.Scan(&m.EmployeeID, &m.Role); err != nil {
			return nil, fmt.Errorf("scanning committee member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
