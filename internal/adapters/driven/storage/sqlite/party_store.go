package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// ==================== Party Store ====================

// partyStore implements driven.PartyStore.
type partyStore struct {
	q querier
}

var _ driven.PartyStore = (*partyStore)(nil)

// Upsert returns the party with p's identification number, creating it if new.
func (s *partyStore) Upsert(ctx context.Context, p domain.Party) (*domain.Party, error) {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO parties (id, name, identification_number, kind, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(identification_number) DO NOTHING
	`, p.ID, p.Name, p.IdentificationNumber, string(p.Kind), formatTime(p.CreatedAt))
	if err != nil {
		return nil, mapConstraint(err, "party "+p.IdentificationNumber)
	}

	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, identification_number, kind, created_at
		FROM parties WHERE identification_number = ?
	`, p.IdentificationNumber)
	stored, err := scanParty(row)
	if err != nil {
		return nil, notFound(err, "party "+p.IdentificationNumber)
	}
	return stored, nil
}

// Get retrieves a party by ID.
func (s *partyStore) Get(ctx context.Context, id string) (*domain.Party, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, name, identification_number, kind, created_at
		FROM parties WHERE id = ?
	`, id)
	p, err := scanParty(row)
	if err != nil {
		return nil, notFound(err, "party "+id)
	}
	return p, nil
}

// IsAttached reports whether a party with identificationNumber is attached.
func (s *partyStore) IsAttached(ctx context.Context, processID, identificationNumber string) (bool, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM process_parties pp
		JOIN parties p ON p.id = pp.party_id
		WHERE pp.process_id = ? AND p.identification_number = ?
	`, processID, identificationNumber).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking party attachment: %w", err)
	}
	return n > 0, nil
}

// Attach inserts the join row. The primary key enforces one row per
// (process, party).
func (s *partyStore) Attach(ctx context.Context, pp domain.ProcessParty) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO process_parties (process_id, party_id, role, added_at, added_by)
		VALUES (?, ?, ?, ?, ?)
	`, pp.ProcessID, pp.Party.ID, string(pp.Role), formatTime(pp.AddedAt), pp.AddedBy)
	if err != nil {
		return mapConstraint(err, fmt.Sprintf("party %s on process %s", pp.Party.IdentificationNumber, pp.ProcessID))
	}
	return nil
}

// Detach deletes the join row.
func (s *partyStore) Detach(ctx context.Context, processID, partyID string) error {
	res, err := s.q.ExecContext(ctx, `
		DELETE FROM process_parties WHERE process_id = ? AND party_id = ?
	`, processID, partyID)
	if err != nil {
		return fmt.Errorf("detaching party: %w", err)
	}
	return requireRow(res, fmt.Sprintf("party %s is not attached to process %s", partyID, processID))
}

// ListByProcess returns the parties attached to a process ordered by AddedAt.
func (s *partyStore) ListByProcess(ctx context.Context, processID string) ([]domain.ProcessParty, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT p.id, p.name, p.identification_number, p.kind, p.created_at,
			pp.process_id, pp.role, pp.added_at, pp.added_by
		FROM process_parties pp
		JOIN parties p ON p.id = pp.party_id
		WHERE pp.process_id = ?
		ORDER BY pp.added_at, p.name
	`, processID)
	if err != nil {
		return nil, fmt.Errorf("listing parties: %w", err)
	}
	defer rows.Close()

	var out []domain.ProcessParty
	for rows.Next() {
		var (
			pp                 domain.ProcessParty
			kind, role         string
			createdAt, addedAt string
		)
		if err := rows.Scan(&pp.Party.ID, &pp.Party.Name, &pp.Party.IdentificationNumber, &kind, &createdAt,
			&pp.ProcessID, &role, &addedAt, &pp.AddedBy); err != nil {
			return nil, fmt.Errorf("scanning party: %w", err)
		}
		pp.Party.Kind = domain.PartyKind(kind)
		pp.Role = domain.PartyRole(role)
		if pp.Party.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if pp.AddedAt, err = parseTime(addedAt); err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, rows.Err()
}

func scanParty(row scanner) (*domain.Party, error) {
	var (
		p         domain.Party
		kind      string
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.IdentificationNumber, &kind, &createdAt); err != nil {
		return nil, err
	}
	p.Kind = domain.PartyKind(kind)

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}
