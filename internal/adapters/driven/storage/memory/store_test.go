package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

var opened = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func seedProcess(t *testing.T, s *Store, id, owner string) {
	t.Helper()
	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		seq, err := repos.Processes().NextSequence(ctx, opened.Year())
		if err != nil {
			return err
		}
		return repos.Processes().Create(ctx, &domain.Process{
			ID:            id,
			Number:        domain.ProcessNumber(opened.Year(), domain.ProcessTypeCivil, seq),
			Subject:       "subject " + id,
			Type:          domain.ProcessTypeCivil,
			State:         domain.ProcessStateOpen,
			OpenedAt:      opened.Add(time.Duration(seq) * time.Minute),
			ResponsibleID: owner,
		})
	})
	require.NoError(t, err)
}

func TestStore_WithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	boom := errors.New("boom")

	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		if _, err := repos.Processes().NextSequence(ctx, 2025); err != nil {
			return err
		}
		require.NoError(t, repos.Processes().Create(ctx, &domain.Process{ID: "p1", Number: "n1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		_, err := repos.Processes().Get(ctx, "p1")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		seq, err := repos.Processes().NextSequence(ctx, 2025)
		assert.Equal(t, int64(0), seq)
		return err
	})
	require.NoError(t, err)
}

func TestStore_WithinTx_CancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithinTx(ctx, func(context.Context, driven.Repositories) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProcessStore_NextSequence_PerYear(t *testing.T) {
	s := NewStore()

	var got []int64
	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		for _, year := range []int{2025, 2025, 2026, 2025} {
			seq, err := repos.Processes().NextSequence(ctx, year)
			if err != nil {
				return err
			}
			got = append(got, seq)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 0, 2}, got)
}

func TestProcessStore_CreateDuplicateNumber(t *testing.T) {
	s := NewStore()

	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		require.NoError(t, repos.Processes().Create(ctx, &domain.Process{ID: "a", Number: "2025-Civil-000000000"}))
		return repos.Processes().Create(ctx, &domain.Process{ID: "b", Number: "2025-Civil-000000000"})
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProcessStore_List_FilterAndPage(t *testing.T) {
	s := NewStore()
	seedProcess(t, s, "p1", "alice")
	seedProcess(t, s, "p2", "bob")
	seedProcess(t, s, "p3", "alice")
	seedProcess(t, s, "p4", "alice")

	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		items, total, err := repos.Processes().List(ctx, driven.ProcessFilter{ResponsibleID: "alice", Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 2)
		assert.Equal(t, "p3", items[0].ID)
		assert.Equal(t, "p1", items[1].ID)

		items, total, err = repos.Processes().List(ctx, driven.ProcessFilter{Offset: 10, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Empty(t, items)
		return nil
	})
	require.NoError(t, err)
}

func TestPartyStore_AttachUniquePerProcess(t *testing.T) {
	s := NewStore()
	seedProcess(t, s, "p1", "alice")
	seedProcess(t, s, "p2", "alice")

	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		party, err := repos.Parties().Upsert(ctx, domain.Party{ID: "x1", Name: "Ana", IdentificationNumber: "123"})
		require.NoError(t, err)

		again, err := repos.Parties().Upsert(ctx, domain.Party{ID: "x2", Name: "Other", IdentificationNumber: "123"})
		require.NoError(t, err)
		assert.Equal(t, "x1", again.ID)
		assert.Equal(t, "Ana", again.Name)

		require.NoError(t, repos.Parties().Attach(ctx, domain.ProcessParty{ProcessID: "p1", Party: *party, Role: domain.PartyRoleWitness}))
		require.NoError(t, repos.Parties().Attach(ctx, domain.ProcessParty{ProcessID: "p2", Party: *party, Role: domain.PartyRoleAuthor}))

		err = repos.Parties().Attach(ctx, domain.ProcessParty{ProcessID: "p1", Party: *party, Role: domain.PartyRoleExpert})
		assert.ErrorIs(t, err, domain.ErrConflict)

		attached, err := repos.Parties().IsAttached(ctx, "p1", "123")
		require.NoError(t, err)
		assert.True(t, attached)

		require.NoError(t, repos.Parties().Detach(ctx, "p1", "x1"))
		assert.ErrorIs(t, repos.Parties().Detach(ctx, "p1", "x1"), domain.ErrNotFound)

		list, err := repos.Parties().ListByProcess(ctx, "p2")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, domain.PartyRoleAuthor, list[0].Role)
		return nil
	})
	require.NoError(t, err)
}

func TestParecerStore_OnePerProcess(t *testing.T) {
	s := NewStore()
	seedProcess(t, s, "p1", "alice")

	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		require.NoError(t, repos.Pareceres().Create(ctx, &domain.Parecer{ID: "a", ProcessID: "p1", Text: "ok"}))
		assert.ErrorIs(t, repos.Pareceres().Create(ctx, &domain.Parecer{ID: "b", ProcessID: "p1"}), domain.ErrConflict)

		got, err := repos.Pareceres().GetByProcess(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "a", got.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestCommitteeStore_SaveCopiesMembers(t *testing.T) {
	s := NewStore()
	members := []domain.CommitteeMember{{EmployeeID: "e1", Role: "chair"}}

	err := s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		require.NoError(t, repos.Committees().Save(ctx, domain.Committee{ID: "c1", Name: "Ética", State: domain.CommitteeStateApproved, Members: members}))
		members[0].Role = "changed"

		got, err := repos.Committees().Get(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "chair", got.Members[0].Role)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ConcurrentUnitsOfWork(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	seqs := make(chan int64, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
				seq, err := repos.Processes().NextSequence(ctx, 2025)
				seqs <- seq
				return err
			})
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[int64]bool)
	for seq := range seqs {
		assert.False(t, seen[seq], "sequence %d reserved twice", seq)
		seen[seq] = true
	}
	assert.Len(t, seen, 20)
}
