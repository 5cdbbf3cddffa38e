package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 123456789, time.UTC)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "juris-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// inTx runs fn in a transaction and fails the test on error.
func inTx(t *testing.T, store *Store, fn func(ctx context.Context, repos driven.Repositories) error) {
	t.Helper()
	require.NoError(t, store.WithinTx(context.Background(), fn))
}

func testProcess(id, number string) *domain.Process {
	return &domain.Process{
		ID:            id,
		Number:        number,
		Subject:       "Assédio moral",
		Type:          domain.ProcessTypeDisciplinary,
		State:         domain.ProcessStateOpen,
		OpenedAt:      testNow,
		ResponsibleID: "alice",
		UpdatedAt:     testNow,
	}
}

// seed creates a process and an approved committee.
func seed(t *testing.T, store *Store) {
	t.Helper()
	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		if err := repos.Processes().Create(ctx, testProcess("p1", "2025-Disciplinar-000000000")); err != nil {
			return err
		}
		return repos.Committees().Save(ctx, domain.Committee{
			ID:    "ethics",
			Name:  "Comissão de Ética",
			State: domain.CommitteeStateApproved,
			Members: []domain.CommitteeMember{
				{EmployeeID: "e2", Role: "member"},
				{EmployeeID: "e1", Role: "chair"},
			},
		})
	})
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "metadata.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	seed(t, store)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	inTx(t, reopened, func(ctx context.Context, repos driven.Repositories) error {
		p, err := repos.Processes().Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "2025-Disciplinar-000000000", p.Number)
		return nil
	})
}

func TestProcessStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		p, err := repos.Processes().Get(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, testNow.Equal(p.OpenedAt), "nanoseconds survive")
		assert.Nil(t, p.ClosedAt)
		assert.Nil(t, p.ParecerID)

		require.NoError(t, p.Archive(testNow.Add(time.Hour)))
		parecer := "parecer-1"
		p.ParecerID = &parecer
		return repos.Processes().Update(ctx, p)
	})

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		p, err := repos.Processes().Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, domain.ProcessStateArchived, p.State)
		require.NotNil(t, p.ClosedAt)
		assert.True(t, testNow.Add(time.Hour).Equal(*p.ClosedAt))
		require.NotNil(t, p.ParecerID)
		assert.Equal(t, "parecer-1", *p.ParecerID)
		return nil
	})
}

func TestProcessStore_ArchivedRequiresClosedAt(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		p, err := repos.Processes().Get(ctx, "p1")
		require.NoError(t, err)
		p.State = domain.ProcessStateArchived
		return repos.Processes().Update(ctx, p)
	})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestProcessStore_Errors(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		return repos.Processes().Create(ctx, testProcess("p2", "2025-Disciplinar-000000000"))
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "duplicate number")

	err = store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		_, err := repos.Processes().Get(ctx, "missing")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		return repos.Processes().Update(ctx, testProcess("missing", "x"))
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessStore_NextSequence(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var got []int64
	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		for _, year := range []int{2025, 2025, 2026, 2025} {
			seq, err := repos.Processes().NextSequence(ctx, year)
			if err != nil {
				return err
			}
			got = append(got, seq)
		}
		return nil
	})

	assert.Equal(t, []int64{0, 1, 0, 2}, got)
}

func TestProcessStore_NextSequence_RolledBackReservationIsReused(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		_, err := repos.Processes().NextSequence(ctx, 2025)
		require.NoError(t, err)
		return errors.New("abort")
	})
	require.Error(t, err)

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		seq, err := repos.Processes().NextSequence(ctx, 2025)
		require.NoError(t, err)
		assert.Equal(t, int64(0), seq)
		return nil
	})
}

func TestProcessStore_NextSequence_Concurrent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool)
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
				seq, err := repos.Processes().NextSequence(ctx, 2025)
				if err != nil {
					return err
				}
				mu.Lock()
				seen[seq] = true
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers)
	for i := range int64(workers) {
		assert.True(t, seen[i], "sequence %d reserved", i)
	}
}

func TestProcessStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		for i, owner := range []string{"alice", "bob", "alice"} {
			p := testProcess(string(rune('a'+i)), domain.ProcessNumber(2025, domain.ProcessTypeCivil, int64(i)))
			p.ResponsibleID = owner
			p.OpenedAt = testNow.Add(time.Duration(i) * time.Minute)
			if err := repos.Processes().Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		all, total, err := repos.Processes().List(ctx, driven.ProcessFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, all, 3)
		assert.Equal(t, "c", all[0].ID, "newest first")

		mine, total, err := repos.Processes().List(ctx, driven.ProcessFilter{ResponsibleID: "alice", Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, mine, 1)
		assert.Equal(t, "a", mine[0].ID)
		return nil
	})
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		require.NoError(t, repos.Processes().Create(ctx, testProcess("p1", "n1")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		_, err := repos.Processes().Get(ctx, "p1")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMeetingStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)
	ctx := context.Background()

	later := &domain.Meeting{
		ID: "m2", ProcessID: "p1", CommitteeID: "ethics", ScheduledAt: testNow.AddDate(0, 0, 7),
		Location: "Sala 3", State: domain.MeetingStateScheduled, CreatedAt: testNow, UpdatedAt: testNow,
	}
	sooner := *later
	sooner.ID = "m1"
	sooner.ScheduledAt = testNow.AddDate(0, 0, 1)

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		require.NoError(t, repos.Meetings().Create(ctx, later))
		return repos.Meetings().Create(ctx, &sooner)
	})

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		list, err := repos.Meetings().ListByProcess(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "m1", list[0].ID)

		m, err := repos.Meetings().Get(ctx, "m2")
		require.NoError(t, err)
		m.State = domain.MeetingStateInProgress
		return repos.Meetings().Update(ctx, m)
	})

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		m, err := repos.Meetings().Get(ctx, "m2")
		require.NoError(t, err)
		assert.Equal(t, domain.MeetingStateInProgress, m.State)
		assert.Nil(t, m.AtaDocumentID)
		return nil
	})

	err := store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		orphan := sooner
		orphan.ID = "m3"
		orphan.CommitteeID = "missing"
		return repos.Meetings().Create(ctx, &orphan)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "foreign keys are enforced")
}

func TestDocumentStore_AtaLink(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)

	meetingID := "m1"
	doc := &domain.Document{
		ID: "d1", ProcessID: "p1", MeetingID: &meetingID, Title: "Ata", Type: domain.DocumentTypeAta,
		Filename: "ata.pdf", ContentType: domain.PDFContentType, Size: 42, Checksum: "abc",
		BlobKey: "processes/p1/documents/d1.pdf", UploadedBy: "alice", CreatedAt: testNow,
	}

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		require.NoError(t, repos.Meetings().Create(ctx, &domain.Meeting{
			ID: meetingID, ProcessID: "p1", CommitteeID: "ethics", ScheduledAt: testNow,
			Location: "A", State: domain.MeetingStateConcluded, CreatedAt: testNow, UpdatedAt: testNow,
		}))
		require.NoError(t, repos.Documents().Create(ctx, doc))
		m, err := repos.Meetings().Get(ctx, meetingID)
		require.NoError(t, err)
		m.AtaDocumentID = &doc.ID
		return repos.Meetings().Update(ctx, m)
	})

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		got, err := repos.Documents().Get(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, *doc.MeetingID, *got.MeetingID)
		assert.Equal(t, domain.DocumentTypeAta, got.Type)
		assert.Equal(t, int64(42), got.Size)

		list, err := repos.Documents().ListByProcess(ctx, "p1")
		require.NoError(t, err)
		assert.Len(t, list, 1)

		m, err := repos.Meetings().Get(ctx, meetingID)
		require.NoError(t, err)
		require.NotNil(t, m.AtaDocumentID)
		assert.Equal(t, "d1", *m.AtaDocumentID)
		return nil
	})
}

func TestPartyStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)
	ctx := context.Background()

	party := domain.Party{ID: "x1", Name: "Maria", IdentificationNumber: "12345678900", Kind: domain.PartyKindExternal, CreatedAt: testNow}

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		stored, err := repos.Parties().Upsert(ctx, party)
		require.NoError(t, err)
		assert.Equal(t, "x1", stored.ID)

		again, err := repos.Parties().Upsert(ctx, domain.Party{ID: "x2", Name: "Other", IdentificationNumber: "12345678900", Kind: domain.PartyKindEmployee, CreatedAt: testNow})
		require.NoError(t, err)
		assert.Equal(t, "x1", again.ID, "existing party wins")
		assert.Equal(t, "Maria", again.Name)

		return repos.Parties().Attach(ctx, domain.ProcessParty{ProcessID: "p1", Party: *stored, Role: domain.PartyRoleAuthor, AddedAt: testNow, AddedBy: "alice"})
	})

	err := store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		return repos.Parties().Attach(ctx, domain.ProcessParty{ProcessID: "p1", Party: party, Role: domain.PartyRoleWitness, AddedAt: testNow, AddedBy: "alice"})
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		attached, err := repos.Parties().IsAttached(ctx, "p1", "12345678900")
		require.NoError(t, err)
		assert.True(t, attached)

		list, err := repos.Parties().ListByProcess(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, domain.PartyRoleAuthor, list[0].Role)
		assert.Equal(t, "Maria", list[0].Party.Name)

		return repos.Parties().Detach(ctx, "p1", "x1")
	})

	err = store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		return repos.Parties().Detach(ctx, "p1", "x1")
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParecerStore_OnePerProcess(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)
	ctx := context.Background()

	p := &domain.Parecer{ID: "pa1", ProcessID: "p1", Text: "Arquive-se.", EmittedAt: testNow, AuthorID: "alice"}
	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		return repos.Pareceres().Create(ctx, p)
	})

	err := store.WithinTx(ctx, func(ctx context.Context, repos driven.Repositories) error {
		second := *p
		second.ID = "pa2"
		return repos.Pareceres().Create(ctx, &second)
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		got, err := repos.Pareceres().GetByProcess(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Arquive-se.", got.Text)
		assert.False(t, got.HasPDF())

		_, err = repos.Pareceres().GetByProcess(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		return nil
	})
}

func TestCommitteeStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seed(t, store)

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		c, err := repos.Committees().Get(ctx, "ethics")
		require.NoError(t, err)
		assert.True(t, c.IsApproved())
		require.Len(t, c.Members, 2)
		assert.Equal(t, "e1", c.Members[0].EmployeeID)

		// Replacing a committee keeps its id and swaps the roster.
		return repos.Committees().Save(ctx, domain.Committee{
			ID: "ethics", Name: "Comissão de Ética", State: domain.CommitteeStateDissolved,
			Members: []domain.CommitteeMember{{EmployeeID: "e9"}},
		})
	})

	inTx(t, store, func(ctx context.Context, repos driven.Repositories) error {
		require.NoError(t, repos.Committees().Save(ctx, domain.Committee{ID: "a", Name: "Auditoria", State: domain.CommitteeStatePending}))
		list, err := repos.Committees().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Auditoria", list[0].Name)
		assert.Equal(t, domain.CommitteeStateDissolved, list[1].State)
		assert.Equal(t, []domain.CommitteeMember{{EmployeeID: "e9"}}, list[1].Members)
		return nil
	})
}

func TestAuditLog(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	log := store.AuditLog()

	events := []domain.AuditEvent{
		{ID: "1", Timestamp: testNow, ActorID: "alice", Action: domain.AuditActionCreate, Entity: domain.AuditEntityProcess, EntityID: "p1", Details: map[string]string{"number": "n1"}},
		{ID: "2", Timestamp: testNow, ActorID: "alice", Action: domain.AuditActionCreate, Entity: domain.AuditEntityMeeting, EntityID: "m1"},
		{ID: "3", Timestamp: testNow.Add(time.Second), ActorID: "bob", Action: domain.AuditActionUpdate, Entity: domain.AuditEntityProcess, EntityID: "p1"},
	}
	for _, ev := range events {
		require.NoError(t, log.Emit(ctx, ev))
	}

	all, err := log.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"3", "2", "1"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "n1", all[2].Details["number"])
	assert.Nil(t, all[1].Details)

	processes, err := log.List(ctx, domain.AuditFilter{Entity: domain.AuditEntityProcess, EntityID: "p1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, processes, 1)
	assert.Equal(t, "3", processes[0].ID)

	assert.ErrorIs(t, log.Emit(ctx, events[0]), domain.ErrConflict)
}
