package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

var (
	alice      = domain.Actor{ID: "alice", Role: domain.RoleOwner}
	bob        = domain.Actor{ID: "bob", Role: domain.RoleOwner}
	supervisor = domain.Actor{ID: "carol", Role: domain.RoleSupervisor}

	// fixedNow is mid-morning so same-day meetings earlier in the day stay valid.
	fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
)

// fixture wires every service over one memory store.
type fixture struct {
	store *memory.Store
	blobs *memory.BlobStore
	audit *memory.AuditLog

	processes  *ProcessService
	meetings   *MeetingService
	documents  *DocumentService
	parties    *PartyService
	committees *CommitteeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		blobs: memory.NewBlobStore(),
		audit: memory.NewAuditLog(),
	}
	clock := func() time.Time { return fixedNow }

	f.processes = NewProcessService(f.store, f.blobs, f.audit)
	f.processes.SetClock(clock)
	f.meetings = NewMeetingService(f.store, f.audit)
	f.meetings.SetClock(clock)
	f.documents = NewDocumentService(f.store, f.blobs, f.audit)
	f.documents.SetClock(clock)
	f.parties = NewPartyService(f.store, f.audit)
	f.parties.SetClock(clock)
	f.committees = NewCommitteeService(f.store)

	_, err := f.committees.Import(context.Background(), []domain.Committee{
		{ID: "ethics", Name: "Comissão de Ética", State: domain.CommitteeStateApproved,
			Members: []domain.CommitteeMember{{EmployeeID: "e1", Role: "chair"}}},
		{ID: "pending", Name: "Comissão Provisória", State: domain.CommitteeStatePending},
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) register(t *testing.T, actor domain.Actor, subject string) *domain.Process {
	t.Helper()
	p, err := f.processes.Register(context.Background(), actor, subject, domain.ProcessTypeDisciplinary)
	require.NoError(t, err)
	return p
}

func (f *fixture) schedule(t *testing.T, processID string) *domain.Meeting {
	t.Helper()
	m, err := f.meetings.Schedule(context.Background(), alice, domain.ScheduleRequest{
		ProcessID:   processID,
		CommitteeID: "ethics",
		At:          fixedNow.AddDate(0, 0, 7),
		Location:    "Sala 3",
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) process(t *testing.T, id string) domain.Process {
	t.Helper()
	var p domain.Process
	err := f.store.WithinTx(context.Background(), func(ctx context.Context, repos driven.Repositories) error {
		got, err := repos.Processes().Get(ctx, id)
		if err == nil {
			p = *got
		}
		return err
	})
	require.NoError(t, err)
	return p
}

func pdf(name string) domain.Upload {
	return domain.Upload{
		Filename:    name,
		ContentType: domain.PDFContentType,
		Data:        []byte("%PDF-1.7\n1 0 obj << >> endobj\n%%EOF"),
	}
}

func eventsFor(log *memory.AuditLog, entity domain.AuditEntity, action domain.AuditAction) []domain.AuditEvent {
	var out []domain.AuditEvent
	for _, ev := range log.Events() {
		if ev.Entity == entity && ev.Action == action {
			out = append(out, ev)
		}
	}
	return out
}

// assertClosedIffArchived checks the process invariant.
func assertClosedIffArchived(t *testing.T, p domain.Process) {
	t.Helper()
	require.Equal(t, p.State == domain.ProcessStateArchived, p.ClosedAt != nil,
		"state %s with closed_at %v", p.State, p.ClosedAt)
}
