package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func partyReq(processID, idNumber string) domain.AddPartyRequest {
	return domain.AddPartyRequest{
		ProcessID:            processID,
		Name:                 "Maria Souza",
		IdentificationNumber: idNumber,
		Role:                 domain.PartyRoleWitness,
	}
}

func TestPartyService_Add(t *testing.T) {
	f := newFixture(t)
	p := f.register(t, alice, "x")

	pp, err := f.parties.Add(context.Background(), alice, partyReq(p.ID, "123.456.789-00"))

	require.NoError(t, err)
	assert.Equal(t, "12345678900", pp.Party.IdentificationNumber)
	assert.Equal(t, domain.PartyKindExternal, pp.Party.Kind)
	assert.Equal(t, domain.PartyRoleWitness, pp.Role)
	assert.Equal(t, "alice", pp.AddedBy)
	assert.Len(t, eventsFor(f.audit, domain.AuditEntityParty, domain.AuditActionCreate), 1)
}

func TestPartyService_Add_DuplicateInSameProcess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.register(t, alice, "x")

	_, err := f.parties.Add(ctx, alice, partyReq(p.ID, "12345678900"))
	require.NoError(t, err)

	_, err = f.parties.Add(ctx, alice, partyReq(p.ID, "123.456.789-00"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPartyService_Add_SamePartyTwoProcesses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.register(t, alice, "one")
	p2 := f.register(t, alice, "two")

	first, err := f.parties.Add(ctx, alice, partyReq(p1.ID, "999"))
	require.NoError(t, err)
	second, err := f.parties.Add(ctx, alice, partyReq(p2.ID, "999"))
	require.NoError(t, err)

	assert.Equal(t, first.Party.ID, second.Party.ID, "one party record per identification number")
}

func TestPartyService_Add_KnownIdentityMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.register(t, alice, "one")
	p2 := f.register(t, alice, "two")
	_, err := f.parties.Add(ctx, alice, partyReq(p1.ID, "999"))
	require.NoError(t, err)

	renamed := partyReq(p2.ID, "999")
	renamed.Name = "João Lima"
	_, err = f.parties.Add(ctx, alice, renamed)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "Maria Souza")

	employee := partyReq(p2.ID, "999")
	employee.Kind = domain.PartyKindEmployee
	_, err = f.parties.Add(ctx, alice, employee)
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := f.parties.List(ctx, alice, p2.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	sameCase := partyReq(p2.ID, "999")
	sameCase.Name = "  maria souza "
	pp, err := f.parties.Add(ctx, alice, sameCase)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", pp.Party.Name)
}

func TestPartyService_Add_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.register(t, alice, "x")

	_, err := f.parties.Add(ctx, bob, partyReq(p.ID, "1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.parties.Add(ctx, alice, partyReq("missing", "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := partyReq(p.ID, "1")
	bad.Role = "judge"
	_, err = f.parties.Add(ctx, alice, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.processes.Archive(ctx, alice, p.ID, domain.ArchiveRequest{ParecerText: "fim"})
	require.NoError(t, err)
	_, err = f.parties.Add(ctx, alice, partyReq(p.ID, "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPartyService_Add_ConcurrentSameIdentity(t *testing.T) {
	f := newFixture(t)
	p := f.register(t, alice, "x")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.parties.Add(context.Background(), alice, partyReq(p.ID, "555"))
			mu.Lock()
			defer mu.Unlock()
			switch domain.KindOf(err) {
			case "":
				succeeded++
			case domain.KindConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 7, conflicts)
}

func TestPartyService_Remove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.register(t, alice, "x")
	pp, err := f.parties.Add(ctx, alice, partyReq(p.ID, "1"))
	require.NoError(t, err)

	_, err = f.parties.Remove(ctx, bob, p.ID, pp.Party.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	msg, err := f.parties.Remove(ctx, alice, p.ID, pp.Party.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, p.Number)

	_, err = f.parties.Remove(ctx, alice, p.ID, pp.Party.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Re-adding after removal is how a role changes.
	again := partyReq(p.ID, "1")
	again.Role = domain.PartyRoleExpert
	readded, err := f.parties.Add(ctx, alice, again)
	require.NoError(t, err)
	assert.Equal(t, pp.Party.ID, readded.Party.ID)
	assert.Equal(t, domain.PartyRoleExpert, readded.Role)
}

func TestPartyService_Remove_NotOnProcess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.register(t, alice, "one")
	p2 := f.register(t, alice, "two")
	pp, err := f.parties.Add(ctx, alice, partyReq(p1.ID, "1"))
	require.NoError(t, err)

	_, err = f.parties.Remove(ctx, alice, p2.ID, pp.Party.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartyService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.register(t, alice, "x")
	_, err := f.parties.Add(ctx, alice, partyReq(p.ID, "1"))
	require.NoError(t, err)

	list, err := f.parties.List(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = f.parties.List(ctx, supervisor, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.parties.List(ctx, bob, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.parties.List(ctx, supervisor, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
