package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/services"
)

var (
	alice      = domain.Actor{ID: "alice", Role: domain.RoleOwner}
	supervisor = domain.Actor{ID: "carol", Role: domain.RoleSupervisor}
)

// newTestPorts wires real services over memory adapters, with one
// approved committee available for scheduling.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	store := memory.NewStore()
	blobs := memory.NewBlobStore()
	audit := memory.NewAuditLog()

	committees := services.NewCommitteeService(store)
	_, err := committees.Import(context.Background(), []domain.Committee{
		{ID: "ethics", Name: "Comissão de Ética", State: domain.CommitteeStateApproved},
	})
	require.NoError(t, err)

	return &Ports{
		Process:  services.NewProcessService(store, blobs, audit),
		Meeting:  services.NewMeetingService(store, audit),
		Document: services.NewDocumentService(store, blobs, audit),
		Party:    services.NewPartyService(store, audit),
		Actor:    alice,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(newTestPorts(t))
	require.NoError(t, err)
	return server
}

func nextWeek() string {
	return time.Now().AddDate(0, 0, 7).Format(time.RFC3339)
}

func TestNewServer(t *testing.T) {
	t.Run("nil process service returns error", func(t *testing.T) {
		ports := &Ports{Actor: alice}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingProcessService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts(t))
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil process service returns error", func(t *testing.T) {
		ports := &Ports{Actor: alice}
		assert.ErrorIs(t, ports.Validate(), ErrMissingProcessService)
	})

	t.Run("missing actor returns error", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Actor = domain.Actor{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingActor)
	})

	t.Run("process only is valid", func(t *testing.T) {
		full := newTestPorts(t)
		ports := &Ports{Process: full.Process, Actor: alice}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		assert.NoError(t, newTestPorts(t).Validate())
	})
}

func TestServer_Handler(t *testing.T) {
	assert.NotNil(t, newTestServer(t).Handler())
}

func TestServer_RunHTTP_StopsOnCancel(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancel")
	}
}

func TestServer_ActorFieldsDescribedAsTrusted(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Tools)
	for _, tool := range res.Tools {
		data, err := json.Marshal(tool.InputSchema)
		require.NoError(t, err)
		var schema struct {
			Properties map[string]struct {
				Description string `json:"description"`
			} `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(data, &schema))
		for _, field := range []string{"actor_id", "role"} {
			prop, ok := schema.Properties[field]
			require.True(t, ok, "%s has no %s", tool.Name, field)
			assert.Contains(t, prop.Description, "Trusted input", "%s.%s", tool.Name, field)
		}
	}
}
