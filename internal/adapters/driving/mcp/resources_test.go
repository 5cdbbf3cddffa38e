package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleProcessResource(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)
	p := registerProcess(t, server, ActorInput{}, "Falta grave")

	_, _, err := server.handleScheduleMeeting(ctx, nil, ScheduleMeetingInput{
		ProcessID: p.ID, CommitteeID: "ethics", At: nextWeek(), Location: "Sala 1",
	})
	require.NoError(t, err)
	_, _, err = server.handleAddParty(ctx, nil, AddPartyInput{
		ProcessID: p.ID, Name: "Maria", IdentificationNumber: "E-42", Kind: "employee", Role: "author",
	})
	require.NoError(t, err)

	t.Run("returns the process with its children", func(t *testing.T) {
		uri := "juris://processes/" + p.ID
		result, err := server.handleProcessResource(ctx, newReadResourceRequest(uri))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uri, result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var got processResource
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, p.Number, got.Number)
		assert.Len(t, got.Meetings, 1)
		assert.Empty(t, got.Documents)
		require.Len(t, got.Parties, 1)
		assert.Equal(t, "E42", got.Parties[0].IdentificationNumber)
		assert.Nil(t, got.Parecer)
	})

	t.Run("archived process includes its parecer", func(t *testing.T) {
		_, _, err := server.handleArchiveProcess(ctx, nil, ArchiveProcessInput{ProcessID: p.ID, Parecer: "Improcedente"})
		require.NoError(t, err)

		result, err := server.handleProcessResource(ctx, newReadResourceRequest("juris://processes/"+p.ID))
		require.NoError(t, err)
		var got processResource
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		require.NotNil(t, got.Parecer)
		assert.Equal(t, "Improcedente", got.Parecer.Text)
		assert.False(t, got.Parecer.HasPDF)
	})

	t.Run("unknown process is not found", func(t *testing.T) {
		_, err := server.handleProcessResource(ctx, newReadResourceRequest("juris://processes/missing"))
		require.Error(t, err)
	})
}

func TestExtractProcessID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"juris://processes/p1", "p1"},
		{"juris://processes/", ""},
		{"juris://processes/p1/meetings", ""},
		{"http://processes/p1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractProcessID(tt.uri))
		})
	}
}
