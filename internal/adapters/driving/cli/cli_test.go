package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/services"
)

var alice = domain.Actor{ID: "alice", Role: domain.RoleOwner}

// testPDF is the smallest payload that sniffs as application/pdf.
var testPDF = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj<<>>endobj\n%%EOF\n")

// setupTestServices wires every command to real services over memory
// adapters and restores the previous wiring on cleanup.
func setupTestServices(t *testing.T) Services {
	t.Helper()
	store := memory.NewStore()
	blobs := memory.NewBlobStore()
	audit := memory.NewAuditLog()

	s := Services{
		Process:   services.NewProcessService(store, blobs, audit),
		Meeting:   services.NewMeetingService(store, audit),
		Document:  services.NewDocumentService(store, blobs, audit),
		Party:     services.NewPartyService(store, audit),
		Committee: services.NewCommitteeService(store),
		Audit:     services.NewAuditService(audit),
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
	}

	saved := Services{
		Process:   processService,
		Meeting:   meetingService,
		Document:  documentService,
		Party:     partyService,
		Committee: committeeService,
		Audit:     auditService,
		Settings:  settingsService,
		Metrics:   metricsRegistry,
		Watcher:   configWatcher,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(saved) })
	return s
}

// resetFlags puts every flag back to its default so one test's flags
// don't leak into the next run of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args as alice and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(context.Background(), t, args...)
}

func executeContext(ctx context.Context, t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(append([]string{"--actor", alice.ID}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func executeJSON[T any](t *testing.T, args ...string) T {
	t.Helper()
	out, err := execute(t, append(args, "-o", "json")...)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func registerProcess(t *testing.T, s Services) *domain.Process {
	t.Helper()
	p, err := s.Process.Register(context.Background(), alice, "Conduta em reunião", domain.ProcessTypeDisciplinary)
	require.NoError(t, err)
	return p
}

func importEthics(t *testing.T, s Services) {
	t.Helper()
	_, err := s.Committee.Import(context.Background(), []domain.Committee{
		{ID: "ethics", Name: "Comissão de Ética", State: domain.CommitteeStateApproved},
	})
	require.NoError(t, err)
}

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parecer.pdf")
	require.NoError(t, os.WriteFile(path, testPDF, 0600))
	return path
}

func TestCurrentActor(t *testing.T) {
	origID, origRole := actorID, actorRole
	defer func() { actorID, actorRole = origID, origRole }()

	actorID, actorRole = "", string(domain.RoleOwner)
	_, err := currentActor()
	assert.Error(t, err)

	actorID, actorRole = "bob", "admin"
	_, err = currentActor()
	assert.ErrorIs(t, err, domain.ErrValidation)

	actorID, actorRole = "bob", string(domain.RoleSupervisor)
	actor, err := currentActor()
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{ID: "bob", Role: domain.RoleSupervisor}, actor)
}

func TestCommands_NotConfigured(t *testing.T) {
	saved := Services{Process: processService, Party: partyService, Settings: settingsService}
	SetServices(Services{})
	defer SetServices(saved)

	_, err := execute(t, "process", "get", "p1")
	assert.ErrorContains(t, err, "process service not configured")
	_, err = execute(t, "party", "list", "p1")
	assert.ErrorContains(t, err, "party service not configured")
	_, err = execute(t, "settings")
	assert.ErrorContains(t, err, "settings service not configured")
}

func TestParseWhen(t *testing.T) {
	got, err := parseWhen("2030-01-02T15:04:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 2, 15, 4, 0, 0, time.UTC), got)

	got, err = parseWhen("2030-01-02 09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 2, 9, 30, 0, 0, time.Local), got)

	got, err = parseWhen("2030-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.Local), got)

	_, err = parseWhen("next tuesday")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReadUpload(t *testing.T) {
	u, err := readUpload(writePDF(t))
	require.NoError(t, err)
	assert.Equal(t, "parecer.pdf", u.Filename)
	assert.Equal(t, domain.PDFContentType, u.ContentType)
	assert.NoError(t, u.Validate(domain.DefaultMaxDocumentSize))

	_, err = readUpload(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestFormatDetails(t *testing.T) {
	assert.Empty(t, formatDetails(nil))
	assert.Equal(t, " a=1 b=2", formatDetails(map[string]string{"b": "2", "a": "1"}))
}

func TestWantJSON(t *testing.T) {
	orig := outputFormat
	defer func() { outputFormat = orig }()

	cmd := &cobra.Command{}
	cmd.SetOut(new(bytes.Buffer))

	outputFormat = "json"
	assert.True(t, wantJSON(cmd))
	outputFormat = "text"
	assert.False(t, wantJSON(cmd))
	outputFormat = "auto"
	assert.False(t, wantJSON(cmd), "buffers are not files")
}
