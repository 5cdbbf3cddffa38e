package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

const sample = `
committees:
  - id: ethics
    name: " Comissão de Ética "
    state: Approved
    members:
      - employee_id: "1001"
        role: chair
      - employee_id: "1002"
  - id: pending
    name: Comissão Provisória
    state: pending
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sample))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Comissão de Ética", got[0].Name)
	assert.Equal(t, domain.CommitteeStateApproved, got[0].State)
	assert.Equal(t, []domain.CommitteeMember{{EmployeeID: "1001", Role: "chair"}, {EmployeeID: "1002"}}, got[0].Members)
	assert.Empty(t, got[1].Members)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown field", "committees:\n  - id: a\n    chair: bob\n"},
		{"not yaml", "committees: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
