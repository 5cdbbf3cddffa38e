package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/core/domain"
)

func TestDocumentAttach(t *testing.T) {
	s := setupTestServices(t)
	p := registerProcess(t, s)

	out, err := execute(t, "document", "attach", p.ID, writePDF(t), "--title", "Denúncia", "--type", "peticao")
	require.NoError(t, err)
	assert.Contains(t, out, "Attached parecer.pdf as ")

	docs, err := s.Document.ListByProcess(context.Background(), alice, p.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, domain.DocumentTypePeticao, docs[0].Type)
	assert.Equal(t, "Denúncia", docs[0].Title)
}

func TestDocumentAttach_DecisionArchivesProcess(t *testing.T) {
	s := setupTestServices(t)
	p := registerProcess(t, s)

	_, err := execute(t, "document", "attach", p.ID, writePDF(t), "--title", "Decisão final", "--type", "Decisão")
	require.NoError(t, err)

	got, err := s.Process.Get(context.Background(), alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProcessStateArchived, got.State)
	assert.Nil(t, got.ParecerID)
}

func TestDocumentAttach_RejectsNonPDF(t *testing.T) {
	s := setupTestServices(t)
	p := registerProcess(t, s)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0600))

	_, err := execute(t, "document", "attach", p.ID, path, "--title", "Notas", "--type", "Outro")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentAttach_UnknownType(t *testing.T) {
	s := setupTestServices(t)
	p := registerProcess(t, s)

	_, err := execute(t, "document", "attach", p.ID, writePDF(t), "--title", "x", "--type", "Memorando")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentAta(t *testing.T) {
	s := setupTestServices(t)
	importEthics(t, s)
	m := scheduleMeeting(t, s, registerProcess(t, s).ID)

	_, err := execute(t, "document", "ata", m.ID, writePDF(t))
	assert.ErrorIs(t, err, domain.ErrInvalidState, "minutes need a concluded meeting")

	for range 2 {
		_, err := s.Meeting.EditState(context.Background(), alice, m.ID, domain.MeetingStateConcluded)
		require.NoError(t, err)
	}
	out, err := execute(t, "document", "ata", m.ID, writePDF(t))
	require.NoError(t, err)
	assert.Contains(t, out, "to meeting "+m.ID)

	got, err := s.Meeting.Get(context.Background(), alice, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AtaDocumentID)
}

func TestDocumentGetListContent(t *testing.T) {
	s := setupTestServices(t)
	p := registerProcess(t, s)
	doc, err := s.Document.Attach(context.Background(), alice, domain.AttachRequest{
		ProcessID: p.ID,
		Title:     "Contrato",
		Type:      domain.DocumentTypeContrato,
		File:      domain.Upload{Filename: "contrato.pdf", ContentType: domain.PDFContentType, Data: testPDF},
	})
	require.NoError(t, err)

	out, err := execute(t, "document", "get", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "File: contrato.pdf")
	assert.Contains(t, out, "Checksum: "+doc.Checksum)

	out, err = execute(t, "document", "list", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 documents")

	out, err = execute(t, "document", "content", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, string(testPDF), out)

	dest := filepath.Join(t.TempDir(), "out.pdf")
	_, err = execute(t, "document", "content", doc.ID, "--out", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, testPDF, data)
}
