package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage process documents",
	Long:  `Attach PDFs to processes and meetings, list them and read them back.`,
}

var documentAttachCmd = &cobra.Command{
	Use:   "attach [process-id] [file.pdf]",
	Short: "Attach a PDF to a process",
	Long: `Attach a PDF to a process you own.

Types: Ata, Decisão, Petição, Contrato, Parecer, Outro. Accents are optional.
Attaching a Decisão archives the process without a parecer.`,
	Args: cobra.ExactArgs(2),
	RunE: runDocumentAttach,
}

var documentAtaCmd = &cobra.Command{
	Use:   "ata [meeting-id] [file.pdf]",
	Short: "Attach the minutes of a concluded meeting",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentAta,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentListCmd = &cobra.Command{
	Use:   "list [process-id]",
	Short: "List documents for a process",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Write document content to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

// Flags for document subcommands.
var (
	documentTitle       string
	documentDescription string
	documentType        string
	documentOut         string
)

func init() {
	documentAttachCmd.Flags().StringVar(&documentTitle, "title", "", "document title")
	documentAttachCmd.Flags().StringVar(&documentDescription, "description", "", "optional description")
	documentAttachCmd.Flags().StringVarP(&documentType, "type", "t", "", "document type")
	_ = documentAttachCmd.MarkFlagRequired("title")
	_ = documentAttachCmd.MarkFlagRequired("type")

	documentAtaCmd.Flags().StringVar(&documentTitle, "title", "Ata", "document title")
	documentAtaCmd.Flags().StringVar(&documentDescription, "description", "", "optional description")

	documentContentCmd.Flags().StringVar(&documentOut, "out", "", "write to this file instead of stdout")

	documentCmd.AddCommand(documentAttachCmd)
	documentCmd.AddCommand(documentAtaCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentContentCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAttach(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}
	docType, err := domain.ParseDocumentType(documentType)
	if err != nil {
		return err
	}
	upload, err := readUpload(args[1])
	if err != nil {
		return err
	}

	doc, err := documentService.Attach(cmd.Context(), actor, domain.AttachRequest{
		ProcessID:   args[0],
		Title:       documentTitle,
		Description: documentDescription,
		Type:        docType,
		File:        upload,
	})
	if err != nil {
		return fmt.Errorf("failed to attach document: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, doc)
	}
	cmd.Printf("Attached %s as %s\n", doc.Filename, doc.ID)
	return nil
}

func runDocumentAta(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}
	upload, err := readUpload(args[1])
	if err != nil {
		return err
	}

	m, err := documentService.AttachAta(cmd.Context(), actor, args[0], domain.AtaUpload{
		Title:       documentTitle,
		Description: documentDescription,
		Type:        domain.DocumentTypeAta,
		File:        upload,
	})
	if err != nil {
		return fmt.Errorf("failed to attach ata: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, m)
	}
	cmd.Printf("Attached ata %s to meeting %s\n", *m.AtaDocumentID, m.ID)
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), actor, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, doc)
	}

	cmd.Printf("Document: %s\n", doc.ID)
	cmd.Printf("  Title: %s\n", doc.Title)
	cmd.Printf("  Type: %s\n", doc.Type)
	cmd.Printf("  Process: %s\n", doc.ProcessID)
	if doc.MeetingID != nil {
		cmd.Printf("  Meeting: %s\n", *doc.MeetingID)
	}
	if doc.Description != "" {
		cmd.Printf("  Description: %s\n", doc.Description)
	}
	cmd.Printf("  File: %s (%d bytes)\n", doc.Filename, doc.Size)
	cmd.Printf("  Checksum: %s\n", doc.Checksum)
	cmd.Printf("  Uploaded: %s by %s\n", formatTime(doc.CreatedAt), doc.UploadedBy)
	return nil
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	processID := args[0]
	docs, err := documentService.ListByProcess(cmd.Context(), actor, processID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for process: %s\n", processID)
		return nil
	}

	cmd.Printf("Documents for process %s:\n\n", processID)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		cmd.Printf("    Type: %s\n", docs[i].Type)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	data, err := documentService.Content(cmd.Context(), actor, args[0])
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	if documentOut != "" {
		if err := os.WriteFile(documentOut, data, 0600); err != nil {
			return fmt.Errorf("writing %s: %w", documentOut, err)
		}
		cmd.Printf("Wrote %d bytes to %s\n", len(data), documentOut)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
