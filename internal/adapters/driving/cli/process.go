package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Manage processes",
	Long:  `Register, edit, archive and inspect legal and disciplinary processes.`,
}

var processRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Open a new process",
	Long: `Open a new process owned by the acting employee.

Types: Disciplinar, Trabalhista, Administrativo, Civil, Criminal.`,
	Args: cobra.NoArgs,
	RunE: runProcessRegister,
}

var processEditCmd = &cobra.Command{
	Use:   "edit [process-id]",
	Short: "Change subject, type or state",
	Long: `Change the subject, type or state of a process you own.

States only move forward: open, in_progress, archived. Archiving here records
no parecer; use 'juris process archive' to close with an opinion.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcessEdit,
}

var processArchiveCmd = &cobra.Command{
	Use:   "archive [process-id]",
	Short: "Archive a process with its parecer",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcessArchive,
}

var processGetCmd = &cobra.Command{
	Use:   "get [process-id]",
	Short: "Show a process",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcessGet,
}

var processListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runProcessList,
}

var processParecerCmd = &cobra.Command{
	Use:   "parecer [process-id]",
	Short: "Show the closing parecer of an archived process",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcessParecer,
}

// Flags for process subcommands.
var (
	processSubject  string
	processType     string
	processState    string
	processParecer  string
	processPDF      string
	processPage     int
	processPageSize int
)

func init() {
	processRegisterCmd.Flags().StringVarP(&processSubject, "subject", "s", "", "what the process is about")
	processRegisterCmd.Flags().StringVarP(&processType, "type", "t", "", "process type")
	_ = processRegisterCmd.MarkFlagRequired("subject")
	_ = processRegisterCmd.MarkFlagRequired("type")

	processEditCmd.Flags().StringVarP(&processSubject, "subject", "s", "", "new subject")
	processEditCmd.Flags().StringVarP(&processType, "type", "t", "", "new type")
	processEditCmd.Flags().StringVar(&processState, "state", "", "new state: in_progress or archived")

	processArchiveCmd.Flags().StringVarP(&processParecer, "parecer", "p", "", "closing opinion")
	processArchiveCmd.Flags().StringVar(&processPDF, "pdf", "", "signed parecer PDF to store with the archive")
	_ = processArchiveCmd.MarkFlagRequired("parecer")

	processListCmd.Flags().IntVar(&processPage, "page", 1, "page number")
	processListCmd.Flags().IntVar(&processPageSize, "page-size", domain.DefaultPageSize, "results per page")

	processCmd.AddCommand(processRegisterCmd)
	processCmd.AddCommand(processEditCmd)
	processCmd.AddCommand(processArchiveCmd)
	processCmd.AddCommand(processGetCmd)
	processCmd.AddCommand(processListCmd)
	processCmd.AddCommand(processParecerCmd)
	rootCmd.AddCommand(processCmd)
}

func runProcessRegister(cmd *cobra.Command, _ []string) error {
	if processService == nil {
		return errors.New("process service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}
	t, err := domain.ParseProcessType(processType)
	if err != nil {
		return err
	}

	p, err := processService.Register(cmd.Context(), actor, processSubject, t)
	if err != nil {
		return fmt.Errorf("failed to register process: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, p)
	}
	cmd.Printf("Registered process %s\n", p.Number)
	cmd.Printf("  ID: %s\n", p.ID)
	return nil
}

func runProcessEdit(cmd *cobra.Command, args []string) error {
	if processService == nil {
		return errors.New("process service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	var edit domain.ProcessEdit
	if cmd.Flags().Changed("subject") {
		edit.Subject = &processSubject
	}
	if cmd.Flags().Changed("type") {
		t, err := domain.ParseProcessType(processType)
		if err != nil {
			return err
		}
		edit.Type = &t
	}
	if cmd.Flags().Changed("state") {
		state := domain.ProcessState(processState)
		edit.State = &state
	}
	if edit.IsEmpty() {
		return errors.New("nothing to change: pass --subject, --type or --state")
	}

	p, err := processService.Edit(cmd.Context(), actor, args[0], edit)
	if err != nil {
		return fmt.Errorf("failed to edit process: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, p)
	}
	cmd.Printf("Updated process %s (%s)\n", p.Number, p.State)
	return nil
}

func runProcessArchive(cmd *cobra.Command, args []string) error {
	if processService == nil {
		return errors.New("process service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	req := domain.ArchiveRequest{ParecerText: processParecer}
	if processPDF != "" {
		upload, err := readUpload(processPDF)
		if err != nil {
			return err
		}
		req.PDF = &upload
	}

	p, err := processService.Archive(cmd.Context(), actor, args[0], req)
	if err != nil {
		return fmt.Errorf("failed to archive process: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, p)
	}
	cmd.Printf("Archived process %s\n", p.Number)
	return nil
}

func runProcessGet(cmd *cobra.Command, args []string) error {
	if processService == nil {
		return errors.New("process service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	p, err := processService.Get(cmd.Context(), actor, args[0])
	if err != nil {
		return fmt.Errorf("failed to get process: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, p)
	}
	printProcess(cmd, p)
	return nil
}

func runProcessList(cmd *cobra.Command, _ []string) error {
	if processService == nil {
		return errors.New("process service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	page, err := processService.List(cmd.Context(), actor, domain.PageRequest{Page: processPage, PageSize: processPageSize})
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, page)
	}
	if len(page.Items) == 0 {
		cmd.Println("No processes found.")
		return nil
	}

	for i := range page.Items {
		p := &page.Items[i]
		cmd.Printf("  %s  %-12s %s\n", p.Number, p.State, p.Subject)
		cmd.Printf("    ID: %s  Responsible: %s  Opened: %s\n", p.ID, p.ResponsibleID, formatTime(p.OpenedAt))
	}
	cmd.Println()
	cmd.Printf("Page %d, %d of %d processes\n", page.Page, len(page.Items), page.Total)
	return nil
}

func runProcessParecer(cmd *cobra.Command, args []string) error {
	if processService == nil {
		return errors.New("process service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	parecer, err := processService.Parecer(cmd.Context(), actor, args[0])
	if err != nil {
		return fmt.Errorf("failed to get parecer: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, parecer)
	}
	cmd.Printf("Parecer by %s on %s\n\n", parecer.AuthorID, formatTime(parecer.EmittedAt))
	cmd.Println(parecer.Text)
	if parecer.HasPDF() {
		cmd.Printf("\nPDF: %s (%d bytes, blake3 %s)\n", parecer.Filename, parecer.Size, parecer.Checksum)
	}
	return nil
}

func printProcess(cmd *cobra.Command, p *domain.Process) {
	cmd.Printf("Process %s\n", p.Number)
	cmd.Printf("  ID:          %s\n", p.ID)
	cmd.Printf("  Subject:     %s\n", p.Subject)
	cmd.Printf("  Type:        %s\n", p.Type)
	cmd.Printf("  State:       %s\n", p.State)
	cmd.Printf("  Responsible: %s\n", p.ResponsibleID)
	cmd.Printf("  Opened:      %s\n", formatTime(p.OpenedAt))
	if p.ClosedAt != nil {
		cmd.Printf("  Closed:      %s\n", formatTime(*p.ClosedAt))
	}
}
