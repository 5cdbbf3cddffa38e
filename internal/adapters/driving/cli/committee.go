package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/adapters/driven/roster"
)

var committeeCmd = &cobra.Command{
	Use:   "committee",
	Short: "Manage committees",
	Long: `Committees are maintained outside juris and imported from a YAML roster.
Only approved committees may hold meetings.`,
}

var committeeImportCmd = &cobra.Command{
	Use:   "import [roster.yaml]",
	Short: "Import or update committees from a roster file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommitteeImport,
}

var committeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List committees",
	Args:  cobra.NoArgs,
	RunE:  runCommitteeList,
}

var committeeGetCmd = &cobra.Command{
	Use:   "get [committee-id]",
	Short: "Show a committee and its members",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommitteeGet,
}

func init() {
	committeeCmd.AddCommand(committeeImportCmd)
	committeeCmd.AddCommand(committeeListCmd)
	committeeCmd.AddCommand(committeeGetCmd)
	rootCmd.AddCommand(committeeCmd)
}

func runCommitteeImport(cmd *cobra.Command, args []string) error {
	if committeeService == nil {
		return errors.New("committee service not configured")
	}

	committees, err := roster.Load(args[0])
	if err != nil {
		return err
	}
	n, err := committeeService.Import(cmd.Context(), committees)
	if err != nil {
		return fmt.Errorf("failed to import committees: %w", err)
	}
	cmd.Printf("Imported %d committees from %s\n", n, args[0])
	return nil
}

func runCommitteeList(cmd *cobra.Command, _ []string) error {
	if committeeService == nil {
		return errors.New("committee service not configured")
	}

	committees, err := committeeService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list committees: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, committees)
	}
	if len(committees) == 0 {
		cmd.Println("No committees. Import a roster with 'juris committee import'.")
		return nil
	}
	for _, c := range committees {
		cmd.Printf("  %-16s %-10s %s (%d members)\n", c.ID, c.State, c.Name, len(c.Members))
	}
	return nil
}

func runCommitteeGet(cmd *cobra.Command, args []string) error {
	if committeeService == nil {
		return errors.New("committee service not configured")
	}

	c, err := committeeService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get committee: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, c)
	}
	cmd.Printf("Committee %s\n", c.Name)
	cmd.Printf("  ID: %s\n", c.ID)
	cmd.Printf("  State: %s\n", c.State)
	cmd.Println("  Members:")
	for _, m := range c.Members {
		cmd.Printf("    %s (%s)\n", m.EmployeeID, m.Role)
	}
	return nil
}
