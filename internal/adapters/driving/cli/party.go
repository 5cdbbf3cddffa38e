package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Manage the parties of a process",
}

var partyAddCmd = &cobra.Command{
	Use:   "add [process-id]",
	Short: "Attach a party to a process",
	Long: `Attach a party to an open process you own.

Parties are identified by their identification number (CPF, CNPJ or employee
number); punctuation is ignored. A party may appear only once per process.
Roles: author, defendant, witness, expert, other.`,
	Args: cobra.ExactArgs(1),
	RunE: runPartyAdd,
}

var partyRemoveCmd = &cobra.Command{
	Use:   "remove [process-id] [party-id]",
	Short: "Detach a party from a process",
	Args:  cobra.ExactArgs(2),
	RunE:  runPartyRemove,
}

var partyListCmd = &cobra.Command{
	Use:   "list [process-id]",
	Short: "List the parties of a process",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartyList,
}

// Flags for party subcommands.
var (
	partyName string
	partyIDNo string
	partyKind string
	partyRole string
)

func init() {
	partyAddCmd.Flags().StringVar(&partyName, "name", "", "full name")
	partyAddCmd.Flags().StringVar(&partyIDNo, "id-number", "", "CPF, CNPJ or employee number")
	partyAddCmd.Flags().StringVar(&partyKind, "kind", string(domain.PartyKindExternal), "external or employee")
	partyAddCmd.Flags().StringVar(&partyRole, "as", "", "role of the party in the process")
	for _, name := range []string{"name", "id-number", "as"} {
		_ = partyAddCmd.MarkFlagRequired(name)
	}

	partyCmd.AddCommand(partyAddCmd)
	partyCmd.AddCommand(partyRemoveCmd)
	partyCmd.AddCommand(partyListCmd)
	rootCmd.AddCommand(partyCmd)
}

func runPartyAdd(cmd *cobra.Command, args []string) error {
	if partyService == nil {
		return errors.New("party service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	pp, err := partyService.Add(cmd.Context(), actor, domain.AddPartyRequest{
		ProcessID:            args[0],
		Name:                 partyName,
		IdentificationNumber: partyIDNo,
		Kind:                 domain.PartyKind(partyKind),
		Role:                 domain.PartyRole(partyRole),
	})
	if err != nil {
		return fmt.Errorf("failed to add party: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, pp)
	}
	cmd.Printf("Added %s (%s) as %s\n", pp.Party.Name, pp.Party.ID, pp.Role)
	return nil
}

func runPartyRemove(cmd *cobra.Command, args []string) error {
	if partyService == nil {
		return errors.New("party service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	msg, err := partyService.Remove(cmd.Context(), actor, args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to remove party: %w", err)
	}
	cmd.Println(msg)
	return nil
}

func runPartyList(cmd *cobra.Command, args []string) error {
	if partyService == nil {
		return errors.New("party service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	parties, err := partyService.List(cmd.Context(), actor, args[0])
	if err != nil {
		return fmt.Errorf("failed to list parties: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, parties)
	}
	if len(parties) == 0 {
		cmd.Printf("No parties for process: %s\n", args[0])
		return nil
	}
	for _, pp := range parties {
		cmd.Printf("  %s  %-10s %s (%s)\n", pp.Party.ID, pp.Role, pp.Party.Name, pp.Party.IdentificationNumber)
	}
	cmd.Printf("\nTotal: %d parties\n", len(parties))
	return nil
}
