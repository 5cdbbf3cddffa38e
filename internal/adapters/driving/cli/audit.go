package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit events, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAuditList,
}

// Flags for audit list.
var (
	auditEntity   string
	auditEntityID string
	auditLimit    int
)

func init() {
	auditListCmd.Flags().StringVar(&auditEntity, "entity", "", "process, meeting, document, party or parecer")
	auditListCmd.Flags().StringVar(&auditEntityID, "id", "", "only events for this entity id")
	auditListCmd.Flags().IntVarP(&auditLimit, "limit", "n", 50, "maximum number of events")

	auditCmd.AddCommand(auditListCmd)
	rootCmd.AddCommand(auditCmd)
}

func runAuditList(cmd *cobra.Command, _ []string) error {
	if auditService == nil {
		return errors.New("audit service not configured")
	}

	events, err := auditService.List(cmd.Context(), domain.AuditFilter{
		Entity:   domain.AuditEntity(auditEntity),
		EntityID: auditEntityID,
		Limit:    auditLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list audit events: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, events)
	}
	if len(events) == 0 {
		cmd.Println("No audit events.")
		return nil
	}
	for _, ev := range events {
		cmd.Printf("%s  %-6s %-8s %s by %s%s\n",
			formatTime(ev.Timestamp), ev.Action, ev.Entity, ev.EntityID, ev.ActorID, formatDetails(ev.Details))
	}
	return nil
}

// formatDetails renders details as " k=v k=v" in key order.
func formatDetails(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, details[k])
	}
	return b.String()
}
