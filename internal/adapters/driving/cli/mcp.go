package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose processes to AI assistants over MCP",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the process workflow over the Model Context Protocol.

Tools: register_process, archive_process, list_processes, schedule_meeting,
advance_meeting and add_party. Each call acts as --actor/--role unless it
passes its own actor_id. The resource juris://processes/{processId} returns
a process with its meetings, documents, parties and parecer.

Without --port the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants launch. With --port it serves the streamable HTTP
transport instead, for remote clients and the MCP Inspector.

Examples:
  juris mcp serve --actor 1001
  juris mcp serve --actor 1001 --role supervisor --port 8081`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Process:  processService,
		Meeting:  meetingService,
		Document: documentService,
		Party:    partyService,
		Actor:    actor,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
