package cmd

import (
	"github.com/huangsam/gitstats/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the gitstats MCP server",
	Long:  `Launch an MCP server over stdio so that AI agents can request author and commit reports.`,
	Args:  cobra.MaximumNArgs(1),
	// Tool handlers suppress run headers since stdio carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
