package cmd

import (
	"github.com/huangsam/gitstats/core"
	"github.com/spf13/cobra"
)

// commitsCmd lists individual commits with their line counts.
var commitsCmd = &cobra.Command{
	Use:   "commits [repo-path]",
	Short: "List commits newest first with lines added and removed",
	Long: `List the commits in the selected window, newest first.

Use --author to narrow the list to one contributor and --limit to cap it.

Examples:
  # Last 10 commits by alice
  gitstats commits --author alice --limit 10`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCommits(rootCtx, cfg, cacheManager)
	},
}
