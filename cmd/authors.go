package cmd

import (
	"github.com/huangsam/gitstats/core"
	"github.com/spf13/cobra"
)

// authorsCmd reports per-author contribution totals.
var authorsCmd = &cobra.Command{
	Use:   "authors [repo-path]",
	Short: "Summarize commits, line changes and active days per author",
	Long: `Fold every commit in the selected window into one summary per author.

Each row shows:
- Commits and share of all commits
- Lines added and removed (excluded paths do not count)
- Distinct active days and the last active day
- When the author was last seen and an activity label

Examples:
  # Top contributors over the last year
  gitstats authors --start "1 year ago"

  # Rank by lines added and export to CSV
  gitstats authors --sort added --output csv --output-file authors.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteAuthors(rootCtx, cfg, cacheManager)
	},
}
