// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/gitstats/internal/contract"
	"golang.org/x/term"
)

// headerWriter receives the run header. It is stderr so that piped CSV and JSON stay clean.
var headerWriter io.Writer = os.Stderr

// LogRunHeader prints a concise, 2-line header for a report.
func LogRunHeader(cfg *contract.Config, kind string) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}
	_, _ = fmt.Fprintf(headerWriter, "🔎 Repo: %s (Report: %s)\n", repoName, kind)
	_, _ = fmt.Fprintf(headerWriter, "📅 Range: %s → %s\n", formatBound(cfg.StartTime, "beginning"), formatBound(cfg.EndTime, "now"))
}

// GetMaxTableNameWidth calculates the maximum width for author names in table output
// based on terminal width and the fixed columns of the author table.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank, Commits, Share, Added, Removed, Days, Last, Label plus borders and padding
	baseWidth := 85

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
