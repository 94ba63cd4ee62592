// Package agg turns Git history into per-author contributor statistics.
package agg

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/logger"
	"github.com/huangsam/gitstats/schema"
)

// readCommits runs a single repository-wide git log over the configured window and parses it.
func readCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.CommitEntry, error) {
	out, err := client.GetCommitLog(ctx, cfg.RepoPath, cfg.StartTime, cfg.EndTime)
	if err != nil {
		return nil, err
	}
	commits := ParseCommitLog(out, cfg.Excludes, cfg.Aliases)
	logger.WithField("commits", len(commits)).Debug("parsed commit log")
	return commits, nil
}

// ParseCommitLog parses numstat output produced by contract.GitClient.GetCommitLog.
// Numstat lines for excluded paths are skipped, but their commit still counts.
// Malformed headers are skipped together with the numstat lines that follow them.
func ParseCommitLog(out []byte, excludes []string, aliases map[string]string) []schema.CommitEntry {
	var commits []schema.CommitEntry
	var current *schema.CommitEntry

	flush := func() {
		if current != nil {
			commits = append(commits, *current)
			current = nil
		}
	}

	for l := range strings.SplitSeq(string(out), "\n") {
		l = strings.TrimRight(l, "\r")

		if strings.HasPrefix(l, contract.CommitHeaderPrefix) {
			flush()
			if entry, ok := parseCommitHeader(l); ok {
				if canonical, found := aliases[entry.Author]; found {
					entry.Author = canonical
				}
				current = &entry
			}
			continue
		}
		if current == nil || strings.TrimSpace(l) == "" {
			continue
		}

		path, add, del, ok := parseFileStatsLine(l)
		if !ok || contract.ShouldIgnore(path, excludes) {
			continue
		}
		current.LinesAdded += add
		current.LinesRemoved += del
	}
	flush()

	return commits
}

// parseCommitHeader extracts hash, author and dates from "--hash|author|unix|iso".
// The author is everything between the hash and the two trailing date fields.
func parseCommitHeader(line string) (schema.CommitEntry, bool) {
	body := strings.TrimPrefix(line, contract.CommitHeaderPrefix)
	parts := strings.Split(body, "|")
	if len(parts) < 4 {
		return schema.CommitEntry{}, false
	}

	hash := parts[0]
	author := strings.TrimSpace(strings.Join(parts[1:len(parts)-2], "|"))
	unixStr := parts[len(parts)-2]
	isoStr := strings.TrimSpace(parts[len(parts)-1])
	if hash == "" || author == "" {
		return schema.CommitEntry{}, false
	}

	date, err := time.Parse(time.RFC3339, isoStr)
	if err != nil {
		return schema.CommitEntry{}, false
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(unixStr), 10, 64)
	if err != nil {
		ts = date.Unix()
	}

	return schema.CommitEntry{
		Hash:      hash,
		Author:    author,
		Date:      date.Format(schema.DayLayout), // author-local calendar day
		Timestamp: ts,
	}, true
}

// parseFileStatsLine parses "added\tremoved\tpath".
func parseFileStatsLine(line string) (string, int, int, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return "", 0, 0, false
	}
	return parts[2], parseChurnValue(parts[0]), parseChurnValue(parts[1]), true
}

// parseChurnValue converts a churn string to int, handling "-" (binary files) as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}
